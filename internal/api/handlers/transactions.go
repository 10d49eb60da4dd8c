package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suicart/escrow-backend/internal/api/httpx"
	"github.com/suicart/escrow-backend/internal/api/validate"
	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/services"
)

type TransactionHandler struct {
	svc *services.TransactionService
}

func NewTransactionHandler(svc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type transactionResp struct {
	Transaction models.Transaction `json:"transaction"`
}

// GET /transactions?address=
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Address is required")
		return
	}
	txs := h.svc.ListForUser(r.Context(), address)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type createTransactionReq struct {
	UserAddress         string   `json:"user_address"`
	CounterpartyAddress string   `json:"counterparty_address"`
	Amount              *float64 `json:"amount"`
	Status              string   `json:"status"`
	AssetID             string   `json:"asset_id"`
	TransactionType     string   `json:"transaction_type"`
}

// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	missing := validate.Collect(
		validate.Required("user_address", req.UserAddress),
		validate.Required("counterparty_address", req.CounterpartyAddress),
		validate.RequiredNumber("amount", req.Amount),
		validate.Required("status", req.Status),
		validate.Required("asset_id", req.AssetID),
		validate.Required("transaction_type", req.TransactionType),
	)
	if len(missing) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	status := models.TransactionStatus(req.Status)
	if !status.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	typ := models.TransactionType(req.TransactionType)
	if !typ.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidType)
		return
	}

	tx, err := h.svc.Create(r.Context(), models.Transaction{
		UserAddress:         req.UserAddress,
		CounterpartyAddress: req.CounterpartyAddress,
		Amount:              *req.Amount,
		Status:              status,
		AssetID:             req.AssetID,
		TransactionType:     typ,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transactionResp{Transaction: tx})
}

// GET /transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Transaction not found", "Failed to fetch transaction")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transactionResp{Transaction: tx})
}

// PATCH /transactions/{id}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	patch, err := transactionPatch(body)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(patch) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, msgNoValidFields)
		return
	}

	tx, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeStoreError(w, err, "Transaction not found", "Failed to update transaction")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transactionResp{Transaction: tx})
}

// PUT /transactions/{id}
func (h *TransactionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	status := models.TransactionStatus(req.Status)
	if !status.Terminal() {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	tx, err := h.svc.Complete(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeStoreError(w, err, "Transaction not found", "Failed to complete transaction")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transactionResp{Transaction: tx})
}

type inputError string

func (e inputError) Error() string { return string(e) }

func invalidValue(col string) error { return inputError("Invalid value for " + col) }

// transactionPatch keeps the allow-listed keys of body and checks each value's type.
func transactionPatch(body map[string]any) (models.Patch, error) {
	patch := models.Patch{}
	for _, col := range models.TransactionPatchFields {
		v, ok := body[col]
		if !ok {
			continue
		}
		switch col {
		case models.ColAmount:
			n, ok := v.(float64)
			if !ok {
				return nil, invalidValue(col)
			}
			patch[col] = n
		case models.ColStatus:
			s, _ := v.(string)
			if !models.TransactionStatus(s).Valid() {
				return nil, inputError(msgInvalidStatus)
			}
			patch[col] = s
		case models.ColTransactionType:
			s, _ := v.(string)
			if !models.TransactionType(s).Valid() {
				return nil, inputError(msgInvalidType)
			}
			patch[col] = s
		case models.ColCompletedAt:
			if v == nil {
				patch[col] = nil
				continue
			}
			s, _ := v.(string)
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, invalidValue(col)
			}
			patch[col] = ts.UTC()
		default:
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, invalidValue(col)
			}
			patch[col] = s
		}
	}
	return patch, nil
}
