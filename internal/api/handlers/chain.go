package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suicart/escrow-backend/internal/api/httpx"
	"github.com/suicart/escrow-backend/internal/api/validate"
	"github.com/suicart/escrow-backend/internal/chain"
	"github.com/suicart/escrow-backend/internal/services"
)

// ChainHandler exposes payload building and on-chain reads to the browser.
type ChainHandler struct {
	svc *services.EscrowService
}

func NewChainHandler(svc *services.EscrowService) *ChainHandler {
	return &ChainHandler{svc: svc}
}

type payloadResp struct {
	Payload chain.Payload `json:"payload"`
	Demo    bool          `json:"demo"`
}

func (h *ChainHandler) writePayload(w http.ResponseWriter, p chain.Payload) {
	httpx.WriteJSON(w, http.StatusOK, payloadResp{Payload: p, Demo: h.svc.Demo()})
}

type createEscrowReq struct {
	AssetType   string   `json:"asset_type"`
	Seller      string   `json:"seller"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
}

// POST /escrows
func (h *ChainHandler) CreateEscrow(w http.ResponseWriter, r *http.Request) {
	var req createEscrowReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if len(validate.Collect(
		validate.Required("asset_type", req.AssetType),
		validate.Required("seller", req.Seller),
		validate.RequiredNumber("amount", req.Amount),
	)) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	p, err := h.svc.CreateEscrow(services.AssetType(req.AssetType), req.Seller, *req.Amount, req.Description)
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid amount")
		return
	case errors.Is(err, services.ErrInvalidAssetType):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid asset type")
		return
	case err != nil:
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to build transaction")
		return
	}
	h.writePayload(w, p)
}

// POST /escrows/{id}/deposit
func (h *ChainHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetID string `json:"asset_id"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if validate.Required("asset_id", req.AssetID) != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	h.writePayload(w, h.svc.Deposit(chi.URLParam(r, "id"), req.AssetID))
}

// POST /escrows/{id}/confirm
func (h *ChainHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.writePayload(w, h.svc.Confirm(chi.URLParam(r, "id")))
}

// POST /escrows/{id}/refund
func (h *ChainHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.writePayload(w, h.svc.Refund(chi.URLParam(r, "id")))
}

// POST /assets/mint
func (h *ChainHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value     *uint64 `json:"value"`
		Recipient string  `json:"recipient"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Value == nil || validate.Required("recipient", req.Recipient) != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	h.writePayload(w, h.svc.MintAsset(*req.Value, req.Recipient))
}

// GET /escrows?owner=
func (h *ChainHandler) Escrows(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Owner is required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"escrows": h.svc.Escrows(r.Context(), owner)})
}

// GET /assets?owner=
func (h *ChainHandler) Assets(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Owner is required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"assets": h.svc.Assets(r.Context(), owner)})
}

// GET /history?address=
func (h *ChainHandler) History(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Address is required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"history": h.svc.History(r.Context(), address)})
}
