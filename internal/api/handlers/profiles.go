package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suicart/escrow-backend/internal/api/httpx"
	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type profileResp struct {
	Profile models.UserProfile `json:"profile"`
}

// GET /user/{address}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeStoreError(w, err, "User profile not found", "Failed to fetch user profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResp{Profile: p})
}

// PATCH /user/{address}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	patch, err := profilePatch(body)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "address"), patch)
	if err != nil {
		writeStoreError(w, err, "User profile not found", "Failed to update user profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResp{Profile: p})
}

// profilePatch passes every key through and only checks value types of the
// known columns; unknown keys are rejected by the store.
func profilePatch(body map[string]any) (models.Patch, error) {
	patch := make(models.Patch, len(body))
	for k, v := range body {
		switch k {
		case models.ColUsername, models.ColAvatarURL:
			if _, ok := v.(string); !ok && v != nil {
				return nil, invalidValue(k)
			}
			patch[k] = v
		case models.ColTransactionCount:
			n, ok := v.(float64)
			if !ok || n < 0 || n != float64(int64(n)) {
				return nil, invalidValue(k)
			}
			patch[k] = int64(n)
		default:
			patch[k] = v
		}
	}
	return patch, nil
}
