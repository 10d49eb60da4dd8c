package handlers

import (
	"errors"
	"net/http"

	"github.com/suicart/escrow-backend/internal/api/httpx"
	"github.com/suicart/escrow-backend/internal/repository"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgMissingFields = "Missing required fields"
	msgInvalidStatus = "Invalid status"
	msgInvalidType   = "Invalid transaction type"
	msgNoValidFields = "No valid fields to update"
	msgUnknownField  = "Unknown field"
)

// writeStoreError maps a service error for a single-entity call. Anything that
// is not "not found" becomes a 500 with the static fallback message.
func writeStoreError(w http.ResponseWriter, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrUnknownField):
		httpx.WriteError(w, http.StatusBadRequest, msgUnknownField)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
