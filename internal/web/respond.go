// Package web exposes the storefront over HTTP: each handler plays the role of
// one page of the original UI, dispatching intents into the stores and
// rendering their state as JSON.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/api"
	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	respondJSON(w, status, ErrorResponse{Message: message}, logger)
}

// respondDomainError maps validation, API and not-found errors to HTTP
// statuses. Not-found is informational, everything else keeps the message the
// store surfaced.
func respondDomainError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, api.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidPayment):
		respondError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrAddressRequired),
		errors.Is(err, domain.ErrPaymentRequired),
		errors.Is(err, domain.ErrSubmitInFlight):
		respondError(w, http.StatusConflict, err.Error(), logger)
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			status := apiErr.StatusCode
			if status == 0 {
				status = http.StatusBadGateway
			}
			respondError(w, status, apiErr.Message, logger)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error(), logger)
	}
}
