package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/Flediko/Smartkart/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// missing product/cart/item -> 404, insufficient stock and bad input -> 400,
// anything else -> 500 with the detail kept out of the response body.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrReviewExists):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		var stockErr *service.InsufficientStockError
		var validationErr service.ValidationError
		if errors.As(err, &stockErr) {
			respondError(w, http.StatusBadRequest, stockErr.Error())
			return
		}
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "server error")
	}
}
