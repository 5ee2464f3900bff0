package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vereinsapp/club-backend/internal/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// respondServiceError maps service sentinels to client-facing status codes:
// missing entities become 404, business-rule rejections 400, anything else a
// generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, "not_found", err.Error())
	case services.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
