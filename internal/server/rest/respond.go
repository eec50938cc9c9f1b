package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

const (
	msgServerError  = "Server error occurred. Please try again later"
	msgInvalidBody  = "Invalid data provided"
	msgNotFound     = "SCP not found"
	msgDeleted      = "SCP deleted successfully"
	maxRequestBytes = 1 << 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorBody{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	return dec.Decode(v)
}

// statusFor maps service errors onto HTTP status codes and client messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, msgServerError
	}
}
