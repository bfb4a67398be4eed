package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps domain errors to HTTP status codes.
// Unknown errors become 500 with the error text suppressed.
func writeServiceError(w http.ResponseWriter, err error) {
	var fetchErr *domain.FetchError
	switch {
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidHorizon),
		errors.Is(err, domain.ErrAssetTypeImmutable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrValuationUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
