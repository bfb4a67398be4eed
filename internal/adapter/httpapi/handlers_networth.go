package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	result, err := s.networth.ComputeNetWorth(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, netWorthResponse{
		Total:            result.Total,
		TotalAssets:      result.TotalAssets,
		TotalLiabilities: result.TotalLiabilities,
		Breakdown:        result.Breakdown,
		Warnings:         toWarningResponses(result.Warnings),
		AsOf:             result.AsOf,
	})
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Date string `json:"date"`
	}
	// Body is optional; an empty body snapshots today
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var date *time.Time
	if payload.Date != "" {
		parsed, err := time.ParseInLocation(dateFormat, payload.Date, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be formatted as 2006-01-02")
			return
		}
		date = &parsed
	}

	snapshot, err := s.networth.SaveSnapshot(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSnapshotResponse(snapshot))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.networth.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]snapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, toSnapshotResponse(snapshot))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation(dateFormat, chi.URLParam(r, "date"), time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be formatted as 2006-01-02")
		return
	}

	if err := s.networth.DeleteSnapshot(r.Context(), date); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePurgeSnapshots(w http.ResponseWriter, r *http.Request) {
	if err := s.networth.PurgeHistory(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
