package httpapi

import (
	"net/http"
	"strconv"
)

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	yearsParam := r.URL.Query().Get("years")
	if yearsParam == "" {
		writeError(w, http.StatusBadRequest, "years query parameter is required")
		return
	}

	years, err := strconv.Atoi(yearsParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "years must be an integer")
		return
	}

	projection, err := s.forecast.ComputeForecast(r.Context(), years)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := forecastResponse{
		HorizonYears: projection.HorizonYears,
		AsOf:         projection.AsOf,
		Years:        make([]yearProjectionResponse, 0, len(projection.Years)),
		Warnings:     toWarningResponses(projection.Warnings),
	}
	for _, year := range projection.Years {
		out.Years = append(out.Years, yearProjectionResponse{
			Year:      year.Year,
			Total:     year.Total,
			Breakdown: year.Breakdown,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
