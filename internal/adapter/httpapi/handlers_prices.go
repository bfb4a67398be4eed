package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/truwealthily/wealthpulse-backend/internal/domain"
)

func (s *Server) handleRefreshPrices(w http.ResponseWriter, r *http.Request) {
	result, err := s.refresh.RefreshAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		FundsUpdated:  result.FundsUpdated,
		MetalsUpdated: result.MetalsUpdated,
		Failed:        result.Failed,
	})
}

func (s *Server) handleMetalPrices(w http.ResponseWriter, r *http.Request) {
	out := make([]metalPriceResponse, 0, 2)
	for _, metal := range []domain.Metal{domain.MetalGold, domain.MetalSilver} {
		quote, err := s.metals.SpotPricePerGram(r.Context(), metal)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out = append(out, metalPriceResponse{
			Metal:        string(metal),
			PricePerGram: quote.Price,
			AsOf:         quote.AsOf,
			Stale:        quote.Stale,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearchFunds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	results, err := s.funds.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleFundNAV(w http.ResponseWriter, r *http.Request) {
	schemeCode := chi.URLParam(r, "schemeCode")

	quote, err := s.funds.LatestNAV(r.Context(), schemeCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, navResponse{
		SchemeCode: schemeCode,
		NAV:        quote.Price,
		AsOf:       quote.AsOf,
		Stale:      quote.Stale,
	})
}
