// Package httpapi exposes the tracker's use cases over a JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/truwealthily/wealthpulse-backend/internal/clients/mfapi"
	"github.com/truwealthily/wealthpulse-backend/internal/domain"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/asset"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/forecast"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/networth"
	"github.com/truwealthily/wealthpulse-backend/internal/usecase/refresh"
)

// FundSource looks up mutual fund schemes and their latest NAVs
type FundSource interface {
	LatestNAV(ctx context.Context, schemeCode string) (domain.PriceQuote, error)
	Search(ctx context.Context, query string) ([]mfapi.FundSearchResult, error)
}

// MetalSource provides spot prices per gram in INR
type MetalSource interface {
	SpotPricePerGram(ctx context.Context, metal domain.Metal) (domain.PriceQuote, error)
}

// Config holds server configuration
type Config struct {
	Port     int
	APIToken string
	DevMode  bool
	Log      zerolog.Logger

	Assets   *asset.Service
	NetWorth *networth.Service
	Forecast *forecast.Service
	Refresh  *refresh.Service
	Funds    FundSource
	Metals   MetalSource
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	assets   *asset.Service
	networth *networth.Service
	forecast *forecast.Service
	refresh  *refresh.Service
	funds    FundSource
	metals   MetalSource

	apiToken string
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		assets:   cfg.Assets,
		networth: cfg.NetWorth,
		forecast: cfg.Forecast,
		refresh:  cfg.Refresh,
		funds:    cfg.Funds,
		metals:   cfg.Metals,
		apiToken: cfg.APIToken,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/", s.handleCreateAsset)
			r.Get("/{id}", s.handleGetAsset)
			r.Put("/{id}", s.handleUpdateAsset)
			r.Delete("/{id}", s.handleDeleteAsset)
		})

		r.Route("/networth", func(r chi.Router) {
			r.Get("/", s.handleNetWorth)
			r.Get("/snapshots", s.handleListSnapshots)
			r.Post("/snapshots", s.handleSaveSnapshot)
			r.Delete("/snapshots", s.handlePurgeSnapshots)
			r.Delete("/snapshots/{date}", s.handleDeleteSnapshot)
		})

		r.Get("/forecast", s.handleForecast)

		r.Route("/prices", func(r chi.Router) {
			r.Post("/refresh", s.handleRefreshPrices)
			r.Get("/metals", s.handleMetalPrices)
		})

		r.Route("/funds", func(r chi.Router) {
			r.Get("/search", s.handleSearchFunds)
			r.Get("/{schemeCode}/nav", s.handleFundNAV)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}
