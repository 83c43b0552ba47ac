// Package server exposes the pricing and social proof services over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"campaign-monetization/internal/config"
	"campaign-monetization/internal/observability"
	"campaign-monetization/internal/pricing"
	"campaign-monetization/internal/socialproof"
)

// Server wires the service facades into an http.Server.
type Server struct {
	cfg         config.ServerConfig
	pricing     *pricing.Service
	socialproof *socialproof.Service
	logger      *slog.Logger

	httpServer *http.Server
	started    time.Time
}

// New creates a Server with all required dependencies.
func New(cfg config.Config, pricingSvc *pricing.Service, proofSvc *socialproof.Service, logger *slog.Logger) *Server {
	s := &Server{
		cfg:         cfg.Server,
		pricing:     pricingSvc,
		socialproof: proofSvc,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/pricing/optimize/{campaignID}", s.handleOptimizePricing)
	mux.HandleFunc("POST /api/pricing/competitors", s.handleMonitorCompetitors)
	mux.HandleFunc("GET /api/pricing/surge/{campaignID}", s.handleSurgePricing)
	mux.HandleFunc("GET /api/proof/{campaignID}", s.handleSocialProof)
	mux.HandleFunc("POST /api/proof/events", s.handleTrackEvent)
	mux.HandleFunc("POST /api/clicks/{linkID}", s.handleTrackClick)
	mux.HandleFunc("GET /api/testimonials/{campaignID}", s.handleTestimonials)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", observability.Handler())

	var handler http.Handler = mux
	handler = AuthMiddleware(cfg.Auth.Keys)(handler)
	handler = LoggingMiddleware(logger)(handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.started = time.Now()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", s.cfg.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Status: "running",
		Uptime: time.Since(s.started).String(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
