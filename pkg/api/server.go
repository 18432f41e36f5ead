package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	"github.com/goran-ethernal/MercuryBridge/internal/metrics"
	"github.com/goran-ethernal/MercuryBridge/pkg/api/docs"
	"github.com/goran-ethernal/MercuryBridge/pkg/config"
	"github.com/goran-ethernal/MercuryBridge/pkg/ledger"
	"github.com/goran-ethernal/MercuryBridge/pkg/mercury"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server. ledgerReader may be nil.
func NewServer(cfg *config.APIConfig, client mercury.Client, ledgerReader ledger.Reader, log *logger.Logger) *Server {
	handler := NewHandler(client, ledgerReader, log)

	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("GET /ping", handler.Ping)
	mux.HandleFunc("GET /api/v1/ping", handler.Ping)
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/health", handler.Health)

	// Subscription endpoints
	mux.HandleFunc("POST /api/v1/subscription", handler.AddSubscription)
	mux.HandleFunc("GET /api/v1/subscription", handler.ListSubscriptions)
	mux.HandleFunc("GET /api/v1/subscription/{id}", handler.GetSubscription)
	mux.HandleFunc("POST /api/v1/subscription/token", handler.AddTokenSubscription)
	mux.HandleFunc("POST /api/v1/subscription/account", handler.AddAccountSubscription)

	mux.HandleFunc("GET /api/v1/account/{pubKey}/history", handler.GetAccountHistory)
	mux.HandleFunc("POST /api/v1/token/renew", handler.RenewToken)
	mux.HandleFunc("GET /api/v1/ledger", handler.ListLedger)

	// Swagger documentation endpoints
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	// Apply middleware
	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)

	if cfg.CORS.Enabled {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}

	h = SecurityHeadersMiddleware(h)

	// Use configured timeouts (defaults already applied in config.ApplyDefaults)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Start binds the listen address, serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		metrics.ComponentHealthSet(common.ComponentAPI, false)
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.log.Infof("Starting API server on %s", listener.Addr())
	metrics.ComponentHealthSet(common.ComponentAPI, true)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			metrics.ComponentHealthSet(common.ComponentAPI, false)
			return fmt.Errorf("API server error: %w", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	metrics.ComponentHealthSet(common.ComponentAPI, false)
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
