package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	appmatches "github.com/preston-bernstein/sportconnect-service/internal/app/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/config"
	httpserver "github.com/preston-bernstein/sportconnect-service/internal/http"
	"github.com/preston-bernstein/sportconnect-service/internal/http/handlers"
	"github.com/preston-bernstein/sportconnect-service/internal/http/middleware"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/metrics"
	"github.com/preston-bernstein/sportconnect-service/internal/store"
)

var metricsSetup = metrics.Setup

// matchStore is the lifecycle surface the server needs from the store.
type matchStore interface {
	appmatches.Store
	Ready() bool
	Flush(ctx context.Context) error
	Close() error
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         matchStore
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New opens storage, loads or seeds the snapshot, and wires the HTTP stack.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	persister, err := buildPersister(cfg.Storage, logger)
	if err != nil {
		stopMetrics(metricsShutdown, logger)
		return nil, fmt.Errorf("build persister: %w", err)
	}
	st := store.New(persister, store.WithLogger(logger), store.WithMetrics(recorder))
	if err := st.Init(ctx); err != nil {
		_ = st.Close()
		stopMetrics(metricsShutdown, logger)
		return nil, fmt.Errorf("init store: %w", err)
	}

	svc := buildService(cfg, st, logger, recorder)
	httpSrv := buildHTTPServer(cfg, st, svc, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         st,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, st matchStore, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		httpServer: httpSrv,
	}
}

func buildService(cfg config.Config, st appmatches.Store, logger *slog.Logger, recorder *metrics.Recorder) *appmatches.Service {
	return appmatches.NewService(st, appmatches.Config{
		MinLatency:    cfg.Facade.MinLatency,
		MaxLatency:    cfg.Facade.MaxLatency,
		FailureRate:   cfg.Facade.FailureRate,
		CurrentUserID: cfg.Facade.CurrentUserID,
	}, logger, recorder)
}

func buildHTTPServer(cfg config.Config, st matchStore, svc handlers.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(svc, logger, st.Ready)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(st, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown drains HTTP traffic before the final flush so no
// transaction lands after the store is closed.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.store != nil {
		if err := s.store.Flush(shutdownCtx); err != nil {
			logging.Error(s.logger, "final snapshot flush failed", err)
		}
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "store close failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func stopMetrics(shutdown func(context.Context) error, logger *slog.Logger) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logging.Warn(logger, "metrics shutdown failed", "error", err)
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
