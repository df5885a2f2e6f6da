package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mlb-affiliates-service/internal/app/schedule"
	"mlb-affiliates-service/internal/cache"
	"mlb-affiliates-service/internal/config"
	httpserver "mlb-affiliates-service/internal/http"
	"mlb-affiliates-service/internal/http/handlers"
	"mlb-affiliates-service/internal/http/middleware"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/metrics"
	"mlb-affiliates-service/internal/poller"
	"mlb-affiliates-service/internal/providers"
	"mlb-affiliates-service/internal/reconcile"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	components    Components
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// Components is the schedule pipeline shared by the HTTP server and the CLI.
type Components struct {
	Service  *schedule.Service
	Provider *providers.CachedProvider
	Cache    cache.Cache
}

// Close releases the roster cache.
func (c Components) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}

// BuildComponents wires the provider chain, the reconciler and the schedule service.
// recorder may be nil.
func BuildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) Components {
	c := buildCache(ctx, cfg, logger)
	provider := newProviderFactory(logger, recorder).build(cfg, c)
	return assemble(cfg, logger, recorder, provider, c)
}

func assemble(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, provider *providers.CachedProvider, c cache.Cache) Components {
	reconciler := reconcile.New(provider, reconcile.Options{
		Unknown:     cfg.Reconcile.Unknown,
		Concurrency: cfg.Reconcile.Concurrency,
		Logger:      logger,
		Metrics:     recorder,
	})
	svc := schedule.NewService(schedule.Config{
		Affiliates:   provider,
		Schedule:     provider,
		Reconciler:   reconciler,
		ParentTeamID: cfg.ParentTeamID,
		Logger:       logger,
	})
	return Components{Service: svc, Provider: provider, Cache: c}
}

// New constructs a server with the configured provider, cache and poller.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	return newServer(ctx, cfg, logger, nil, nil)
}

// newServer lets tests inject the base provider and recorder.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger, base providers.DataProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(ctx, cfg, logger, recorder)

	c := buildCache(ctx, cfg, logger)
	factory := newProviderFactory(logger, recorder)
	var provider *providers.CachedProvider
	if base != nil {
		provider = factory.wrap(cfg, base, c)
	} else {
		provider = factory.build(cfg, c)
	}
	comps := assemble(cfg, logger, recorder, provider, c)

	var plr Poller
	if cfg.Poller.Enabled {
		plr = poller.New(poller.Config{
			Refresher:    provider,
			ParentTeamID: cfg.ParentTeamID,
			Schedule:     cfg.Poller.Schedule,
			Location:     cfg.Location(),
			Logger:       logger,
			Metrics:      recorder,
		})
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		components:    comps,
		httpServer:    buildHTTPServer(cfg, comps.Service, logger, recorder, plr),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, comps Components, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		components: comps,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svc *schedule.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(svc, cfg.Location(), logger, statusFn)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(":"+cfg.Port, wrapped)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		if err := s.poller.Start(ctx); err != nil {
			logging.Error(s.logger, "poller failed to start", err)
			if stop != nil {
				stop()
			}
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.components.Close(); err != nil {
		logging.Warn(s.logger, "cache close failed", "error", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = newNetHTTPServer(":"+cfg.Metrics.Port, mux)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Poller returns the roster refresh loop, nil when disabled.
func (s *Server) Poller() Poller {
	return s.poller
}
