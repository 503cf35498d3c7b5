package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"bloodlink/internal/api/handlers/http/admin"
	"bloodlink/internal/api/handlers/http/alerts"
	"bloodlink/internal/api/handlers/http/coordination"
	"bloodlink/internal/api/handlers/http/matching"
	"bloodlink/internal/api/handlers/http/system"
	"bloodlink/internal/config"
	"bloodlink/internal/metrics"
	"bloodlink/internal/middleware"
	"bloodlink/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, m *metrics.Metrics) *Server {
	matchingHandler := matching.NewHandler(logger, svc.Matching)
	alertsHandler := alerts.NewHandler(logger, svc.Alerts)
	coordinationHandler := coordination.NewHandler(logger, svc.Coordination)
	adminHandler := admin.NewHandler(logger, svc.Coordination)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, matchingHandler, alertsHandler, coordinationHandler, adminHandler, systemHandler, m, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	matchingHandler *matching.Handler,
	alertsHandler *alerts.Handler,
	coordinationHandler *coordination.Handler,
	adminHandler *admin.Handler,
	systemHandler *system.Handler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/matching", func(mr chi.Router) {
			mr.Use(middleware.Limit(20, 40, 5*time.Minute, logger))
			mr.Get("/nearby-donors", matchingHandler.NearbyDonors)
			mr.Get("/cache/stats", matchingHandler.CacheStats)
		})

		api.Route("/alerts", func(ar chi.Router) {
			ar.Get("/stream", alertsHandler.Stream)
			ar.With(middleware.Limit(10, 20, 5*time.Minute, logger)).
				Get("/recent", alertsHandler.Recent)
		})

		api.Route("/requests", func(rr chi.Router) {
			rr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			rr.Post("/", coordinationHandler.RequestCreate)
			rr.Get("/", coordinationHandler.RequestList)

			rr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", coordinationHandler.RequestGet)
				ir.Put("/status", coordinationHandler.RequestUpdateStatus)
				ir.Delete("/", coordinationHandler.RequestDelete)
			})
		})

		api.Route("/donations", func(dr chi.Router) {
			dr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			dr.Post("/", coordinationHandler.DonationSchedule)
			dr.Put("/{id}/complete", coordinationHandler.DonationComplete)
			dr.Put("/{id}/cancel", coordinationHandler.DonationCancel)
		})

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKey(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.Stats)
			ar.Get("/inventory/{facilityId}", adminHandler.InventorySummary)
			ar.Post("/inventory/adjust", adminHandler.InventoryAdjust)
		})

		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down http server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
