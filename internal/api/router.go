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
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"disasterAlert/internal/api/handlers/http/admin"
	"disasterAlert/internal/api/handlers/http/public"
	"disasterAlert/internal/api/handlers/http/system"
	"disasterAlert/internal/config"
	"disasterAlert/internal/middleware"
	"disasterAlert/internal/service"
)

const visitorTTL = 10 * time.Minute

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	svc *service.Service,
	queue service.PingQueue,
	checks map[string]system.Check,
	clock clockwork.Clock,
) *Server {
	adminHandler := admin.NewHandler(logger, svc.ZoneService, svc.ResourceService, svc.EntityService, svc.StatsService)
	publicHandler := public.NewHandler(logger, svc.ZoneQueryService, svc.TrackingService, queue, svc.EntityService)
	systemHandler := system.NewHandler(logger, checks)

	limit := func() func(http.Handler) http.Handler {
		return middleware.Limit(ctx, cfg.Http.RateLimit, cfg.Http.RateBurst, visitorTTL, clock, logger)
	}

	r := InitRouter(cfg, adminHandler, publicHandler, systemHandler, limit)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// InitRouter mounts every route under /api/v1. limit builds a fresh rate limiter per route group.
func InitRouter(
	cfg *config.Config,
	adminHandler *admin.Handler,
	publicHandler *public.Handler,
	systemHandler *system.Handler,
	limit func() func(http.Handler) http.Handler,
) *chi.Mux {
	r := chi.NewMux()

	// RequestID first so chi's Logger and the handlers see the same request_id
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(limit())

			ar.Get("/dashboard", adminHandler.AdminDashboard)
			ar.Get("/stats", adminHandler.AdminStats)
			ar.Get("/resources", adminHandler.AdminResourcesAggregate)

			ar.Route("/zones", func(zr chi.Router) {
				zr.Post("/", adminHandler.AdminZoneCreate)
				zr.Get("/", adminHandler.AdminZoneList)
				zr.Delete("/", adminHandler.AdminZonesReset)
				zr.Get("/export", adminHandler.AdminZonesExport)

				zr.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", adminHandler.AdminZoneGet)
					rr.Put("/", adminHandler.AdminZoneUpdate)
					rr.Delete("/", adminHandler.AdminZoneDeactivate)
					rr.Post("/alert", adminHandler.AdminZoneAlert)
					rr.Get("/entities", adminHandler.AdminZoneEntities)
					rr.Get("/resources", adminHandler.AdminZoneResourcesGet)
					rr.Patch("/resources", adminHandler.AdminZoneResourcesAdjust)
					rr.Put("/resources", adminHandler.AdminZoneResourcesSet)
				})
			})

			ar.Put("/entities/{id}/status", adminHandler.AdminEntityStatus)
			ar.Post("/volunteers/{id}/assignments", adminHandler.AdminVolunteerAssign)
			ar.Delete("/volunteers/{id}/assignments/{userID}", adminHandler.AdminVolunteerUnassign)
		})

		// PUBLIC
		api.Group(func(pr chi.Router) {
			pr.Use(limit())

			pr.Post("/entities", publicHandler.PublicEntityRegister)
			pr.Get("/entities/{id}", publicHandler.PublicEntityGet)

			pr.Post("/location/ping", publicHandler.PublicLocationPing)
			pr.Post("/location/ping/async", publicHandler.PublicLocationPingAsync)

			pr.Get("/zones", publicHandler.PublicZonesList)
			pr.Get("/zones/nearest", publicHandler.PublicZoneNearest)
			pr.Get("/zones/{id}/classify", publicHandler.PublicZoneClassify)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
		api.Get("/ready", systemHandler.SystemReady)
		api.Handle("/metrics", promhttp.Handler())
	})

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
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
