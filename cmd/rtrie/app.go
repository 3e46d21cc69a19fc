package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rohanthewiz/rtrie"
	"github.com/rohanthewiz/rtrie/config"
	"github.com/rohanthewiz/rtrie/logger"
	"github.com/rohanthewiz/rtrie/middleware"
	"github.com/rohanthewiz/rtrie/send"
)

// app is the demo application and what it needs to be served.
type app struct {
	server   *rtrie.Server
	registry *prometheus.Registry
	metrics  *middleware.Metrics
}

func newApp(cfg config.Config, log logger.Logger) *app {
	a := &app{
		server: rtrie.NewServer(rtrie.ServerOptions{
			Address:     cfg.Address,
			Verbose:     cfg.Verbose,
			Logger:      log,
			ReadTimeout: cfg.ReadTimeout,
		}),
		registry: prometheus.NewRegistry(),
	}

	s := a.server
	s.Use(middleware.RequestID(), middleware.RequestInfo(log))

	if cfg.Metrics {
		a.metrics = middleware.NewMetrics(middleware.WithRegistry(a.registry))
		s.Use(a.metrics.Handler())
	}

	if cfg.RateLimit > 0 {
		s.Use(middleware.RateLimit(middleware.NewVisitors(cfg.RateLimit, cfg.RateBurst)))
	}

	s.Get("/", func(ctx rtrie.Context) error {
		return send.Text(ctx, "Hello World")
	})

	s.Get("/_routes", s.RoutesPage)

	api := s.Group("/api", middleware.JSONBody())

	api.Get("/user/:id", func(ctx rtrie.Context) error {
		return send.JSON(ctx, map[string]string{"id": ctx.Request().Param("id")})
	})

	api.Post("/user", func(ctx rtrie.Context) error {
		body, ok := ctx.Get(middleware.JSONKey).(map[string]any)
		if !ok {
			return send.Status(ctx, 422)
		}
		return ctx.Status(201).WriteJSON(body)
	})

	return a
}
