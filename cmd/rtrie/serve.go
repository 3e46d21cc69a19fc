package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohanthewiz/rtrie/config"
	"github.com/rohanthewiz/rtrie/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func serveCmd(envFiles *[]string) *cobra.Command {
	var (
		address string
		engine  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo application",
		Long: `Run the demo application.

The raw engine uses the built-in HTTP/1.1 listener and serves /metrics
on a separate address. The std engine serves through net/http with
/metrics on the same address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFiles...)
			if err != nil {
				return err
			}

			if address != "" {
				cfg.Address = address
			}
			if engine != "" {
				cfg.Engine = engine
				if err = cfg.Validate(); err != nil {
					return err
				}
			}

			log := logger.New(logger.WithLevel(logger.NewLogLevel(cfg.LogLevel)))
			a := newApp(cfg, log)

			if cfg.Engine == config.EngineStd {
				return serveStd(cfg, a, log)
			}
			return serveRaw(cfg, a, log)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (overrides "+config.EnvAddress+")")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "raw or std (overrides "+config.EnvEngine+")")

	return cmd
}

func (a *app) metricsHandler() http.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
}

func serveRaw(cfg config.Config, a *app, log logger.Logger) error {
	if a.metrics != nil {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", a.metricsHandler())

			log.Info("serving metrics", logger.Fields{"address": cfg.MetricsAddr})
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error("metrics listener stopped", logger.Fields{"error": err})
			}
		}()
	}

	log.Info("serving", logger.Fields{"address": cfg.Address, "engine": cfg.Engine})
	return a.server.Run()
}

func serveStd(cfg config.Config, a *app, log logger.Logger) error {
	mux := http.NewServeMux()
	if a.metrics != nil {
		mux.Handle("/metrics", a.metricsHandler())
	}
	mux.Handle("/", a.server)

	var handler http.Handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(cfg.Verbose))(mux)
	if cfg.Verbose {
		handler = handlers.CombinedLoggingHandler(os.Stdout, handler)
	}

	srv := &http.Server{
		Addr:        cfg.Address,
		Handler:     handler,
		ReadTimeout: cfg.ReadTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("serving", logger.Fields{"address": cfg.Address, "engine": cfg.Engine})
		errs <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return serr.Wrap(err, "address", cfg.Address)
		}
		return nil
	case <-sig:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
