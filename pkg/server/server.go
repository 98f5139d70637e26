package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/milv-tools/rvu-atlas/pkg/handlers/dashboard"
	rvuatlasmiddleware "github.com/milv-tools/rvu-atlas/pkg/server/middleware"
	"github.com/milv-tools/rvu-atlas/pkg/services/dashboard"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Dashboard dashboard.Controller
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	dashHandler := handlers.NewHandler(deps.Dashboard)

	router := chi.NewRouter()

	router.Use(rvuatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", dashHandler.GetStatus)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashHandler.GetSnapshot)
			r.Get("/kpis", dashHandler.GetKPIs)
			r.Get("/modalities", dashHandler.GetModalities)
			r.Get("/workload/daily", dashHandler.GetDailyWorkload)
			r.Get("/workload/hourly", dashHandler.GetHourlyWorkload)
			r.Get("/timeseries", dashHandler.GetTimeSeries)
			r.Post("/refresh", dashHandler.Refresh)
		})
		r.Get("/physicians/{physician}/modalities", dashHandler.GetPhysicianModalities)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
