// Package server exposes week numbers, month grids, holidays and school
// vacations as a read-only JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/fzed51/week-number/internal/holiday"
	"github.com/fzed51/week-number/internal/vacation"
)

const shutdownTimeout = 10 * time.Second

// Server serves the API over immutable, preloaded indexes
type Server struct {
	handler *Handler
	addr    string
	origins []string
	logger  *zap.Logger
}

// New creates a new Server
func New(addr string, origins []string, holidays *holiday.Index, vacations *vacation.Index, loc *time.Location, logger *zap.Logger) *Server {
	return &Server{
		handler: NewHandler(holidays, vacations, loc, logger),
		addr:    addr,
		origins: origins,
		logger:  logger,
	}
}

// Router returns the configured chi router
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	h := s.handler
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/week", h.GetWeek)
		r.Get("/month", h.GetMonth)
		r.Get("/holiday", h.GetHoliday)
		r.Get("/holidays/{year}", h.ListHolidays)
		r.Get("/vacation", h.GetVacation)
		r.Route("/vacations", func(r chi.Router) {
			r.Get("/", h.ListVacations)
			r.Get("/upcoming", h.UpcomingVacations)
		})
	})

	return r
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("Request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
