// Package server exposes the catalog of a DuckDB connection as a small
// read-only JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/dialect"
	"github.com/koustreak/duckwire/internal/logger"
)

// Config holds HTTP server settings.
type Config struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	DefaultSchema string // used when a request carries no ?schema=
}

// Server serves catalog requests against one connection.
type Server struct {
	cfg     Config
	dialect *dialect.Dialect
	conn    database.Conn
	log     *logger.Logger
	router  chi.Router
}

// New builds the router. conn must be safe for concurrent use; each
// request opens its own cursors.
func New(cfg Config, d *dialect.Dialect, conn database.Conn, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{cfg: cfg, dialect: d, conn: conn, log: log}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", s.handleTables)
		r.Get("/{table}", s.handleTable)
	})
	r.Route("/views", func(r chi.Router) {
		r.Get("/", s.handleViews)
		r.Get("/{view}", s.handleView)
	})
	r.Get("/sequences", s.handleSequences)

	r.Route("/temp", func(r chi.Router) {
		r.Get("/tables", s.handleTempTables)
		r.Get("/views", s.handleTempViews)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.With().Str("addr", s.cfg.Addr).Logger().Info("catalog server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("catalog server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Request().
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
