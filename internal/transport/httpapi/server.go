package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mentorhub/contextd/internal/service/bizcontext"
	"github.com/mentorhub/contextd/internal/service/memory"
	"github.com/mentorhub/contextd/internal/service/relevance"
	"github.com/mentorhub/contextd/pkg/log"
)

// Server exposes the context builder, relevance scorer, and memory write
// path to the platform backend over HTTP.
type Server struct {
	srv      *http.Server
	logger   zerolog.Logger
	builder  *bizcontext.Builder
	scorer   *relevance.Scorer
	memories *memory.Manager
}

func NewServer(ctx context.Context, addr string, builder *bizcontext.Builder, scorer *relevance.Scorer, memories *memory.Manager) *Server {
	s := &Server{
		logger:   *log.FromCtx(ctx),
		builder:  builder,
		scorer:   scorer,
		memories: memories,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tenants/{tenantID}/context", s.handleGetContext)
		r.Post("/tenants/{tenantID}/memories", s.handleAddMemory)
		r.Delete("/tenants/{tenantID}/memories/{memoryID}", s.handleDeleteMemory)
		r.Post("/relevance/score", s.handleScore)
		r.Get("/relevance/threshold/{role}", s.handleThreshold)
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("starting http api")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestLogger attaches the service logger to the request context and
// logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r.WithContext(s.logger.WithContext(r.Context())))

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
