// Package server runs the public listener and the optional admin listener
// and shuts both down when the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Gobd/querycheck/dispatch"
	"github.com/Gobd/querycheck/internal/api"
	"github.com/Gobd/querycheck/internal/config"
	"github.com/Gobd/querycheck/internal/metrics"
	"github.com/Gobd/querycheck/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"
)

// PublicHandler wraps d with request logging, metrics and panic recovery.
func PublicHandler(log zerolog.Logger, d *dispatch.Dispatcher, m *metrics.Metrics) http.Handler {
	var h http.Handler = d
	h = middleware.Recoverer(h)
	h = m.Middleware(d.Has)(h)
	h = middleware.RealIP(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	h = hlog.NewHandler(log)(h)
	return h
}

// AdminHandler serves /metrics and the Swagger UI of doc under /swagger/.
func AdminHandler(m *metrics.Metrics, doc *openapi3.T) (http.Handler, error) {
	swagger, err := openapi.SwaggerHandler("/swagger", doc)
	if err != nil {
		return nil, fmt.Errorf("swagger: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Mount("/swagger", swagger)
	return r, nil
}

// Server owns the listeners of the service.
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	public *http.Server
	admin  *http.Server
}

// New builds the public server and, when cfg.Admin.Addr is set, the admin
// server.
func New(cfg *config.Config, log zerolog.Logger, version string) (*Server, error) {
	m := metrics.New()
	d := dispatch.New(log, api.New(m))

	s := &Server{
		cfg: cfg,
		log: log,
		public: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      PublicHandler(log, d, m),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	if cfg.Admin.Addr != "" {
		doc, err := api.Document(version)
		if err != nil {
			return nil, err
		}
		h, err := AdminHandler(m, doc)
		if err != nil {
			return nil, err
		}
		s.admin = &http.Server{
			Addr:         cfg.Admin.Addr,
			Handler:      h,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}
	}

	return s, nil
}

// Run listens on the configured addresses and blocks until ctx is cancelled
// or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	public, err := net.Listen("tcp", s.public.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.public.Addr, err)
	}

	var admin net.Listener
	if s.admin != nil {
		admin, err = net.Listen("tcp", s.admin.Addr)
		if err != nil {
			_ = public.Close()
			return fmt.Errorf("listen %s: %w", s.admin.Addr, err)
		}
	}

	return s.Serve(ctx, public, admin)
}

// Serve is like Run on already open listeners. admin may be nil.
func (s *Server) Serve(ctx context.Context, public, admin net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", public.Addr().String()).Msg("serving bmi")
		return serve(s.public, public)
	})

	if s.admin != nil && admin != nil {
		g.Go(func() error {
			s.log.Info().Str("addr", admin.Addr().String()).Msg("serving admin")
			return serve(s.admin, admin)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		err := s.public.Shutdown(shutdownCtx)
		if s.admin != nil {
			err = errors.Join(err, s.admin.Shutdown(shutdownCtx))
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func serve(srv *http.Server, l net.Listener) error {
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", l.Addr(), err)
	}
	return nil
}
