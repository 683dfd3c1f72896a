package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/skeleton-api/internal/config"
	"github.com/ironsheep/skeleton-api/internal/skeleton"
)

// readHeaderTimeout bounds how long a client may take to send headers.
const readHeaderTimeout = 10 * time.Second

// Server handles HTTP requests for the skeletonization API
type Server struct {
	cfg      config.Config
	pipeline skeleton.Pipeline
	router   chi.Router
}

// New creates a server from a validated configuration
func New(cfg config.Config) *Server {
	endpoint, branch := cfg.MarkerColors()

	p := skeleton.NewPipeline()
	p.Style = skeleton.Style{
		Radius:        cfg.MarkerRadius,
		EndpointColor: endpoint,
		BranchColor:   branch,
	}
	p.MaxPixels = cfg.MaxPixels
	p.Debug = cfg.Debug()

	s := &Server{
		cfg:      cfg,
		pipeline: p,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes builds the chi router
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{headerEndpoints, headerBranches, headerFormat},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	r.Post("/skeletonize", s.handleSkeletonize)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Run serves HTTP on the configured port until ctx is cancelled, then shuts
// down gracefully within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
