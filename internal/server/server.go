// Package server serves the knock form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-knock/internal/config"
	"github.com/goliatone/go-knock/internal/knock"
	"github.com/goliatone/go-knock/internal/logging"
	"github.com/goliatone/go-knock/internal/metrics"
	"github.com/goliatone/go-knock/pkg/render"
	"github.com/goliatone/go-knock/pkg/renderers/jsonapi"
	"github.com/goliatone/go-knock/pkg/renderers/vanilla"
)

const shutdownGrace = 10 * time.Second

// Server wires the knock form, the fwknop client and the renderers into an
// HTTP handler.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
	client    *knock.Client
	renderers *render.Registry
	theme     *theme.RendererConfig
	product   string
	version   string
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logging.OrNop(logger) }
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClient replaces the fwknop client.
func WithClient(client *knock.Client) Option {
	return func(s *Server) {
		if client != nil {
			s.client = client
		}
	}
}

// WithRenderers replaces the renderer registry. The first registered
// renderer answers requests without a matching Accept header.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithProduct sets the name and version shown in the page footer and the
// OpenAPI document.
func WithProduct(name, version string) Option {
	return func(s *Server) {
		s.product = name
		s.version = version
	}
}

// New builds a Server for cfg.
func New(cfg *config.Config, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	s := &Server{
		cfg:     cfg,
		logger:  zap.NewNop(),
		product: "go-knock",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.client == nil {
		s.client = knock.NewClient(cfg.FwknopCLI, cfg.TmpDir, knock.WithLogger(s.logger))
	}
	if s.renderers == nil {
		var pageOptions []vanilla.Option
		if cfg.TemplatesDir != "" {
			pageOptions = append(pageOptions, vanilla.WithTemplatesDir(cfg.TemplatesDir))
		}
		registry, err := DefaultRenderers(pageOptions...)
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}

	themeCfg, err := resolveTheme(cfg.Theme, s.staticPrefix())
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.theme = themeCfg

	s.router = s.routes()
	return s, nil
}

// DefaultRenderers registers the HTML page renderer, used by default, and the
// JSON renderer.
func DefaultRenderers(pageOptions ...vanilla.Option) (*render.Registry, error) {
	page, err := vanilla.New(pageOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: vanilla renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(page); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonapi.New(jsonapi.WithIndent("  "))); err != nil {
		return nil, err
	}
	return registry, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.cfg.TrustedProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.UseHTTPSOnly {
			r.Use(httpsOnly)
		}
		r.Get(s.cfg.PathApplication, s.handleIndex)
		r.Post(s.cfg.PathApplication, s.handleIndex)
		r.Get(s.path("openapi.json"), s.handleOpenAPI)

		static := s.staticPrefix() + "/"
		r.Handle(static+"*", http.StripPrefix(static, http.FileServer(http.FS(vanilla.AssetsFS()))))
	})
	return r
}

// Run serves on the configured listen address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("knock server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("path", s.cfg.PathApplication),
		zap.Bool("https_only", s.cfg.UseHTTPSOnly),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("knock server stopped")
	return nil
}

func (s *Server) path(name string) string {
	return strings.TrimSuffix(s.cfg.PathApplication, "/") + "/" + name
}

func (s *Server) staticPrefix() string { return s.path("static") }

func resolveTheme(cfg config.ThemeConfig, staticPrefix string) (*theme.RendererConfig, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, nil
	}
	prefix := strings.TrimSpace(cfg.AssetPrefix)
	if prefix == "" {
		prefix = staticPrefix
	}
	manifest := &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
		Tokens:  cfg.Tokens,
		Assets: theme.Assets{
			Prefix: prefix,
			Files:  map[string]string{"stylesheet": vanilla.StylesheetName},
		},
		Variants: make(map[string]theme.Variant, len(cfg.Variants)),
	}
	for variant, tokens := range cfg.Variants {
		manifest.Variants[variant] = theme.Variant{Tokens: tokens}
	}
	return render.ThemeConfig(manifest, cfg.Variant)
}
