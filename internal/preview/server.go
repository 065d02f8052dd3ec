// Package preview serves the composed page during development. Every page
// request renders the templates afresh; template edits and the daily date
// rollover are pushed to open browsers over Server-Sent Events.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/pipeline"
)

const shutdownTimeout = 5 * time.Second

// Route paths.
const (
	RouteModule     = "/@virtual-template"
	RouteLiveReload = "/livereload"
	RouteHealth     = "/health"
	RouteMetrics    = "/metrics"
)

// Server is the preview HTTP server.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	hub      *LiveReloadHub
	recorder metrics.Recorder
	registry *prometheus.Registry
	errors   *ferrors.HTTPErrorAdapter
	logger   *slog.Logger
	clock    clockwork.Clock
	rebuilds *rebuildQueue
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for rendering, debouncing and scheduling.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a preview server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.Preview.MetricsEnabled() {
		s.registry = prometheus.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}
	s.errors = ferrors.NewHTTPErrorAdapter(s.logger)
	s.hub = NewLiveReloadHub(s.recorder, s.logger)
	s.rebuilds = newRebuildQueue(s.clock, debounceDelay)
	s.pipeline = pipeline.New(cfg,
		pipeline.WithClock(s.clock),
		pipeline.WithRecorder(s.recorder),
		pipeline.WithLogger(s.logger))
	return s
}

// Hub returns the live reload hub.
func (s *Server) Hub() *LiveReloadHub { return s.hub }

// Handler returns the preview routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.instrument("page", http.HandlerFunc(s.handlePage)))
	mux.Handle("GET /index.html", s.instrument("page", http.HandlerFunc(s.handlePage)))
	mux.Handle("GET "+RouteModule, s.instrument("module", http.HandlerFunc(s.handleModule)))
	mux.HandleFunc("GET "+RouteHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	if s.cfg.Preview.LiveReloadEnabled() {
		mux.Handle("GET "+RouteLiveReload, s.hub)
		mux.HandleFunc("GET "+ScriptPath, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			_, _ = io.WriteString(w, LiveReloadScript)
		})
	}
	if s.registry != nil {
		mux.Handle("GET "+RouteMetrics, metrics.HTTPHandler(s.registry))
	}
	mux.Handle("/", s.instrument("static", http.FileServer(http.Dir(s.cfg.Preview.StaticDir))))
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.pipeline.Render()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	page := doc.HTML
	if s.cfg.Preview.LiveReloadEnabled() {
		page = InjectLiveReload(page, ScriptPath)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = io.WriteString(w, page)
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	src, err := s.pipeline.Module()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = io.WriteString(w, src)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.recorder.IncPreviewRequest(route, sw.status)
	})
}

// Rebuild renders the page and broadcasts its fingerprint. A failed
// render broadcasts a unique error marker so browsers reload and show
// the error response.
func (s *Server) Rebuild() {
	doc, err := s.pipeline.Render()
	if err != nil {
		s.logger.Warn("Rebuild failed", logfields.Error(err))
		s.hub.Broadcast(fmt.Sprintf("error:%d", s.clock.Now().UnixNano()))
		return
	}
	s.hub.Broadcast(doc.Fingerprint)
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Preview.Port)
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to listen").
			WithContext("addr", addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln, watches the templates directory and runs the
// refresh schedule until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	watcher, err := newTemplateWatcher(s.cfg.Templates.Directory, s.logger)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	sched, err := newRefreshScheduler(s.cfg.Preview.RefreshSchedule, s.clock, s.rebuilds.Request)
	if err != nil {
		_ = ln.Close()
		return err
	}
	if sched != nil {
		sched.Start()
		defer func() { _ = sched.Shutdown() }()
	}

	s.Rebuild()

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go s.rebuildWorker(workerCtx)

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	s.logger.Info("Preview server listening",
		slog.String("addr", ln.Addr().String()),
		slog.Bool("live_reload", s.cfg.Preview.LiveReloadEnabled()))

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(srv)
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "preview server failed").Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(srv)
			}
			if handleFileEvent(watcher, ev, s.logger) {
				s.rebuilds.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(srv)
			}
			s.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) rebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rebuilds.C():
			s.logger.Info("Change detected; re-rendering page")
			s.Rebuild()
		}
	}
}

func (s *Server) shutdown(srv *http.Server) error {
	s.logger.Info("Shutting down preview server...")
	s.rebuilds.Stop()
	// SSE handlers only return once the hub releases them.
	s.hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "preview server shutdown failed").Build()
	}
	return nil
}
