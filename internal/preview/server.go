// Package preview serves a built site locally, with build status, metrics
// and optional rebuild-on-change.
package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brioche-dev/brioche-website/internal/build"
	"github.com/brioche-dev/brioche-website/internal/config"
	"github.com/brioche-dev/brioche-website/internal/redirects"
)

// Server is the HTTP preview server.
type Server struct {
	router  chi.Router
	status  *build.Status
	metrics *Metrics
	reg     *prometheus.Registry
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the preview server. A nil registry gets
// a fresh one.
func NewServer(status *build.Status, metrics *Metrics, reg *prometheus.Registry, log *slog.Logger, cfg config.Config) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if metrics == nil {
		metrics = NewMetrics(reg)
	}
	s := &Server{
		status:  status,
		metrics: metrics,
		reg:     reg,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, s.metrics))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	r.Get("/api/build/status", s.handleBuildStatus)

	// Everything else is the site itself.
	r.Group(func(r chi.Router) {
		r.Use(redirects.Table(s.cfg.Site.Redirects))
		r.Handle("/*", s.siteHandler())
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		jsonError(w, "build status unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status.Snapshot())
}

// siteHandler serves the output directory. Unknown paths get the site's
// 404 page when one was built.
func (s *Server) siteHandler() http.Handler {
	root := s.cfg.OutputDir
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(name); os.IsNotExist(err) {
			notFound := filepath.Join(root, "404.html")
			if body, err := os.ReadFile(notFound); err == nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusNotFound)
				w.Write(body)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
