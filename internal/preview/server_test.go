package preview

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brioche-dev/brioche-website/internal/build"
	"github.com/brioche-dev/brioche-website/internal/config"
)

func testServer(t *testing.T) (*Server, *Metrics) {
	t.Helper()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(out, "404.html"), []byte("<h1>lost</h1>"), 0o644))

	cfg := config.Config{OutputDir: out, Site: config.DefaultSite()}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(build.NewStatus(), metrics, reg, log, cfg), metrics
}

func get(s http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := get(s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRedirectTable(t *testing.T) {
	s, _ := testServer(t)
	for _, target := range []string{"/docs", "/docs/"} {
		rec := get(s, target)
		assert.Equal(t, http.StatusMovedPermanently, rec.Code, target)
		assert.Equal(t, "/docs/getting-started", rec.Header().Get("Location"), target)
	}
}

func TestStaticFiles(t *testing.T) {
	s, _ := testServer(t)

	rec := get(s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "home")

	rec = get(s, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "lost")
}

func TestBuildStatus(t *testing.T) {
	s, _ := testServer(t)
	rec := get(s, "/api/build/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap build.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, build.PhaseIdle, snap.Phase)
}

func TestMetrics(t *testing.T) {
	s, m := testServer(t)
	get(s, "/health")
	get(s, "/nowhere")
	m.ObserveBuild(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("success")))

	rec := get(s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "site_requests_total"), body)
	assert.Contains(t, body, "site_builds_total")
}
