package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/maskpreview/internal/config"
)

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0.0.0.0:8080", "127.0.0.1:8080"},
		{":9090", "127.0.0.1:9090"},
		{"127.0.0.1:3000", "127.0.0.1:3000"},
		{"10.0.0.5:80", "10.0.0.5:80"},
		{"garbage", "127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeAddr(tt.raw))
		})
	}
}

func TestHealthURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "development root",
			cfg:  config.Config{ListenAddr: "127.0.0.1:8080", BasePath: "/"},
			want: "http://127.0.0.1:8080/api/v1/health",
		},
		{
			name: "production sub-path",
			cfg:  config.Config{ListenAddr: "0.0.0.0:80", BasePath: config.ProductionBasePath},
			want: "http://127.0.0.1:80/mask-image-tester/api/v1/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, healthURL(&tt.cfg))
		})
	}
}

// setHealthEnv points config.Load at server with the given base path and
// clears every other setting.
func setHealthEnv(t *testing.T, server *httptest.Server, basePath string) {
	t.Helper()
	t.Setenv("MASKPREVIEW_MODE", "")
	t.Setenv("MASKPREVIEW_CATALOG_ORIGIN", "")
	t.Setenv("MASKPREVIEW_LOG_LEVEL", "")
	t.Setenv("MASKPREVIEW_LISTEN_ADDR", server.Listener.Addr().String())
	t.Setenv("MASKPREVIEW_BASE_PATH", basePath)
}

func newHealthServer(t *testing.T, path, status string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"` + status + `","time":"2026-01-01T00:00:00Z"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCheck_FollowsBasePath(t *testing.T) {
	server := newHealthServer(t, "/mask-image-tester/api/v1/health", "ok")

	setHealthEnv(t, server, "/mask-image-tester/")
	assert.NoError(t, check(context.Background()))

	setHealthEnv(t, server, "/")
	err := check(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 404")
}

func TestCheck_ProductionModeDefaultsToSubPath(t *testing.T) {
	server := newHealthServer(t, "/mask-image-tester/api/v1/health", "ok")
	setHealthEnv(t, server, "")
	t.Setenv("MASKPREVIEW_MODE", "production")

	assert.NoError(t, check(context.Background()))
}

func TestCheck_RejectsUnhealthyBody(t *testing.T) {
	server := newHealthServer(t, "/api/v1/health", "degraded")
	setHealthEnv(t, server, "/")

	assert.ErrorContains(t, check(context.Background()), `reported status "degraded"`)
}

func TestCheck_InvalidConfig(t *testing.T) {
	server := newHealthServer(t, "/api/v1/health", "ok")
	setHealthEnv(t, server, "/")
	t.Setenv("MASKPREVIEW_MODE", "staging")

	assert.ErrorContains(t, check(context.Background()), "load config")
}
