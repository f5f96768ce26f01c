package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every MASKPREVIEW_ env var that Load() reads.
var allConfigKeys = []string{
	"MASKPREVIEW_MODE",
	"MASKPREVIEW_BASE_PATH",
	"MASKPREVIEW_LISTEN_ADDR",
	"MASKPREVIEW_CATALOG_ORIGIN",
	"MASKPREVIEW_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all MASKPREVIEW_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.CatalogOrigin)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_ProductionBasePath(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_MODE", "production")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, "/mask-image-tester/", cfg.BasePath)
}

func TestLoad_BasePathOverride(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_MODE", "Production")
	t.Setenv("MASKPREVIEW_BASE_PATH", "tools/masks")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, "/tools/masks/", cfg.BasePath)
}

func TestLoad_Overrides(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("MASKPREVIEW_CATALOG_ORIGIN", "https://cdn.example.com/")
	t.Setenv("MASKPREVIEW_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "https://cdn.example.com", cfg.CatalogOrigin)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_CatalogOriginFollowsListenAddr(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_LISTEN_ADDR", "127.0.0.1:3000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.CatalogOrigin)
}

func TestLoad_InvalidMode(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_MODE", "staging")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASKPREVIEW_MODE")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MASKPREVIEW_LOG_LEVEL", "loud")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASKPREVIEW_LOG_LEVEL")
}

func TestNormalizeBasePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"", "/"},
		{"  ", "/"},
		{"mask-image-tester", "/mask-image-tester/"},
		{"/mask-image-tester", "/mask-image-tester/"},
		{"//a/b//", "/a/b/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBasePath(tt.in))
		})
	}
}
