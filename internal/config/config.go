// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Mode selects the deployment target. It only decides the default base path.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ProductionBasePath is the sub-path the tool is published under in production.
const ProductionBasePath = "/mask-image-tester/"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Mode          Mode
	BasePath      string
	ListenAddr    string
	CatalogOrigin string
	LogLevel      slog.Level
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: MASKPREVIEW_MODE (development),
// MASKPREVIEW_BASE_PATH (/ in development, /mask-image-tester/ in production),
// MASKPREVIEW_LISTEN_ADDR (127.0.0.1:8080), MASKPREVIEW_CATALOG_ORIGIN
// (http:// + listen address) and MASKPREVIEW_LOG_LEVEL (info).
func Load() (*Config, error) {
	mode := ModeDevelopment
	if v, ok := os.LookupEnv("MASKPREVIEW_MODE"); ok && v != "" {
		switch Mode(strings.ToLower(v)) {
		case ModeDevelopment:
			mode = ModeDevelopment
		case ModeProduction:
			mode = ModeProduction
		default:
			return nil, fmt.Errorf("MASKPREVIEW_MODE has invalid value %q: want development or production", v)
		}
	}

	basePath := DefaultBasePath(mode)
	if v, ok := os.LookupEnv("MASKPREVIEW_BASE_PATH"); ok && v != "" {
		basePath = NormalizeBasePath(v)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("MASKPREVIEW_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	catalogOrigin := "http://" + listenAddr
	if v, ok := os.LookupEnv("MASKPREVIEW_CATALOG_ORIGIN"); ok && v != "" {
		catalogOrigin = strings.TrimRight(v, "/")
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("MASKPREVIEW_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("MASKPREVIEW_LOG_LEVEL has invalid value %q: %w", v, err)
		}
	}

	return &Config{
		Mode:          mode,
		BasePath:      basePath,
		ListenAddr:    listenAddr,
		CatalogOrigin: catalogOrigin,
		LogLevel:      logLevel,
	}, nil
}

// DefaultBasePath returns the base path used when MASKPREVIEW_BASE_PATH is unset.
func DefaultBasePath(mode Mode) string {
	if mode == ModeProduction {
		return ProductionBasePath
	}
	return "/"
}

// NormalizeBasePath makes p start and end with a single slash.
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}
