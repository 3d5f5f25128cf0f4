package site

import (
	"log"
	"os"
	"strings"
	"time"
)

// SiteConfig holds all configuration for a build and the preview server.
// Values come from environment variables; zero fields fall back to defaults.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags
	Author      string // Author name for JSON-LD

	ContentDir string // Markdown sources (default "content")
	StaticDir  string // Static assets copied into the output (default "static")
	OutputDir  string // Rendered site (default "public")

	Addr         string // Preview server listen address (default ":3000")
	DatabasePath string // SQLite path for the published collection (default "data/site.db")

	DraftsPassword string // Password gating draft previews; empty disables them
	SessionSecret  string // Session encryption secret; required when drafts are enabled
	CookieSecure   bool   // Set true when previewing over HTTPS

	CacheTTL time.Duration // Preview server collection cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// ConfigFromEnv builds a SiteConfig from environment variables, applying
// defaults for anything unset. Enabling drafts (DRAFTS_PASSWORD) makes
// SESSION_SECRET mandatory.
func ConfigFromEnv() SiteConfig {
	cfg := SiteConfig{
		Name:           EnvOr("SITE_NAME", "Blog"),
		URL:            strings.TrimSuffix(EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description:    os.Getenv("SITE_DESCRIPTION"),
		Author:         os.Getenv("SITE_AUTHOR"),
		ContentDir:     EnvOr("CONTENT_DIR", "content"),
		StaticDir:      EnvOr("STATIC_DIR", "static"),
		OutputDir:      EnvOr("OUTPUT_DIR", "public"),
		Addr:           EnvOr("LISTEN_ADDR", ":3000"),
		DatabasePath:   EnvOr("DATABASE_PATH", "data/site.db"),
		DraftsPassword: os.Getenv("DRAFTS_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CookieSecure:   strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
	if cfg.DraftsPassword != "" {
		cfg.SessionSecret = MustEnv("SESSION_SECRET")
	}
	cfg.setDefaults()
	return cfg
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return v
}
