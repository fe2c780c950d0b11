package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DATA_DIR", "CATALOG_PATH", "PORT", "WAIT_TIMEOUT", "BROWSER_VISIBLE", "NAV_RATE_PER_SEC"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DataDir != "data" {
		t.Fatalf("expected data dir 'data', got %q", cfg.DataDir)
	}
	if cfg.CatalogPath != filepath.Join("data", "data.json") {
		t.Fatalf("unexpected catalog path %q", cfg.CatalogPath)
	}
	if cfg.Port != "8000" {
		t.Fatalf("expected port 8000, got %q", cfg.Port)
	}
	if cfg.WaitTimeout != 5*time.Second {
		t.Fatalf("expected 5s wait timeout, got %v", cfg.WaitTimeout)
	}
	if cfg.BrowserVisible {
		t.Fatal("expected headless by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATA_DIR", "/srv/catalog")
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("WAIT_TIMEOUT", "8s")
	t.Setenv("BROWSER_VISIBLE", "true")
	t.Setenv("NAV_RATE_PER_SEC", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	if cfg.CatalogPath != filepath.Join("/srv/catalog", "data.json") {
		t.Fatalf("catalog path should follow DATA_DIR, got %q", cfg.CatalogPath)
	}
	if cfg.WaitTimeout != 8*time.Second {
		t.Fatalf("expected 8s, got %v", cfg.WaitTimeout)
	}
	if !cfg.BrowserVisible {
		t.Fatal("expected visible browser")
	}
	if cfg.NavRatePerSec != 0.5 {
		t.Fatalf("expected 0.5 navigations/sec, got %v", cfg.NavRatePerSec)
	}
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("invalid value should fall back to default, got %d", cfg.RateLimitBurst)
	}
}
