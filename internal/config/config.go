package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings for the scrape jobs and the lookup API
type Config struct {
	// Scraping
	DataDir        string
	SiteBaseURL    string
	BrowserVisible bool
	ChromeBin      string
	WaitTimeout    time.Duration
	NavRatePerSec  float64

	// API
	Port           string
	CatalogPath    string
	CatalogDB      string
	AdminKeyHash   string
	RateLimitRPS   float64
	RateLimitBurst int
	ReloadCooldown time.Duration
}

// Load reads .env if present and returns the configuration from the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		DataDir:        dataDir,
		SiteBaseURL:    getEnv("SITE_BASE_URL", "https://www.zigwheels.com"),
		BrowserVisible: getEnvBool("BROWSER_VISIBLE", false),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		WaitTimeout:    getEnvDuration("WAIT_TIMEOUT", 5*time.Second),
		NavRatePerSec:  getEnvFloat("NAV_RATE_PER_SEC", 1),

		Port:           getEnv("PORT", "8000"),
		CatalogPath:    getEnv("CATALOG_PATH", filepath.Join(dataDir, "data.json")),
		CatalogDB:      getEnv("CATALOG_DB", ""),
		AdminKeyHash:   getEnv("ADMIN_KEY_HASH", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		ReloadCooldown: getEnvDuration("RELOAD_COOLDOWN", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Printf("⚠️  Ignoring invalid %s=%q", key, val)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		log.Printf("⚠️  Ignoring invalid %s=%q", key, val)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		log.Printf("⚠️  Ignoring invalid %s=%q", key, val)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("⚠️  Ignoring invalid %s=%q", key, val)
	}
	return fallback
}
