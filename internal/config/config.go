package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// LandlordAPIURL is the base URL of the landlord provisioning API.
	LandlordAPIURL string
	// LandlordAPIKey authenticates requests to the landlord API.
	LandlordAPIKey string
	// TenantBaseDomain is the apex domain tenant storefronts live under.
	// A provisioned tenant is reachable at {subdomain}.{TenantBaseDomain}.
	TenantBaseDomain string
	// TenantURLScheme is the scheme used when building tenant URLs.
	TenantURLScheme string
	PollInterval    time.Duration
	HTTPListenAddr  string
	LogLevel        string
}

func Load() (*Config, error) {
	cfg := &Config{
		LandlordAPIURL:   getEnv("LANDLORD_API_URL", "http://localhost:8080"),
		LandlordAPIKey:   getEnv("LANDLORD_API_KEY", ""),
		TenantBaseDomain: getEnv("TENANT_BASE_DOMAIN", ""),
		TenantURLScheme:  getEnv("TENANT_URL_SCHEME", "https"),
		HTTPListenAddr:   getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	interval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("parse POLL_INTERVAL: %w", err)
	}
	cfg.PollInterval = interval

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.TenantBaseDomain == "" {
		missing = append(missing, "TENANT_BASE_DOMAIN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.TenantURLScheme != "http" && c.TenantURLScheme != "https" {
		return fmt.Errorf("TENANT_URL_SCHEME must be http or https")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
