package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			PublicURL: "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "cardhub.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Analytics: AnalyticsConfig{
			GeoEnabled:  true,
			GeoURL:      "https://ipapi.co",
			HTTPTimeout: 3 * time.Second,
			CacheSize:   4096,
		},
		QR: QRConfig{
			BaseURL:     "https://api.qrserver.com/v1/create-qr-code/",
			CacheDir:    "cache",
			CacheMaxAge: 7 * 24 * time.Hour,
			HTTPTimeout: 5 * time.Second,
		},
		ImageHost: ImageHostConfig{
			URL:     "https://api.imgbb.com/1/upload",
			Timeout: 30 * time.Second,
		},
		Telegram: TelegramConfig{
			Enabled: true,
		},
		RateLimit: RateLimitConfig{
			ContactPerMinute: 5,
			Burst:            3,
		},
		Auth: AuthConfig{
			ProfileRetryDelay: time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence. A .env file is read first.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for _, path := range []string{"backoffice.emails", "server.trusted_proxies"} {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sections lists the top-level keys an env var may address, e.g.
// SERVER_PUBLIC_URL -> server.public_url.
var sections = []string{
	"server", "database", "logging", "analytics", "qr",
	"imagehost", "telegram", "smtp", "backoffice", "ratelimit", "auth",
}

// envTransformFunc maps SECTION_KEY env vars onto koanf paths. Unknown
// variables map to "" and are dropped by the provider.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	for _, s := range sections {
		if strings.HasPrefix(key, s+"_") {
			return s + "." + strings.TrimPrefix(key, s+"_")
		}
	}
	return ""
}

// splitList turns a comma separated env value into a []string.
func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}

	var items []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
