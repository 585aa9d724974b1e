package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Logging    LoggingConfig    `koanf:"logging"`
	Analytics  AnalyticsConfig  `koanf:"analytics"`
	QR         QRConfig         `koanf:"qr"`
	ImageHost  ImageHostConfig  `koanf:"imagehost"`
	Telegram   TelegramConfig   `koanf:"telegram"`
	SMTP       SMTPConfig       `koanf:"smtp"`
	Backoffice BackofficeConfig `koanf:"backoffice"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	Auth       AuthConfig       `koanf:"auth"`
}

type ServerConfig struct {
	Addr          string `koanf:"addr"`
	PublicURL     string `koanf:"public_url"` // origin used to build /c/{slug} links
	SessionSecret string `koanf:"session_secret"`
	SecureCookies bool   `koanf:"secure_cookies"`

	// TrustedProxies lists proxy addresses or CIDRs whose forwarding headers
	// are believed. Empty trusts none.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // sqlite | postgres
	DSN    string `koanf:"dsn"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type AnalyticsConfig struct {
	GeoEnabled  bool          `koanf:"geo_enabled"`
	GeoURL      string        `koanf:"geo_url"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	CacheSize   int           `koanf:"cache_size"`
}

type QRConfig struct {
	BaseURL     string        `koanf:"base_url"`
	CacheDir    string        `koanf:"cache_dir"`
	CacheMaxAge time.Duration `koanf:"cache_max_age"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
}

type ImageHostConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

type TelegramConfig struct {
	Enabled bool `koanf:"enabled"`
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

// Configured reports whether email notifications can be sent.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Port != "" && s.From != ""
}

type BackofficeConfig struct {
	Emails []string `koanf:"emails"`
}

type RateLimitConfig struct {
	ContactPerMinute int `koanf:"contact_per_minute"`
	Burst            int `koanf:"burst"`
}

type AuthConfig struct {
	ProfileRetryDelay time.Duration `koanf:"profile_retry_delay"`
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.SessionSecret == "" {
		errs = append(errs, errors.New("server.session_secret is required"))
	}
	if !strings.HasPrefix(c.Server.PublicURL, "http://") && !strings.HasPrefix(c.Server.PublicURL, "https://") {
		errs = append(errs, fmt.Errorf("server.public_url must be an http(s) origin, got %q", c.Server.PublicURL))
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}

	if c.RateLimit.ContactPerMinute < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("ratelimit values must not be negative"))
	}

	return errors.Join(errs...)
}

// CardURL is the public address of a card.
func (c *Config) CardURL(slug string) string {
	return strings.TrimSuffix(c.Server.PublicURL, "/") + "/c/" + slug
}

// IsBackofficeEmail reports whether email belongs to a platform operator.
func (c *Config) IsBackofficeEmail(email string) bool {
	for _, e := range c.Backoffice.Emails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}
