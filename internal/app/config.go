package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
)

// Config holds the complete application configuration, loadable from
// environment variables (PRICEWISE_ prefix), flags, or YAML config files.
type Config struct {
	Addr             string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL      string `usage:"PostgreSQL connection URL (PRICEWISE_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	CouponWindowMode string `default:"instant" usage:"Coupon validity comparison: instant or date" flag:"coupon-window-mode"`
	CouponFilter     CouponFilterConfig
	RateLimit        RateLimitConfig
	CORS             CORSConfig
	Graceful         GracefulConfig
}

// CouponFilterConfig sizes the in-memory coupon code filter that short
// circuits lookups for codes that were never created.
type CouponFilterConfig struct {
	ExpectedCodes     uint    `default:"100000" usage:"Expected number of coupon codes" flag:"coupon-filter-size"`
	FalsePositiveRate float64 `default:"0.01" usage:"Acceptable false positive rate" flag:"coupon-filter-fp-rate"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// WindowMode maps the configured coupon window mode string to its domain
// value. Defaults to instant comparison for unknown values.
func (c *Config) WindowMode() coupon.WindowMode {
	if c.CouponWindowMode == "date" {
		return coupon.ModeCalendarDate
	}
	return coupon.ModeInstant
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PRICEWISE",
		Files:     []string{"config.yaml", "/etc/pricewise/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set PRICEWISE_DATABASE_URL or DATABASE_URL")
	}
	if m := cfg.CouponWindowMode; m != "instant" && m != "date" {
		return nil, errors.Errorf("invalid coupon window mode %q: want instant or date", m)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and PORT
// to the PRICEWISE_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
