package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Remote FirstResponse API.
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	DemoFallback    bool          `mapstructure:"DEMO_FALLBACK"`
	MaxUploadBytes  int64         `mapstructure:"MAX_UPLOAD_BYTES"`

	// Place-name lookup (Nominatim compatible).
	GeocoderURL       string        `mapstructure:"GEOCODER_URL"`
	GeocoderUserAgent string        `mapstructure:"GEOCODER_USER_AGENT"`
	GeocodeTimeout    time.Duration `mapstructure:"GEOCODE_TIMEOUT"`

	// Session storage.
	SessionBackend string `mapstructure:"SESSION_BACKEND"`
	SessionFile    string `mapstructure:"SESSION_FILE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Browser identity cookie.
	ClientCookieSecret string        `mapstructure:"CLIENT_COOKIE_SECRET"`
	ClientCookieTTL    time.Duration `mapstructure:"CLIENT_COOKIE_TTL"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("DEMO_FALLBACK", true)
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODER_USER_AGENT", "firstresponse-dashboard/1.0")
	v.SetDefault("GEOCODE_TIMEOUT", "10s")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_FILE", defaultSessionFile())
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 3)
	v.SetDefault("CLIENT_COOKIE_SECRET", "")
	v.SetDefault("CLIENT_COOKIE_TTL", "720h")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".firstresponse", "session.json")
	}
	return filepath.Join(home, ".firstresponse", "session.json")
}

// Load reads config.yaml (if any) and the environment into a Config.
func Load() (Config, error) {
	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.GeocoderURL = strings.TrimRight(cfg.GeocoderURL, "/")
	return cfg, nil
}

// LoadConfig populates AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
