package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Astrology  AstrologyConfig  `yaml:"astrology"`
	Geocoder   GeocoderConfig   `yaml:"geocoder"`
	LLM        LLMConfig        `yaml:"llm"`
	Prediction PredictionConfig `yaml:"prediction"`
	DataStore  DataStoreConfig  `yaml:"dataStore"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	StaticDir    string          `yaml:"staticDir"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AstrologyConfig holds the computation API endpoint and credentials.
type AstrologyConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	UserID  string        `yaml:"userId"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// GeocoderConfig controls city lookups.
type GeocoderConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	UserAgent      string        `yaml:"userAgent"`
	Timeout        time.Duration `yaml:"timeout"`
	Limit          int           `yaml:"limit"`
	MinQueryLength int           `yaml:"minQueryLength"`
	CacheTTL       time.Duration `yaml:"cacheTtl"`
	Redis          RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LLMConfig selects and configures the text generation provider.
type LLMConfig struct {
	Provider     string  `yaml:"provider"`
	APIKey       string  `yaml:"apiKey"`
	BaseURL      string  `yaml:"baseUrl"`
	Model        string  `yaml:"model"`
	Temperature  float32 `yaml:"temperature"`
	SystemPrompt string  `yaml:"systemPrompt"`
}

// PredictionConfig holds the forecast parameters.
type PredictionConfig struct {
	TargetYear int `yaml:"targetYear"`
}

// DataStoreConfig contains DSN and pooling settings.
type DataStoreConfig struct {
	DSN      string `yaml:"dsn"`
	Name     string `yaml:"name"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// TelemetryConfig toggles OTLP tracing.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads configuration from a .env file, a YAML file and environment variables.
func Load() (*Config, error) {
	// Variables already present in the environment win over .env entries.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("ASTROLOGY_BASE_URL"); v != "" {
		cfg.Astrology.BaseURL = v
	}
	if v := os.Getenv("ASTROLOGY_USER_ID"); v != "" {
		cfg.Astrology.UserID = v
	}
	if v := os.Getenv("ASTROLOGY_API_KEY"); v != "" {
		cfg.Astrology.APIKey = v
	}
	if v := os.Getenv("GEOCODER_BASE_URL"); v != "" {
		cfg.Geocoder.BaseURL = v
	}
	if v := os.Getenv("GEOCODER_USER_AGENT"); v != "" {
		cfg.Geocoder.UserAgent = v
	}
	if v := os.Getenv("GEOCODER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geocoder.CacheTTL = parsed
		}
	}
	if v := os.Getenv("GEOCODER_REDIS_ENABLED"); v != "" {
		cfg.Geocoder.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("GEOCODER_REDIS_ADDR"); v != "" {
		cfg.Geocoder.Redis.Addr = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("EMERGENT_LLM_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("PREDICTION_TARGET_YEAR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Prediction.TargetYear = parsed
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DataStore.DSN = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DataStore.Name = v
	}
	if v := os.Getenv("TELEMETRY_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("TELEMETRY_ENDPOINT"); v != "" {
		cfg.Telemetry.Endpoint = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8080",
			ReadTimeout: 10 * time.Second,
			// three sequential computation calls plus generation
			WriteTimeout: 3 * time.Minute,
			StaticDir:    "static",
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Astrology: AstrologyConfig{
			BaseURL: "https://json.astrologyapi.com/v1",
			Timeout: 30 * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			UserAgent:      "AstroApp/1.0",
			Timeout:        10 * time.Second,
			Limit:          5,
			MinQueryLength: 2,
		},
		LLM: LLMConfig{
			Provider:     ProviderOpenAI,
			Model:        "gpt-5.1",
			SystemPrompt: "Ты опытный ведический астролог. Отвечай на русском языке.",
		},
		Prediction: PredictionConfig{
			TargetYear: 2026,
		},
		DataStore: DataStoreConfig{
			MaxConns: 4,
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "astro-prediction",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Astrology.BaseURL) == "" {
		return errors.New("astrology.baseUrl cannot be empty")
	}
	if c.Astrology.Timeout <= 0 {
		return errors.New("astrology.timeout must be positive")
	}
	if strings.TrimSpace(c.Geocoder.BaseURL) == "" {
		return errors.New("geocoder.baseUrl cannot be empty")
	}
	if c.Geocoder.Timeout <= 0 {
		return errors.New("geocoder.timeout must be positive")
	}
	if c.Geocoder.Limit <= 0 {
		return errors.New("geocoder.limit must be positive")
	}
	if c.Geocoder.MinQueryLength < 0 {
		return errors.New("geocoder.minQueryLength cannot be negative")
	}
	if c.Geocoder.CacheTTL < 0 {
		return errors.New("geocoder.cacheTtl cannot be negative")
	}
	if c.Geocoder.Redis.Enabled && strings.TrimSpace(c.Geocoder.Redis.Addr) == "" {
		return errors.New("geocoder.redis.addr cannot be empty when redis cache is enabled")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Prediction.TargetYear < 1900 || c.Prediction.TargetYear > 2100 {
		return errors.New("prediction.targetYear must be between 1900 and 2100")
	}
	if c.Telemetry.Enabled && strings.TrimSpace(c.Telemetry.Endpoint) == "" {
		return errors.New("telemetry.endpoint cannot be empty when telemetry is enabled")
	}
	return nil
}
