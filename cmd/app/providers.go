package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/astro-prediction/internal/domain/astro"
	"github.com/yanqian/astro-prediction/internal/domain/geo"
	"github.com/yanqian/astro-prediction/internal/domain/narrative"
	"github.com/yanqian/astro-prediction/internal/infra/astrologyapi"
	"github.com/yanqian/astro-prediction/internal/infra/citycache"
	"github.com/yanqian/astro-prediction/internal/infra/config"
	"github.com/yanqian/astro-prediction/internal/infra/datastore"
	"github.com/yanqian/astro-prediction/internal/infra/llm/chatgpt"
	"github.com/yanqian/astro-prediction/internal/infra/llm/gemini"
	"github.com/yanqian/astro-prediction/internal/infra/narrative/llm"
	"github.com/yanqian/astro-prediction/internal/infra/nominatim"
	"github.com/yanqian/astro-prediction/pkg/telemetry"
)

var version = "dev"

func provideAstroConfig(cfg *config.Config) astro.Config {
	return astro.Config{TargetYear: cfg.Prediction.TargetYear}
}

func provideNarrativeConfig(cfg *config.Config) narrative.Config {
	return narrative.Config{
		TargetYear:   cfg.Prediction.TargetYear,
		SystemPrompt: cfg.LLM.SystemPrompt,
		Model:        cfg.LLM.Model,
	}
}

func provideGeoConfig(cfg *config.Config) geo.Config {
	return geo.Config{
		MinQueryLength: cfg.Geocoder.MinQueryLength,
		CacheTTL:       cfg.Geocoder.CacheTTL,
	}
}

func provideAstrologyClient(cfg *config.Config) *astrologyapi.Client {
	return astrologyapi.NewClient(astrologyapi.Config{
		BaseURL: cfg.Astrology.BaseURL,
		UserID:  cfg.Astrology.UserID,
		APIKey:  cfg.Astrology.APIKey,
		Timeout: cfg.Astrology.Timeout,
	})
}

func provideGeocoder(cfg *config.Config) *nominatim.Client {
	return nominatim.NewClient(nominatim.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Limit:     cfg.Geocoder.Limit,
	})
}

func provideGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (narrative.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, predictions will fail until configured")
		return llm.UnconfiguredGenerator{}, nil
	}
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("narrative provider enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
		return llm.NewGeminiGenerator(client, logger), nil
	default:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("narrative provider enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
		return llm.NewChatGPTGenerator(client, cfg.LLM.Model, cfg.LLM.Temperature), nil
	}
}

func provideCityCache(cfg *config.Config, logger *slog.Logger) geo.Cache {
	if cfg.Geocoder.CacheTTL <= 0 {
		return nil
	}
	if cfg.Geocoder.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg.Geocoder.Redis.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return citycache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return citycache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("city search valkey cache enabled", "addr", cfg.Geocoder.Redis.Addr)
			return citycache.NewValkeyStore(client, "citysearch")
		}
	}
	return citycache.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideDataStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*datastore.Store, error) {
	return datastore.Open(ctx, datastore.Config{
		DSN:      cfg.DataStore.DSN,
		Name:     cfg.DataStore.Name,
		MaxConns: cfg.DataStore.MaxConns,
		MinConns: cfg.DataStore.MinConns,
	}, logger)
}

// provideTelemetry never fails startup; a broken exporter only disables tracing.
func provideTelemetry(ctx context.Context, cfg *config.Config, logger *slog.Logger) *telemetry.Telemetry {
	tele, err := telemetry.New(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
	})
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
		return nil
	}
	return tele
}
