//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/astro-prediction/internal/bootstrap"
	"github.com/yanqian/astro-prediction/internal/domain/astro"
	"github.com/yanqian/astro-prediction/internal/domain/geo"
	"github.com/yanqian/astro-prediction/internal/domain/narrative"
	"github.com/yanqian/astro-prediction/internal/infra/astrologyapi"
	"github.com/yanqian/astro-prediction/internal/infra/config"
	"github.com/yanqian/astro-prediction/internal/infra/datastore"
	"github.com/yanqian/astro-prediction/internal/infra/nominatim"
	httpiface "github.com/yanqian/astro-prediction/internal/interface/http"
	"github.com/yanqian/astro-prediction/pkg/logger"
)

func initializeApp(ctx context.Context) (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideTelemetry,
		provideDataStore,
		provideAstroConfig,
		provideNarrativeConfig,
		provideGeoConfig,
		provideAstrologyClient,
		provideGeocoder,
		provideGenerator,
		provideCityCache,
		narrative.NewComposer,
		astro.NewService,
		geo.NewService,
		wire.Bind(new(astro.Calculator), new(*astrologyapi.Client)),
		wire.Bind(new(astro.Composer), new(*narrative.Composer)),
		wire.Bind(new(geo.Geocoder), new(*nominatim.Client)),
		wire.Bind(new(httpiface.HealthChecker), new(*datastore.Store)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
