package astro

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
	"github.com/yanqian/astro-prediction/pkg/telemetry"
)

// Service exposes the natal forecast capability.
type Service interface {
	Predict(ctx context.Context, req Request) (Response, error)
}

// Calculator posts birth data to the astrology computation API.
type Calculator interface {
	Call(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Composer turns normalized chart data into narrative text.
type Composer interface {
	Compose(ctx context.Context, planets []PlanetEntry, periods []DashaPeriod) (string, error)
}

type service struct {
	cfg        Config
	calculator Calculator
	composer   Composer
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewService wires up the prediction domain.
func NewService(cfg Config, calculator Calculator, composer Composer, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		calculator: calculator,
		composer:   composer,
		logger:     logger.With("component", "astro.service"),
		tracer:     otel.Tracer("astro"),
	}
}

// Predict validates the birth data, then calls planets, birth_details and
// major_vdasha one after another, normalizes, and asks for a narrative. The
// first failure ends the request.
func (s *service) Predict(ctx context.Context, req Request) (Response, error) {
	input, err := ParseBirthInput(req)
	if err != nil {
		return Response{}, err
	}

	planetsRaw, err := s.fetch(ctx, EndpointPlanets, input)
	if err != nil {
		return Response{}, err
	}
	// Not used by the narrative yet; fetched so rashi data is at hand.
	detailsRaw, err := s.fetch(ctx, EndpointBirthDetails, input)
	if err != nil {
		return Response{}, err
	}
	s.logger.Debug("birth details fetched", "bytes", len(detailsRaw))
	dashaRaw, err := s.fetch(ctx, EndpointMajorDasha, input)
	if err != nil {
		return Response{}, err
	}

	planets := NormalizePlanets(planetsRaw, s.logger)
	periods := NormalizeDashaPeriods(dashaRaw, s.cfg.TargetYear, s.logger)
	s.logger.Info("chart normalized", "planets", len(planets), "periods", len(periods), "target_year", s.cfg.TargetYear)

	ctx, span := s.tracer.Start(ctx, "astro.compose")
	defer span.End()
	text, err := s.composer.Compose(ctx, planets, periods)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return Response{}, apperrors.Wrap(apperrors.CodeGeneration, "Prediction error", err)
	}

	return Response{
		Planets:      planets,
		DashaPeriods: periods,
		Narrative:    text,
	}, nil
}

func (s *service) fetch(ctx context.Context, endpoint string, input BirthInput) (json.RawMessage, error) {
	ctx, span := s.tracer.Start(ctx, "astro."+endpoint, trace.WithAttributes(attribute.String("astro.endpoint", endpoint)))
	defer span.End()

	raw, err := s.calculator.Call(ctx, endpoint, input)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "Astrology API error", err)
	}
	return raw, nil
}
