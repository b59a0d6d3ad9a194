package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTelemetryIsNoop(t *testing.T) {
	tele, err := New(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, tele.IsEnabled())

	ctx, span := tele.Tracer().Start(context.Background(), "noop")
	RecordError(ctx, errors.New("boom"))
	span.End()
	require.False(t, span.SpanContext().IsValid())

	require.NoError(t, tele.Shutdown(context.Background()))
}

func TestNilTelemetry(t *testing.T) {
	var tele *Telemetry
	require.False(t, tele.IsEnabled())
	require.NotNil(t, tele.Tracer())
	require.NoError(t, tele.Shutdown(context.Background()))
}
