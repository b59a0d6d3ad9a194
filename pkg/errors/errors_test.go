package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := fmt.Errorf("status=401")
	err := Wrap(CodeUpstream, "Astrology API error", cause)

	require.True(t, IsCode(err, CodeUpstream))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "Astrology API error: status=401", err.Error())
}

func TestIsCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("stage: %w", Wrap(CodeGeneration, "Prediction error", nil))
	require.True(t, IsCode(err, CodeGeneration))
}

func TestMessageOf(t *testing.T) {
	require.Equal(t, "", MessageOf(nil))
	require.Equal(t, "День должен быть от 1 до 31", MessageOf(Wrap(CodeInvalidInput, "День должен быть от 1 до 31", fmt.Errorf("validator detail"))))
	require.Equal(t, "plain", MessageOf(fmt.Errorf("plain")))
}
