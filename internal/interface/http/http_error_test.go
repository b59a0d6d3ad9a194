package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
)

func TestAsHTTPErrorMapsDomainCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "invalid input keeps only the localized message",
			err:     apperrors.Wrap(apperrors.CodeInvalidInput, "Месяц должен быть от 1 до 12", errors.New("Key: 'BirthInput.Month'")),
			status:  http.StatusUnprocessableEntity,
			code:    "invalid_input",
			message: "Месяц должен быть от 1 до 12",
		},
		{
			name:    "upstream keeps the cause chain",
			err:     fmt.Errorf("predict: %w", apperrors.Wrap(apperrors.CodeUpstream, "Astrology API error", errors.New("status=401"))),
			status:  http.StatusInternalServerError,
			code:    "upstream_error",
			message: "predict: Astrology API error: status=401",
		},
		{
			name:    "generation",
			err:     apperrors.Wrap(apperrors.CodeGeneration, "Prediction error", errors.New("quota")),
			status:  http.StatusInternalServerError,
			code:    "generation_error",
			message: "Prediction error: quota",
		},
		{
			name:    "unknown errors stay opaque",
			err:     errors.New("dial tcp: refused"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(tt.err)
			require.Equal(t, tt.status, httpErr.Status)
			require.Equal(t, tt.code, httpErr.Code)
			require.Equal(t, tt.message, httpErr.Message)
			require.ErrorIs(t, httpErr, tt.err)
		})
	}
}

func TestAsHTTPErrorPassesThroughHTTPError(t *testing.T) {
	original := NewHTTPError(http.StatusNotFound, codeNotFound, "Not Found", nil)
	require.Same(t, original, asHTTPError(fmt.Errorf("wrapped: %w", original)))
	require.Nil(t, asHTTPError(nil))
}
