package astro

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
)

func TestParseBirthInput(t *testing.T) {
	in, err := ParseBirthInput(birthRequest("1990-07-15", "08:30", 55.75, 37.62, 3))
	require.NoError(t, err)
	require.Equal(t, BirthInput{
		Day: 15, Month: 7, Year: 1990, Hour: 8, Minute: 30,
		Latitude: 55.75, Longitude: 37.62, Timezone: 3,
	}, in)
}

// Calendar validity is not checked; only field ranges are.
func TestParseBirthInputAcceptsFebruary31(t *testing.T) {
	in, err := ParseBirthInput(birthRequest("2000-02-31", "10:00", 0, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 31, in.Day)
	require.Equal(t, 2, in.Month)
}

func TestParseBirthInputRejects(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		message string
	}{
		{"empty date", "", "08:30", msgBadLayout},
		{"bad date layout", "1990/07/15", "08:30", msgBadLayout},
		{"bad time layout", "1990-07-15", "0830", msgBadLayout},
		{"seconds in time", "1990-07-15", "08:30:00", msgBadLayout},
		{"non numeric", "1990-07-xx", "08:30", msgBadNumber},
		{"day", "1990-07-32", "08:30", "День должен быть от 1 до 31"},
		{"day zero", "1990-07-00", "08:30", "День должен быть от 1 до 31"},
		{"month", "1990-13-01", "08:30", "Месяц должен быть от 1 до 12"},
		{"year", "1899-01-01", "08:30", "Год должен быть от 1900 до 2100"},
		{"hour and minute", "1990-07-15", "25:61", "Час должен быть от 0 до 23"},
		{"minute", "1990-07-15", "23:60", "Минуты должны быть от 0 до 59"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBirthInput(birthRequest(tc.date, tc.time, 0, 0, 0))
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
			require.Equal(t, tc.message, apperrors.MessageOf(err))
		})
	}
}

func TestParseBirthInputRequiresCoordinates(t *testing.T) {
	req := birthRequest("1990-07-15", "08:30", 55.75, 37.62, 3)
	req.Timezone = nil

	_, err := ParseBirthInput(req)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, msgNoCoords, apperrors.MessageOf(err))
}

func TestBindingMessage(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(Request{BirthTime: "08:30"})
	msg, ok := BindingMessage(err)
	require.True(t, ok)
	require.Equal(t, msgBadLayout, msg)

	req := birthRequest("1990-07-15", "08:30", 0, 0, 0)
	req.Longitude = nil
	msg, ok = BindingMessage(v.Struct(req))
	require.True(t, ok)
	require.Equal(t, msgNoCoords, msg)

	require.NoError(t, v.Struct(birthRequest("1990-07-15", "08:30", 0, 0, 0)))

	_, ok = BindingMessage(errors.New("unexpected EOF"))
	require.False(t, ok)
}

func birthRequest(date, tm string, lat, lon, tz float64) Request {
	return Request{BirthDate: date, BirthTime: tm, Latitude: &lat, Longitude: &lon, Timezone: &tz}
}
