package astro

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslationTables(t *testing.T) {
	require.Equal(t, "Солнце", TranslatePlanet("Sun"))
	require.Equal(t, "Асцендент", TranslatePlanet("Ascendant"))
	require.Equal(t, "Стрелец", TranslateSign("Sagittarius"))
	require.Equal(t, "Мула", TranslateNakshatra("Moola"))
	require.Equal(t, "Мула", TranslateNakshatra("Mula"))
	require.Equal(t, "Уттара Ашадха", TranslateNakshatra("Uttra Shadha"))

	// unknown or differently cased terms pass through
	require.Equal(t, "Pluto", TranslatePlanet("Pluto"))
	require.Equal(t, "sun", TranslatePlanet("sun"))
	require.Equal(t, "", TranslateSign(""))
}

func TestNormalizePlanets(t *testing.T) {
	raw := json.RawMessage(`[
		{"name":"Sun","sign":"Leo","nakshatra":"Magha","house":5,"fullDegree":121.3},
		{"name":"Pluto","sign":"Ophiuchus","nakshatra":"P.Phalguni","house":"7"},
		{"name":"Moon","sign":"Cancer","nakshatra":"Pushya"}
	]`)

	planets := NormalizePlanets(raw, discardLogger())
	require.Len(t, planets, 3)

	require.Equal(t, "Солнце", planets[0].Name)
	require.Equal(t, "Лев", planets[0].Sign)
	require.Equal(t, "Магха", planets[0].Nakshatra)
	require.Equal(t, "5", planets[0].House.String())

	require.Equal(t, "Pluto", planets[1].Name)
	require.Equal(t, "Ophiuchus", planets[1].Sign)
	require.Equal(t, "Пурва Пхалгуни", planets[1].Nakshatra)
	require.Equal(t, "7", planets[1].House.String())

	encoded, err := json.Marshal(planets)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"name":"Солнце","sign":"Лев","nakshatra":"Магха","house":5},
		{"name":"Pluto","sign":"Ophiuchus","nakshatra":"Пурва Пхалгуни","house":"7"},
		{"name":"Луна","sign":"Рак","nakshatra":"Пушья","house":""}
	]`, string(encoded))
}

func TestNormalizePlanetsNotAList(t *testing.T) {
	require.Empty(t, NormalizePlanets(json.RawMessage(`{"status":false}`), discardLogger()))
	require.NotNil(t, NormalizePlanets(json.RawMessage(`{"status":false}`), discardLogger()))
}

func TestNormalizeDashaPeriodsYearWindow(t *testing.T) {
	raw := json.RawMessage(`[
		{"planet":"Rahu","start":"12-03-2010 00:00","end":"12-03-2030 00:00"},
		{"planet":"Venus","start":"01-01-1990","end":"31-12-1995"},
		{"planet":"Jupiter","start":"12-03-2026 10:15","end":"12-03-2042 10:15"},
		{"planet":"Saturn","start":"01-01-2000","end":"31-12-2026"}
	]`)

	periods := NormalizeDashaPeriods(raw, 2026, discardLogger())
	require.Equal(t, []DashaPeriod{
		{Planet: "Раху", Start: "12-03-2010 00:00", End: "12-03-2030 00:00"},
		{Planet: "Юпитер", Start: "12-03-2026 10:15", End: "12-03-2042 10:15"},
		{Planet: "Сатурн", Start: "01-01-2000", End: "31-12-2026"},
	}, periods)
}

func TestNormalizeDashaPeriodsTargetYearIsParameter(t *testing.T) {
	raw := json.RawMessage(`[{"planet":"Venus","start":"01-01-1990","end":"31-12-1995"}]`)
	require.Empty(t, NormalizeDashaPeriods(raw, 2026, discardLogger()))
	require.Len(t, NormalizeDashaPeriods(raw, 1993, discardLogger()), 1)
}

func TestNormalizeDashaPeriodsSkipsMalformedRecords(t *testing.T) {
	raw := json.RawMessage(`[
		{"planet":"Mars","start":"2010-03","end":"12-03-2030"},
		{"planet":"Sun","start":"12-03-2010","end":"12-03-20x0"},
		{"planet":"Moon","start":"","end":"12-03-2030"},
		{"planet":"Ketu","start":12,"end":"12-03-2030"},
		"not an object",
		{"planet":"Mercury","start":"12-03-2020","end":"12-03-2037"}
	]`)

	periods := NormalizeDashaPeriods(raw, 2026, discardLogger())
	require.Equal(t, []DashaPeriod{
		{Planet: "Меркурий", Start: "12-03-2020", End: "12-03-2037"},
	}, periods)
}

func TestNormalizeDashaPeriodsShapesAgree(t *testing.T) {
	records := `[
		{"planet":"Rahu","start":"12-03-2010 00:00","end":"12-03-2030 00:00"},
		{"planet":"Venus","start":"01-01-1990","end":"31-12-1995"}
	]`
	bare := NormalizeDashaPeriods(json.RawMessage(records), 2026, discardLogger())
	named := NormalizeDashaPeriods(json.RawMessage(`{"major_vdasha":`+records+`}`), 2026, discardLogger())

	require.Len(t, bare, 1)
	require.Equal(t, bare, named)
}

func TestResolvePeriodCollection(t *testing.T) {
	tests := []struct {
		raw   string
		shape CollectionShape
		count int
	}{
		{`[{"planet":"Sun"}]`, ShapeList, 1},
		{`  [ ]`, ShapeList, 0},
		{`{"major_vdasha":[{},{}]}`, ShapeNamedField, 2},
		{`{"other":[{}]}`, ShapeUnknown, 0},
		{`{"major_vdasha":"nope"}`, ShapeUnknown, 0},
		{`"text"`, ShapeUnknown, 0},
		{`null`, ShapeUnknown, 0},
		{``, ShapeUnknown, 0},
	}
	for _, tc := range tests {
		got := ResolvePeriodCollection(json.RawMessage(tc.raw))
		require.Equal(t, tc.shape, got.Shape, tc.raw)
		require.Len(t, got.Records, tc.count, tc.raw)
	}
}

func TestYearOf(t *testing.T) {
	year, err := yearOf("12-03-2010 00:00")
	require.NoError(t, err)
	require.Equal(t, 2010, year)

	year, err = yearOf("31-12-1995")
	require.NoError(t, err)
	require.Equal(t, 1995, year)

	_, err = yearOf("1995")
	require.Error(t, err)
	_, err = yearOf("31-12-19x5")
	require.Error(t, err)
}

func TestHouseString(t *testing.T) {
	require.Equal(t, "", House(nil).String())
	require.Equal(t, "", House(`null`).String())
	require.Equal(t, "12", House(`12`).String())
	require.Equal(t, "XII", House(`"XII"`).String())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
