package astro

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// CollectionShape tells which of the known dasha payload layouts arrived.
type CollectionShape int

const (
	// ShapeUnknown is anything else; it yields no periods.
	ShapeUnknown CollectionShape = iota
	// ShapeList is a bare JSON array of period records.
	ShapeList
	// ShapeNamedField is an object carrying the array under major_vdasha.
	ShapeNamedField
)

const namedCollectionField = "major_vdasha"

func (s CollectionShape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeNamedField:
		return "named_field"
	default:
		return "unknown"
	}
}

// PeriodCollection is the dasha payload resolved once into its shape and raw records.
type PeriodCollection struct {
	Shape   CollectionShape
	Records []json.RawMessage
}

// ResolvePeriodCollection inspects the upstream payload. Unrecognised or
// malformed payloads resolve to ShapeUnknown with no records.
func ResolvePeriodCollection(raw json.RawMessage) PeriodCollection {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return PeriodCollection{}
	}
	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return PeriodCollection{}
		}
		return PeriodCollection{Shape: ShapeList, Records: records}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return PeriodCollection{}
		}
		field, ok := wrapper[namedCollectionField]
		if !ok {
			return PeriodCollection{}
		}
		var records []json.RawMessage
		if err := json.Unmarshal(field, &records); err != nil {
			return PeriodCollection{}
		}
		return PeriodCollection{Shape: ShapeNamedField, Records: records}
	default:
		return PeriodCollection{}
	}
}

type outcomeKind int

const (
	outcomeKept outcomeKind = iota
	outcomeOutsideYear
	outcomeSkipped
)

// periodOutcome is the result of evaluating one record: kept with its period,
// outside the target year, or skipped with a reason.
type periodOutcome struct {
	kind   outcomeKind
	period DashaPeriod
	reason string
}

type rawPeriod struct {
	Planet string `json:"planet"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func evaluatePeriod(raw json.RawMessage, targetYear int) periodOutcome {
	var rec rawPeriod
	if err := json.Unmarshal(raw, &rec); err != nil {
		return periodOutcome{kind: outcomeSkipped, reason: "undecodable record: " + err.Error()}
	}
	if rec.Start == "" || rec.End == "" {
		return periodOutcome{kind: outcomeSkipped, reason: "missing start or end"}
	}
	startYear, err := yearOf(rec.Start)
	if err != nil {
		return periodOutcome{kind: outcomeSkipped, reason: "start " + err.Error()}
	}
	endYear, err := yearOf(rec.End)
	if err != nil {
		return periodOutcome{kind: outcomeSkipped, reason: "end " + err.Error()}
	}
	if startYear > targetYear || targetYear > endYear {
		return periodOutcome{kind: outcomeOutsideYear}
	}
	return periodOutcome{
		kind: outcomeKept,
		period: DashaPeriod{
			Planet: TranslatePlanet(rec.Planet),
			Start:  rec.Start,
			End:    rec.End,
		},
	}
}

// yearOf extracts YYYY from "DD-MM-YYYY[ HH:MM]".
func yearOf(ts string) (int, error) {
	date := ts
	if fields := strings.Fields(ts); len(fields) > 0 {
		date = fields[0]
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("date %q is not DD-MM-YYYY", date)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("date %q has non-numeric year", date)
	}
	return year, nil
}

// NormalizeDashaPeriods keeps the periods whose [start year, end year] window
// contains targetYear, in upstream order. Malformed records are logged and
// dropped without affecting their siblings.
func NormalizeDashaPeriods(raw json.RawMessage, targetYear int, logger *slog.Logger) []DashaPeriod {
	collection := ResolvePeriodCollection(raw)
	if collection.Shape == ShapeUnknown {
		logger.Warn("dasha payload has unknown shape, no periods extracted")
	}

	periods := make([]DashaPeriod, 0, len(collection.Records))
	for i, rec := range collection.Records {
		outcome := evaluatePeriod(rec, targetYear)
		switch outcome.kind {
		case outcomeKept:
			periods = append(periods, outcome.period)
		case outcomeSkipped:
			logger.Warn("dasha period skipped", "index", i, "shape", collection.Shape.String(), "reason", outcome.reason)
		}
	}
	return periods
}

type rawPlanet struct {
	Name      string `json:"name"`
	Sign      string `json:"sign"`
	Nakshatra string `json:"nakshatra"`
	House     House  `json:"house"`
}

// NormalizePlanets localizes each planet record. Anything but a JSON array
// yields an empty list.
func NormalizePlanets(raw json.RawMessage, logger *slog.Logger) []PlanetEntry {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("planets payload is not a list", "error", err)
		return []PlanetEntry{}
	}

	planets := make([]PlanetEntry, 0, len(records))
	for i, rec := range records {
		var p rawPlanet
		if err := json.Unmarshal(rec, &p); err != nil {
			logger.Warn("planet record skipped", "index", i, "error", err)
			continue
		}
		planets = append(planets, PlanetEntry{
			Name:      TranslatePlanet(p.Name),
			Sign:      TranslateSign(p.Sign),
			Nakshatra: TranslateNakshatra(p.Nakshatra),
			House:     p.House,
		})
	}
	return planets
}
