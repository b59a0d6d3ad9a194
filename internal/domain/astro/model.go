package astro

import (
	"bytes"
	"encoding/json"
)

// Upstream computation endpoints, called in this order.
const (
	EndpointPlanets      = "planets"
	EndpointBirthDetails = "birth_details"
	EndpointMajorDasha   = "major_vdasha"
)

// Request is the get-prediction payload. Coordinates are pointers so an
// omitted field is told apart from 0, which is a valid latitude or offset.
type Request struct {
	BirthDate string   `json:"birthDate" binding:"required"`
	BirthTime string   `json:"birthTime" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Timezone  *float64 `json:"timezone" binding:"required"`
}

// Response is serialized back to API consumers.
type Response struct {
	Planets      []PlanetEntry `json:"planets"`
	DashaPeriods []DashaPeriod `json:"dashaPeriods"`
	Narrative    string        `json:"narrative"`
}

// BirthInput is the validated birth moment. Its JSON form is the payload the
// computation API expects. Only range bounds are checked, so 31 February
// passes validation.
type BirthInput struct {
	Day       int     `json:"day" validate:"min=1,max=31"`
	Month     int     `json:"month" validate:"min=1,max=12"`
	Year      int     `json:"year" validate:"min=1900,max=2100"`
	Hour      int     `json:"hour" validate:"min=0,max=23"`
	Minute    int     `json:"min" validate:"min=0,max=59"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Timezone  float64 `json:"tzone"`
}

// PlanetEntry is one localized planet position.
type PlanetEntry struct {
	Name      string `json:"name"`
	Sign      string `json:"sign"`
	Nakshatra string `json:"nakshatra"`
	House     House  `json:"house"`
}

// DashaPeriod is a major period overlapping the target year. Start and End
// keep the upstream DD-MM-YYYY[ HH:MM] text.
type DashaPeriod struct {
	Planet string `json:"planet"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// House carries the upstream house value exactly as received: the API sends
// numbers, older payloads sent strings.
type House json.RawMessage

// MarshalJSON implements json.Marshaler.
func (h House) MarshalJSON() ([]byte, error) {
	if len(h) == 0 {
		return []byte(`""`), nil
	}
	return h, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *House) UnmarshalJSON(data []byte) error {
	*h = append((*h)[:0], data...)
	return nil
}

// String renders the house for prompts.
func (h House) String() string {
	raw := bytes.TrimSpace(h)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Config wires runtime dependencies for the prediction domain.
type Config struct {
	TargetYear int
}
