package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/astro-prediction/internal/domain/geo"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "AstroApp/1.0"
	defaultTimeout   = 10 * time.Second
	defaultLimit     = 5
)

// Config tunes the OSM Nominatim client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Limit     int
}

// UpstreamError reports a failed geocoding call.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nominatim: %v", e.Err)
	}
	return fmt.Sprintf("nominatim: status=%d body=%s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client searches places on OSM Nominatim.
type Client struct {
	baseURL    string
	userAgent  string
	limit      int
	httpClient *http.Client
}

// NewClient builds a geocoding client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limit:     limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search resolves a free-text query into places.
func (c *Client) Search(ctx context.Context, query string) ([]geo.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(excerpt)}
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	places := make([]geo.Place, 0, len(hits))
	for i, h := range hits {
		if h.Lat == nil || h.Lon == nil {
			return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("result %d has no lat/lon", i)}
		}
		places = append(places, h.toPlace())
	}
	return places, nil
}

type searchHit struct {
	DisplayName string  `json:"display_name"`
	Name        string  `json:"name"`
	Lat         *coord  `json:"lat"`
	Lon         *coord  `json:"lon"`
	Address     address `json:"address"`
}

type address struct {
	Country string `json:"country"`
}

func (h searchHit) toPlace() geo.Place {
	return geo.Place{
		DisplayName: h.DisplayName,
		Name:        h.Name,
		Latitude:    float64(*h.Lat),
		Longitude:   float64(*h.Lon),
		Country:     h.Address.Country,
	}
}

// coord accepts the quoted decimal strings Nominatim returns as well as bare
// numbers.
type coord float64

func (c *coord) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("coordinate %s: %w", data, err)
	}
	*c = coord(v)
	return nil
}
