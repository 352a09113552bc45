package wardstats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
)

// HTTPConfig configures the HTTP ward stats client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads ward collection figures from a remote revenue API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for the revenue API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("wardstats: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchWards implements gis.WardSource via GET /wards.
func (c *HTTPClient) FetchWards(ctx context.Context) ([]gis.Ward, error) {
	var resp wardsResponse
	if err := c.do(ctx, http.MethodGet, "/wards", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toWards()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("wardstats: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("wardstats: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wardstats: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("wardstats: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("wardstats: decode response: %w", err)
	}
	return nil
}

type wardRow struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Zone           string       `json:"zone"`
	Color          string       `json:"color"`
	Properties     int          `json:"properties"`
	Collected      float64      `json:"collected"`
	Target         float64      `json:"target"`
	AvgTax         int          `json:"avg_tax"`
	Defaulters     int          `json:"defaulters"`
	Complaints     int          `json:"complaints"`
	NewAssessments int          `json:"new_assessments"`
	Boundary       [][2]float64 `json:"boundary"`
}

type wardsResponse struct {
	Wards []wardRow `json:"wards"`
}

func (r wardsResponse) toWards() ([]gis.Ward, error) {
	wards := make([]gis.Ward, len(r.Wards))
	for i, row := range r.Wards {
		if row.ID == "" {
			return nil, fmt.Errorf("wardstats: ward %d has no id", i)
		}
		boundary := make(gis.Polygon, len(row.Boundary))
		for j, pt := range row.Boundary {
			boundary[j] = gis.LatLng{Lat: pt[0], Lng: pt[1]}
		}
		color := row.Color
		if color == "" {
			color = gis.WardColor(row.ID)
		}
		wards[i] = gis.Ward{
			ID:             row.ID,
			Name:           row.Name,
			Zone:           gis.ZoneID(row.Zone),
			Color:          color,
			Properties:     row.Properties,
			Collected:      row.Collected,
			Target:         row.Target,
			AvgTax:         row.AvgTax,
			Defaulters:     row.Defaulters,
			Complaints:     row.Complaints,
			NewAssessments: row.NewAssessments,
			Boundary:       boundary,
		}
	}
	return wards, nil
}
