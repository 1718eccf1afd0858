// Package inference is the HTTP adapter for the remote scoring service.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roadrisk/internal/domain"
)

// Endpoint paths on the model server.
const (
	predictPath = "/api/model/predict"
	currentPath = "/api/risk/current"
	overlayPath = "/api/risk/overlay"
	explainPath = "/api/risk/explain"
)

// Client implements domain.InferenceClient against a configurable base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given model server.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("model server base URL cannot be empty")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// post issues one request/response cycle. Non-2xx responses surface the
// body's error field when present; a success body that fails to parse as
// JSON is treated as an empty object, leaving out at its zero value.
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &errBody); err == nil && errBody.Error != "" {
			return fmt.Errorf("%s", errBody.Error)
		}
		return fmt.Errorf("request failed (%d)", resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	// A body that is not valid JSON counts as an empty object, not a
	// transport failure; missing fields degrade downstream.
	_ = json.Unmarshal(data, out)
	return nil
}

// Predict implements domain.InferenceClient. The feature vector is sent as
// a flat object of named floats.
func (c *Client) Predict(ctx context.Context, features domain.FeatureVector) (*domain.Prediction, error) {
	var prediction domain.Prediction
	if err := c.post(ctx, predictPath, features, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// CurrentRisk implements domain.InferenceClient.
func (c *Client) CurrentRisk(ctx context.Context, lat, lng float64, timestamp time.Time) (*domain.PointRisk, error) {
	body := map[string]interface{}{
		"lat":       lat,
		"lng":       lng,
		"timestamp": timestamp.UTC().Format(time.RFC3339),
	}
	var risk domain.PointRisk
	if err := c.post(ctx, currentPath, body, &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}

// Overlay implements domain.InferenceClient. One call scores the whole
// marker batch.
func (c *Client) Overlay(ctx context.Context, timestamp time.Time, rows []domain.OverlayRow) ([]domain.OverlayEntry, error) {
	body := map[string]interface{}{
		"timestamp": timestamp.UTC().Format(time.RFC3339),
		"rows":      rows,
	}
	var resp struct {
		Results []domain.OverlayEntry `json:"results"`
	}
	if err := c.post(ctx, overlayPath, body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Explain implements domain.InferenceClient.
func (c *Client) Explain(ctx context.Context, segmentID string, lat, lng float64, timestamp time.Time) (*domain.Explanation, error) {
	body := map[string]interface{}{
		"segment_id": segmentID,
		"lat":        lat,
		"lng":        lng,
		"timestamp":  timestamp.UTC().Format(time.RFC3339),
	}
	var explanation domain.Explanation
	if err := c.post(ctx, explainPath, body, &explanation); err != nil {
		return nil, err
	}
	return &explanation, nil
}
