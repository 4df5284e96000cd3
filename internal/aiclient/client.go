// Package aiclient talks to the external ML scoring service and owns the
// deterministic fallback used when that service is unreachable or returns
// an unusable payload. Callers never see the outage as an error.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/workflow-approval/internal/core/resilient"
)

// PredictionRequest carries the workflow attributes the scoring model
// consumes.
type PredictionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount"`
	Department  string   `json:"department"`
}

// Prediction is the scoring result. Fallback is true when the value was
// computed locally instead of by the remote model.
type Prediction struct {
	ApprovalProbability float64 `json:"approvalProbability"`
	Suggestion          string  `json:"suggestion"`
	Confidence          float64 `json:"confidence"`
	Fallback            bool    `json:"fallback,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    config.BaseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PredictApproval scores a workflow remote-first. Any transport error,
// non-2xx status, or undecodable body falls back to the local heuristic.
func (c *Client) PredictApproval(ctx context.Context, req PredictionRequest) *Prediction {
	prediction, usedFallback := resilient.Lookup(ctx,
		func(ctx context.Context) (*Prediction, error) {
			return c.requestPrediction(ctx, req)
		},
		func(p *Prediction) bool { return p == nil },
		func() *Prediction {
			return FallbackPrediction(req.Amount, req.Type)
		},
	)

	if usedFallback {
		c.logger.Warn("ml service unavailable, using fallback prediction",
			"type", req.Type,
			"department", req.Department)
	}

	return prediction
}

func (c *Client) requestPrediction(ctx context.Context, req PredictionRequest) (*Prediction, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict-approval", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	return &prediction, nil
}

// FetchAnalytics retrieves the remote analytics payload as-is. The caller
// decides whether the payload is trustworthy (a "fallback" key marks the
// service's own canned data) and computes locally otherwise.
func (c *Client) FetchAnalytics(ctx context.Context) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/analytics", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analytics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode analytics response: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("empty analytics response")
	}

	return payload, nil
}
