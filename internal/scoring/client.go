// Package scoring calls the optional remote prediction service. The service
// is advisory: any failure — transport error, timeout, non-success status, or
// an explicit fallback flag in the body — means the caller proceeds with the
// local engine output. Nothing here ever surfaces an error to the end user.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 30 * time.Second

// RemotePrediction is whatever richer prediction the remote model produced.
// The shape is owned by the remote service, so it stays loosely typed.
type RemotePrediction map[string]any

type predictRequest struct {
	ModelType string `json:"model_type"`
	InputData any    `json:"input_data"`
}

type predictResponse struct {
	Fallback   bool             `json:"fallback"`
	Prediction RemotePrediction `json:"prediction,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type Client struct {
	baseURL   string
	modelType string
	client    *http.Client
}

// NewClient returns nil when no base URL is configured; a nil client always
// falls back.
func NewClient(baseURL string, modelType string) *Client {
	if baseURL == "" {
		return nil
	}
	if modelType == "" {
		modelType = "cycle_prediction"
	}
	return &Client{
		baseURL:   baseURL,
		modelType: modelType,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Predict asks the remote service to score the input. The second return value
// reports whether a remote prediction is usable; false means use the local
// one, and is never an error condition.
func (c *Client) Predict(ctx context.Context, input any) (RemotePrediction, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := json.Marshal(predictRequest{
		ModelType: c.modelType,
		InputData: input,
	})
	if err != nil {
		log.Printf("scoring: encode request failed: %v", err)
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		log.Printf("scoring: build request failed: %v", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("scoring: request failed, using local prediction: %v", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("scoring: status %d, using local prediction", resp.StatusCode)
		return nil, false
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("scoring: decode response failed, using local prediction: %v", err)
		return nil, false
	}
	if decoded.Fallback || decoded.Error != "" || decoded.Prediction == nil {
		return nil, false
	}

	return decoded.Prediction, true
}
