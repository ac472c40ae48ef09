package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ServingModel calls a model hosted behind the TensorFlow Serving REST API.
type ServingModel struct {
	baseURL string
	name    string
	client  *http.Client
}

// NewServingModel creates a client for model name served at baseURL.
// timeout <= 0 means no client-side timeout.
func NewServingModel(baseURL, name string, timeout time.Duration) *ServingModel {
	return &ServingModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Instances [][]int32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
	Error       string      `json:"error,omitempty"`
}

type modelStatusResponse struct {
	ModelVersionStatus []struct {
		Version string `json:"version"`
		State   string `json:"state"`
	} `json:"model_version_status"`
}

// Predict implements Model with a batch of one instance.
func (s *ServingModel) Predict(ctx context.Context, input []int32) ([]float32, error) {
	body, err := json.Marshal(predictRequest{Instances: [][]int32{input}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode predict request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:predict", s.baseURL, s.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	var out predictResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("model server error: %s", out.Error)
	}
	if len(out.Predictions) != 1 {
		return nil, fmt.Errorf("expected 1 prediction, got %d", len(out.Predictions))
	}
	return out.Predictions[0], nil
}

// CheckAvailable verifies that at least one version of the model is AVAILABLE.
func (s *ServingModel) CheckAvailable(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1/models/%s", s.baseURL, s.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	var status modelStatusResponse
	if err := decodeJSON(resp, &status); err != nil {
		return err
	}
	for _, v := range status.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return nil
		}
	}
	return fmt.Errorf("model %s has no available version", s.name)
}

func decodeJSON(resp *http.Response, v interface{}) error {
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("model server returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode model server response: %w", err)
	}
	return nil
}
