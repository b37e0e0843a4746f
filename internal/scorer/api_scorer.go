package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vradovic/fakebench/internal/bench/dataset"
)

// APIScorer asks a model-serving endpoint for probabilities over HTTP.
type APIScorer struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewAPIScorer(name, baseURL string) *APIScorer {
	return &APIScorer{
		name:    name,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type predictRequest struct {
	Items []predictItem `json:"items"`
}

type predictItem struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
}

type predictResponse struct {
	Scores []predictScore `json:"scores"`
}

type predictScore struct {
	ID          string  `json:"id"`
	Probability float64 `json:"probability"`
}

func (s *APIScorer) Score(ctx context.Context, samples []dataset.Sample) ([]float64, error) {
	items := make([]predictItem, len(samples))
	for i, sample := range samples {
		items[i] = predictItem{ID: sample.ID, Path: sample.Path}
	}

	payload, err := json.Marshal(predictRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("scorer %q: marshal request: %w", s.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("scorer %q: create request: %w", s.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scorer %q: request: %w", s.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scorer %q: read response: %w", s.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorer %q: status %d: %s", s.name, resp.StatusCode, string(body))
	}

	var pr predictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("scorer %q: parse response: %w", s.name, err)
	}

	byID := make(map[string]float64, len(pr.Scores))
	for _, sc := range pr.Scores {
		byID[sc.ID] = sc.Probability
	}

	probs := make([]float64, len(samples))
	for i, sample := range samples {
		p, ok := byID[sample.ID]
		if !ok {
			return nil, fmt.Errorf("scorer %q: response missing sample %q", s.name, sample.ID)
		}
		probs[i] = p
	}

	return probs, nil
}

func (s *APIScorer) Name() string { return s.name }
func (s *APIScorer) Close() error { return nil }
