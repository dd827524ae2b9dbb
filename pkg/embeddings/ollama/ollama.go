// Package ollama implements pkg/embeddings' Predictor against Ollama's batch
// embedding API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/premiselab/premise/pkg/embeddings"
	"github.com/premiselab/premise/pkg/vector"
)

const (
	// DefaultModel is the default model used for embeddings.
	DefaultModel = "nomic-embed-text"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"
)

// Predictor wraps Ollama's embedding API. Theorem and goal strings go through
// the same model; the two batch methods exist to keep the capability contract
// explicit.
type Predictor struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config holds configuration for the Ollama predictor.
type Config struct {
	// BaseURL is the Ollama API URL (e.g., "http://localhost:11434").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the embedding model to use (e.g., "nomic-embed-text",
	// "all-minilm"). Defaults to DefaultModel if empty.
	Model string
}

// embedRequest is the request body for Ollama's embedding API. Input is the
// batch form: one string per item to embed.
type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embedResponse is the response from Ollama's embedding API.
type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewPredictor creates a predictor backed by Ollama's embedding API.
func NewPredictor(cfg Config) (*Predictor, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Predictor{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// BatchTheoremEmbedding embeds normalized theorem conclusions in input order.
func (p *Predictor) BatchTheoremEmbedding(ctx context.Context, conclusions []string) ([][]float32, error) {
	return p.embed(ctx, conclusions)
}

// BatchGoalEmbedding embeds proof goal strings in input order.
func (p *Predictor) BatchGoalEmbedding(ctx context.Context, goals []string) ([][]float32, error) {
	return p.embed(ctx, goals)
}

func (p *Predictor) embed(ctx context.Context, input []string) ([][]float32, error) {
	if len(input) == 0 {
		return [][]float32{}, nil
	}

	reqBody := embedRequest{
		Model: p.model,
		Input: input,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", vector.ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/api/embed", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", vector.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request: %v", vector.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama returned status %d: %s", vector.ErrEmbedding, resp.StatusCode, string(body))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", vector.ErrEmbedding, err)
	}

	if len(embedResp.Embeddings) != len(input) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", vector.ErrEmbedding, len(embedResp.Embeddings), len(input))
	}

	return embedResp.Embeddings, nil
}

// Close releases resources held by the predictor.
func (p *Predictor) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Predictor implements embeddings.Predictor
var _ embeddings.Predictor = (*Predictor)(nil)
