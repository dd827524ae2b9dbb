package testutils

import (
	"context"
	"fmt"
	"hash/fnv"
)

// MockPredictor is a test predictor that returns deterministic embeddings
// derived from each input string, so independent test scenarios can construct
// their own instance and still agree on what a given string embeds to.
type MockPredictor struct {
	// FailOn causes embedding to return an error when an input matches
	FailOn string

	closed bool
}

func NewMockPredictor() *MockPredictor {
	return &MockPredictor{}
}

// Embed returns the deterministic two-dimensional embedding for one string.
// Exposed so tests can compute expected scores without duplicating the
// derivation.
func (m *MockPredictor) Embed(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))

	// Keep the first component small so float32 dot products stay exact in
	// assertions.
	return []float32{float32(h.Sum32()%512) / 256.0, 1}
}

func (m *MockPredictor) BatchTheoremEmbedding(_ context.Context, conclusions []string) ([][]float32, error) {
	return m.batch(conclusions)
}

func (m *MockPredictor) BatchGoalEmbedding(_ context.Context, goals []string) ([][]float32, error) {
	return m.batch(goals)
}

func (m *MockPredictor) batch(input []string) ([][]float32, error) {
	out := make([][]float32, len(input))
	for i, text := range input {
		if m.FailOn != "" && text == m.FailOn {
			return nil, fmt.Errorf("mock embedding failure for: %s", text)
		}
		out[i] = m.Embed(text)
	}
	return out, nil
}

func (m *MockPredictor) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockPredictor) Closed() bool {
	return m.closed
}
