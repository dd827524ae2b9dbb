// Package embeddings
package embeddings

import "context"

// Predictor maps theorem and goal strings to fixed-width embedding vectors.
// Implementations are duck-typed model front-ends: the store treats the
// capability as opaque and only relies on the batch contracts below.
type Predictor interface {
	// BatchTheoremEmbedding embeds normalized theorem conclusions, returning
	// one vector per input string, in input order. All vectors share one
	// width.
	BatchTheoremEmbedding(ctx context.Context, conclusions []string) ([][]float32, error)

	// BatchGoalEmbedding embeds proof goal strings, one vector per input, in
	// input order.
	BatchGoalEmbedding(ctx context.Context, goals []string) ([][]float32, error)

	// Close releases any resources held by the predictor.
	Close() error
}
