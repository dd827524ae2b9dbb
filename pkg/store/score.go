package store

import "fmt"

// Similarity computes the relevance score between a goal embedding and a
// single theorem embedding as their inner product. The score depends only on
// the two vectors, so scoring a row is independent of every other row.
// Accumulation happens in float64 to keep the result stable across row
// orderings.
func Similarity(goal, thm []float32) (float32, error) {
	if len(goal) != len(thm) {
		return 0, fmt.Errorf("similarity dimension mismatch: %d vs %d", len(goal), len(thm))
	}

	var dot float64
	for i := range goal {
		dot += float64(goal[i]) * float64(thm[i])
	}

	return float32(dot), nil
}
