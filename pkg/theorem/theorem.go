// Package theorem defines the theorem database records consumed by the
// embedding store, their on-disk JSON form, and conclusion normalization.
package theorem

// Theorem is one statement record in a database. Only the normalized
// conclusion matters to the embedding store; the remaining fields ride along
// for tooling.
type Theorem struct {
	// Name is the human-readable theorem name, when the corpus has one.
	Name string `json:"name,omitempty"`

	// Hypotheses are the statement's hypothesis terms.
	Hypotheses []string `json:"hypotheses,omitempty"`

	// Conclusion is the statement's conclusion term.
	Conclusion string `json:"conclusion"`

	// Tag classifies the record (e.g. "THEOREM", "DEFINITION", "GOAL").
	Tag string `json:"tag,omitempty"`
}

// Database is an ordered collection of theorems. Order is significant:
// embeddings are positionally aligned with this slice, and "preceding"
// theorems are defined by it.
type Database struct {
	Name     string    `json:"name,omitempty"`
	Theorems []Theorem `json:"theorems"`
}
