package store

import "errors"

var (
	// ErrNoEmbeddings is returned when an operation requires a held
	// embedding matrix and none has been computed or read.
	ErrNoEmbeddings = errors.New("no embeddings loaded")

	// ErrInconsistentShards is returned when files matched by a shard
	// pattern disagree on the declared shard total, or when some matched
	// files carry no shard annotation at all.
	ErrInconsistentShards = errors.New("inconsistent shard files")

	// ErrIncompleteShards is returned when the matched shard files do not
	// cover every index in [0, total) exactly once.
	ErrIncompleteShards = errors.New("incomplete shard set")

	// ErrNotSupported is returned by AssumptionEmbeddings. This is a
	// permanent capability absence, not a transient failure.
	ErrNotSupported = errors.New("assumption embeddings not supported")
)
