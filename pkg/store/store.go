// Package store implements the theorem embedding store: it materializes
// embeddings for a theorem database through a predictor, persists them to
// single or sharded matrix files with strict consistency checking, and scores
// held rows against a goal embedding.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/embeddings"
	"github.com/premiselab/premise/pkg/theorem"
)

// Store holds at most one embedding matrix, positionally aligned with the
// theorems of the most recent compute or read. The predictor is shared and
// externally owned; the store never mutates or closes it.
//
// A Store is not safe for concurrent use. Callers sharing one instance across
// goroutines must synchronize externally.
type Store struct {
	predictor embeddings.Predictor
	logger    *zap.Logger

	// thmEmbeddings is nil until the first successful compute or read.
	thmEmbeddings [][]float32
}

// New creates an empty store backed by the given predictor. A nil logger is
// replaced with a no-op logger.
func New(predictor embeddings.Predictor, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		predictor: predictor,
		logger:    logger,
	}
}

// Predictor returns the predictor supplied at construction.
func (s *Store) Predictor() embeddings.Predictor {
	return s.predictor
}

// Embeddings returns the held matrix, or nil when nothing has been computed
// or read. The slice is the store's own; callers must not mutate it.
func (s *Store) Embeddings() [][]float32 {
	return s.thmEmbeddings
}

// ComputeFromDatabase normalizes every theorem conclusion in db, embeds the
// conclusions in database order through the predictor, and replaces the held
// matrix with the result, one row per theorem.
func (s *Store) ComputeFromDatabase(ctx context.Context, db *theorem.Database) error {
	conclusions := make([]string, len(db.Theorems))
	for i, thm := range db.Theorems {
		conclusions[i] = theorem.Normalize(thm).Conclusion
	}

	embs, err := s.predictor.BatchTheoremEmbedding(ctx, conclusions)
	if err != nil {
		return fmt.Errorf("embedding %d theorems: %w", len(conclusions), err)
	}

	if len(embs) != len(conclusions) {
		return fmt.Errorf("predictor returned %d embeddings for %d theorems", len(embs), len(conclusions))
	}

	s.thmEmbeddings = embs

	s.logger.Debug("computed theorem embeddings",
		zap.Int("theorems", len(embs)),
	)

	return nil
}

// ComputeFromDatabaseFile loads a theorem database from path and delegates to
// ComputeFromDatabase. Loader errors propagate and leave the held matrix
// unchanged.
func (s *Store) ComputeFromDatabaseFile(ctx context.Context, path string) error {
	db, err := theorem.LoadDatabaseFromFile(path)
	if err != nil {
		return err
	}

	return s.ComputeFromDatabase(ctx, db)
}

// SaveEmbeddings writes the entire held matrix to exactly one file at path,
// overwriting any existing file. The path may itself carry a shard suffix;
// the store never splits the matrix, so sharded layouts are produced by the
// caller issuing one save per shard path. The held matrix survives the save.
func (s *Store) SaveEmbeddings(path string) error {
	if s.thmEmbeddings == nil {
		return ErrNoEmbeddings
	}

	if err := WriteMatrix(path, s.thmEmbeddings); err != nil {
		return err
	}

	s.logger.Debug("saved theorem embeddings",
		zap.String("path", path),
		zap.Int("rows", len(s.thmEmbeddings)),
	)

	return nil
}

// ReadEmbeddings loads a matrix from a literal file path or a glob pattern
// and replaces the held matrix with it.
//
// A pattern matching a single file without a shard annotation (or matching
// nothing, in which case the pattern is treated as a literal path) is read
// directly. Otherwise every matched file must carry a `-NNN-of-MMM`
// annotation: all totals must agree (ErrInconsistentShards) and the index set
// must be exactly {0..total-1} (ErrIncompleteShards). Shard matrices are
// concatenated in ascending index order, each shard's row order preserved.
//
// On any failure the held matrix is left untouched.
func (s *Store) ReadEmbeddings(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}

	if len(matches) == 0 {
		// Not a pattern that matched anything; treat as a literal path so
		// a missing file surfaces as the underlying read error.
		m, err := ReadMatrix(pattern)
		if err != nil {
			return err
		}
		s.thmEmbeddings = m
		return nil
	}

	if len(matches) == 1 {
		if _, sharded := ParseShardPath(matches[0]); !sharded {
			m, err := ReadMatrix(matches[0])
			if err != nil {
				return err
			}
			s.thmEmbeddings = m
			return nil
		}
	}

	m, err := s.readShards(pattern, matches)
	if err != nil {
		return err
	}

	s.thmEmbeddings = m
	return nil
}

// readShards validates the matched shard set and concatenates the per-shard
// matrices in ascending index order. It never touches s.thmEmbeddings.
func (s *Store) readShards(pattern string, matches []string) ([][]float32, error) {
	total := -1
	byIndex := make(map[int]string, len(matches))

	for _, path := range matches {
		sh, ok := ParseShardPath(path)
		if !ok {
			return nil, fmt.Errorf("%w: %s carries no shard annotation", ErrInconsistentShards, path)
		}

		if total == -1 {
			total = sh.Total
		} else if sh.Total != total {
			return nil, fmt.Errorf("%w: %s declares total %d, earlier shards declare %d",
				ErrInconsistentShards, path, sh.Total, total)
		}

		if prev, dup := byIndex[sh.Index]; dup {
			return nil, fmt.Errorf("%w: shard index %d declared by both %s and %s",
				ErrIncompleteShards, sh.Index, prev, path)
		}
		byIndex[sh.Index] = path
	}

	if len(byIndex) != total {
		return nil, fmt.Errorf("%w: pattern %q matched %d shards of declared %d",
			ErrIncompleteShards, pattern, len(byIndex), total)
	}

	for i := 0; i < total; i++ {
		if _, ok := byIndex[i]; !ok {
			return nil, fmt.Errorf("%w: missing shard %d of %d", ErrIncompleteShards, i, total)
		}
	}

	indices := make([]int, 0, total)
	for i := range byIndex {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var out [][]float32
	width := -1
	for _, i := range indices {
		m, err := ReadMatrix(byIndex[i])
		if err != nil {
			return nil, err
		}

		if len(m) > 0 {
			if width == -1 {
				width = len(m[0])
			} else if len(m[0]) != width {
				return nil, fmt.Errorf("%w: %s has embedding width %d, earlier shards have %d",
					ErrInconsistentShards, byIndex[i], len(m[0]), width)
			}
		}

		out = append(out, m...)
	}

	s.logger.Debug("read sharded theorem embeddings",
		zap.String("pattern", pattern),
		zap.Int("shards", total),
		zap.Int("rows", len(out)),
	)

	return out, nil
}

// ScoresForPrecedingTheorems scores the held rows [0, theoremIndex) against
// the goal embedding, preserving row order. A negative theoremIndex scores
// the full matrix. theoremIndex may be at most the row count.
func (s *Store) ScoresForPrecedingTheorems(goal []float32, theoremIndex int) ([]float32, error) {
	if s.thmEmbeddings == nil {
		return nil, ErrNoEmbeddings
	}

	limit := theoremIndex
	if limit < 0 {
		limit = len(s.thmEmbeddings)
	}
	if limit > len(s.thmEmbeddings) {
		return nil, fmt.Errorf("theorem index %d out of range [0, %d]", theoremIndex, len(s.thmEmbeddings))
	}

	scores := make([]float32, limit)
	for i := 0; i < limit; i++ {
		score, err := Similarity(goal, s.thmEmbeddings[i])
		if err != nil {
			return nil, fmt.Errorf("scoring theorem %d: %w", i, err)
		}
		scores[i] = score
	}

	return scores, nil
}

// AssumptionEmbeddings is declared for interface parity with the predictor
// surface but is permanently unsupported: it always returns ErrNotSupported
// regardless of input. Callers depend on detecting this failure, so it must
// not be silently implemented.
func (s *Store) AssumptionEmbeddings(assumptions []string) ([][]float32, error) {
	return nil, fmt.Errorf("%w: %d assumptions given", ErrNotSupported, len(assumptions))
}
