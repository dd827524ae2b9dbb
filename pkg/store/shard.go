package store

import (
	"regexp"
	"strconv"
)

// Shard identifies one file's position within a sharded matrix, as declared
// by its filename suffix.
type Shard struct {
	// Index is the zero-based shard position.
	Index int

	// Total is the declared number of shards in the set.
	Total int
}

// shardSuffix matches the trailing `-NNN-of-MMM` annotation, e.g.
// `embeddings.emb-000-of-002`. Bare numeric suffixes like `.emb_1` carry no
// annotation and are not matched.
var shardSuffix = regexp.MustCompile(`-(\d+)-of-(\d+)$`)

// ParseShardPath extracts the shard annotation from a file path. The second
// return value is false when the path carries no annotation. Validation of a
// shard set (matching totals, full index coverage) happens in ReadEmbeddings,
// not here, so the filename encoding can change without touching that logic.
func ParseShardPath(path string) (Shard, bool) {
	m := shardSuffix.FindStringSubmatch(path)
	if m == nil {
		return Shard{}, false
	}

	index, err := strconv.Atoi(m[1])
	if err != nil {
		return Shard{}, false
	}

	total, err := strconv.Atoi(m[2])
	if err != nil {
		return Shard{}, false
	}

	return Shard{Index: index, Total: total}, true
}
