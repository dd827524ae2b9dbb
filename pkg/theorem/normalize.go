package theorem

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalized is the canonical form of a theorem used for embedding. Two
// theorems that differ only in whitespace or in prover-generated variable
// numbering normalize to the same conclusion.
type Normalized struct {
	Conclusion string
}

// genVar matches prover-generated premise variables, e.g. `GEN%PVAR%3920`.
// Their numbering depends on proof-search order, so it is renumbered by first
// appearance to keep conclusions stable across runs.
var genVar = regexp.MustCompile(`GEN%PVAR%\d+`)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a theorem's conclusion: runs of whitespace collapse
// to single spaces and generated variables are renumbered in order of first
// appearance.
func Normalize(thm Theorem) Normalized {
	conclusion := strings.TrimSpace(whitespace.ReplaceAllString(thm.Conclusion, " "))

	seen := make(map[string]string)
	conclusion = genVar.ReplaceAllStringFunc(conclusion, func(v string) string {
		if canon, ok := seen[v]; ok {
			return canon
		}
		canon := "GEN%PVAR%" + strconv.Itoa(len(seen))
		seen[v] = canon
		return canon
	})

	return Normalized{Conclusion: conclusion}
}
