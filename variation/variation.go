// Package variation derives candidate handles from a raw identity query.
package variation

import "strings"

// MaxVariations bounds the number of handles Generate returns.
const MaxVariations = 12

var (
	separators = []string{".", "_", "-"}

	// Identity affixes commonly used when a plain handle is taken.
	prefixes = []string{"the", "real", "official", "iam"}
	suffixes = []string{"official", "real", "dev", "hq"}
)

// Generate turns a raw query into an ordered, unique set of candidate
// handles, capped at MaxVariations. The no-separator joined form always comes
// first and doubles as the primary guess. Generate is deterministic, total
// over all inputs, and never fails; an empty query yields a single empty
// variation.
func Generate(query string) []string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	tokens := strings.Fields(normalized)

	var out []string
	seen := make(map[string]bool)
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	joined := strings.Join(tokens, "")
	add(joined)
	if joined == "" {
		return out
	}

	if len(tokens) > 1 {
		for _, sep := range separators {
			add(strings.Join(tokens, sep))
		}
	}

	for _, p := range prefixes {
		add(p + joined)
	}
	for _, s := range suffixes {
		add(joined + s)
	}

	// Queries that already look like stylized handles get re-joined with
	// each separator, e.g. "john.doe" also yields "john_doe" and "john-doe".
	if strings.ContainsAny(normalized, "._-") {
		parts := strings.FieldsFunc(normalized, func(r rune) bool {
			return r == '.' || r == '_' || r == '-' || r == ' '
		})
		if len(parts) > 1 {
			add(strings.Join(parts, ""))
			for _, sep := range separators {
				add(strings.Join(parts, sep))
			}
		}
	}

	if len(out) > MaxVariations {
		out = out[:MaxVariations]
	}
	return out
}
