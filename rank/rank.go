// Package rank deduplicates, filters, and orders search results across
// every discovery vector before they are returned to callers.
package rank

import (
	"sort"
	"strings"

	"github.com/codeGROOVE-dev/doppel/profile"
)

const (
	// MinConfidence is the cutoff below which results are discarded.
	MinConfidence = 30
	// MaxResults caps the final result list.
	MaxResults = 35
)

// hostAliases folds hosts that serve the same profiles under different names.
var hostAliases = map[string]string{
	"x.com": "twitter.com",
}

// Results dedupes by canonical URL (keeping the highest-confidence entry),
// drops anything below MinConfidence, and sorts by confidence descending
// with URL as the tiebreaker.
func Results(in []profile.SearchResult) []profile.SearchResult {
	best := make(map[string]profile.SearchResult, len(in))
	for _, r := range in {
		key := CanonicalURL(r.URL)
		if prev, ok := best[key]; ok && prev.Confidence >= r.Confidence {
			continue
		}
		best[key] = r
	}

	out := make([]profile.SearchResult, 0, len(best))
	for _, r := range best {
		if r.Confidence < MinConfidence {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].URL < out[j].URL
	})

	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// CanonicalURL normalizes a URL for deduplication: strips scheme and www,
// lowercases, drops the trailing slash, and folds known host aliases.
func CanonicalURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "www.")
	url = strings.ToLower(url)
	for alias, canonical := range hostAliases {
		if strings.HasPrefix(url, alias+"/") || url == alias {
			return canonical + strings.TrimPrefix(url, alias)
		}
	}
	return url
}
