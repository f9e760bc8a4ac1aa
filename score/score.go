// Package score converts extracted profile signals into a confidence score.
//
// The model is a fixed table of anchors, each a weighted category of
// corroborating evidence. Handle correlation always contributes something;
// the other anchors only add weight when satisfied. Two or more satisfied
// anchor categories promote the score to at least 90: independent
// corroborating evidence beats any single strong signal.
package score

import (
	"math"
	"strings"

	"github.com/codeGROOVE-dev/doppel/platform"
	"github.com/codeGROOVE-dev/doppel/profile"
)

// Anchor identifies one weighted evidence category.
type Anchor string

// Anchor categories.
const (
	AnchorHandle    Anchor = "handle"
	AnchorLocation  Anchor = "location"
	AnchorCrossLink Anchor = "cross-link"
	AnchorKeyword   Anchor = "keyword"
)

// Anchor weights.
const (
	weightHandle    = 40
	weightLocation  = 25
	weightCrossLink = 20
	weightKeyword   = 15
)

// Handle correlation grades, as fractions of weightHandle.
const (
	handleExact     = 40 // verbatim match after case folding
	handleSubstring = 35 // containment either direction
	handleToken     = 25 // token-level partial match
	handleBaseline  = 10 // bare platform hit, nothing correlates
)

// Promotion and floor thresholds.
const (
	promotedMin = 90
	floorMin    = 15
)

// Evidence is the scored outcome for one candidate profile.
type Evidence struct {
	Value   int      // 0..100
	Reasons []string // human-readable descriptions of contributing anchors
	Anchors []Anchor // distinct anchor categories satisfied
}

// Score rates how likely the candidate profile belongs to the queried
// identity. ownDomain is the domain of the platform being scored, so a
// profile linking back to its own host doesn't count as cross-platform
// evidence.
func Score(handle string, q profile.Query, bio, title, ownDomain string) Evidence {
	var ev Evidence

	bioLower := strings.ToLower(bio)
	titleLower := strings.ToLower(title)

	// Handle correlation always contributes; the grade depends on how much
	// of the query survives in the candidate handle.
	raw := handleWeight(handle, q.Text)
	switch raw {
	case handleExact:
		ev.Reasons = append(ev.Reasons, "handle matches query exactly")
	case handleSubstring:
		ev.Reasons = append(ev.Reasons, "handle contains query")
	case handleToken:
		ev.Reasons = append(ev.Reasons, "handle shares query tokens")
	default:
		ev.Reasons = append(ev.Reasons, "platform account exists")
	}
	// Baseline hits don't count as a satisfied anchor for promotion.
	if raw > handleBaseline {
		ev.Anchors = append(ev.Anchors, AnchorHandle)
	}

	// Geographic context only applies when the caller supplied a location.
	total := weightHandle
	if q.Location != "" {
		total += weightLocation
		loc := strings.ToLower(q.Location)
		if strings.Contains(bioLower, loc) || strings.Contains(titleLower, loc) {
			raw += weightLocation
			ev.Reasons = append(ev.Reasons, "location "+q.Location+" appears in profile")
			ev.Anchors = append(ev.Anchors, AnchorLocation)
		}
	}

	if d := crossLinkDomain(bioLower, ownDomain); d != "" {
		raw += weightCrossLink
		ev.Reasons = append(ev.Reasons, "bio links to "+d)
		ev.Anchors = append(ev.Anchors, AnchorCrossLink)
	}

	if kw := affinityKeyword(bioLower); kw != "" {
		raw += weightKeyword
		ev.Reasons = append(ev.Reasons, "bio mentions "+kw)
		ev.Anchors = append(ev.Anchors, AnchorKeyword)
	}

	value := int(math.Round(100 * float64(raw) / float64(total)))
	if value > 100 {
		value = 100
	}
	if value < 0 {
		value = 0
	}

	if len(ev.Anchors) >= 2 && value < promotedMin {
		value = promotedMin
		ev.Reasons = append(ev.Reasons, "multiple independent signals corroborate")
	}

	// A bare, unverified platform match still scores above zero; zero is
	// reserved for profiles that were never found.
	if value < floorMin {
		value = floorMin
	}

	ev.Value = value
	return ev
}

// handleWeight grades how strongly the candidate handle correlates with the
// query text. Exact requires the query verbatim (lowercased, trimmed);
// separator differences like "john doe" vs "johndoe" grade as containment.
func handleWeight(handle, query string) int {
	h := strings.ToLower(strings.TrimSpace(handle))
	q := strings.ToLower(strings.TrimSpace(query))
	if h == q && h != "" {
		return handleExact
	}

	hn := normalizeHandle(handle)
	qn := normalizeHandle(query)
	if hn == "" || qn == "" {
		return handleBaseline
	}
	if strings.Contains(hn, qn) || strings.Contains(qn, hn) {
		return handleSubstring
	}

	for _, token := range strings.Fields(strings.ToLower(query)) {
		token = normalizeHandle(token)
		if len(token) < 3 {
			continue
		}
		if strings.Contains(hn, token) {
			return handleToken
		}
	}

	return handleBaseline
}

// normalizeHandle lowercases and strips separators so "John.Doe" and
// "johndoe" compare equal.
func normalizeHandle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-', ' ', '@':
			return -1
		}
		return r
	}, s)
}

// crossLinkDomain returns the first known platform domain mentioned in the
// bio, excluding the platform being scored.
func crossLinkDomain(bioLower, ownDomain string) string {
	if bioLower == "" {
		return ""
	}
	for _, domain := range platform.KnownSocialDomains() {
		if domain == ownDomain {
			continue
		}
		if strings.Contains(bioLower, domain) {
			return domain
		}
	}
	return ""
}

// affinityKeywords is a fixed professional/creative vocabulary; a bio using
// any of these tells us the account belongs to an active creator rather
// than a parked name.
var affinityKeywords = []string{
	"engineer", "developer", "programmer", "architect", "designer",
	"software", "devops", "security", "researcher", "scientist",
	"founder", "co-founder", "consultant", "entrepreneur",
	"artist", "photographer", "musician", "producer", "writer",
	"author", "creator", "streamer", "gamer", "maker",
	"open source", "open-source", "maintainer",
}

func affinityKeyword(bioLower string) string {
	if bioLower == "" {
		return ""
	}
	for _, kw := range affinityKeywords {
		if strings.Contains(bioLower, kw) {
			return kw
		}
	}
	return ""
}
