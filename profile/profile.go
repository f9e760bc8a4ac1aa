// Package profile defines the common types for identity discovery and scoring.
package profile

import "errors"

// Common errors returned by the engine.
var (
	ErrEmptyQuery  = errors.New("query text is required")
	ErrNoPlatforms = errors.New("no platforms selected")
)

// Query describes one identity search request. Immutable per request.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Query struct {
	Text     string `json:"text"`               // Raw name or handle, required
	Location string `json:"location,omitempty"` // Optional geographic hint, e.g. "London"
	AgeMin   int    `json:"age_min,omitempty"`  // Optional age range lower bound (0 = unset)
	AgeMax   int    `json:"age_max,omitempty"`  // Optional age range upper bound (0 = unset)
	Gender   string `json:"gender,omitempty"`   // Optional

	// Platforms restricts the search to the named registry entries.
	// Empty means all registered platforms.
	Platforms []string `json:"platforms,omitempty"`
}

// ScrapedProfile represents extracted data from one candidate profile page.
// Found=false carries no other content fields.
//
//nolint:govet // fieldalignment: intentional layout for readability
type ScrapedProfile struct {
	Platform string // Registry platform name
	URL      string // URL fetched
	Username string // Candidate handle (without @ prefix)
	Found    bool   // Whether the page looks like a real profile

	// Restricted marks profiles behind a login wall (HTTP 401/403).
	// These are real, access-controlled profiles rather than absence.
	Restricted bool

	Title    string // Page title
	Bio      string // Profile bio/description
	ImageURL string // Representative profile image, if any

	// HasStructuredData is true when the bio came from an embedded
	// structured-data block rather than meta tags.
	HasStructuredData bool
}

// SearchResult is the unit returned to callers.
//
//nolint:govet // fieldalignment: intentional layout for readability
type SearchResult struct {
	Platform     string   `json:"platform"`
	URL          string   `json:"url"`
	Username     string   `json:"username"`
	Found        bool     `json:"found"`
	Category     string   `json:"category"`
	Confidence   int      `json:"confidence"`
	MatchReasons []string `json:"match_reasons,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}
