package rank

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/doppel/profile"
)

func TestResultsDedupeKeepsHighestConfidence(t *testing.T) {
	in := []profile.SearchResult{
		{Platform: "github", URL: "https://github.com/johndoe", Confidence: 40},
		{Platform: "github", URL: "https://github.com/johndoe/", Confidence: 72},
	}

	got := Results(in)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Confidence != 72 {
		t.Errorf("Confidence = %d, want 72", got[0].Confidence)
	}
}

func TestResultsDedupeAcrossHostAliases(t *testing.T) {
	in := []profile.SearchResult{
		{URL: "https://twitter.com/johndoe", Confidence: 50},
		{URL: "https://x.com/johndoe", Confidence: 80},
	}

	got := Results(in)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Confidence != 80 {
		t.Errorf("Confidence = %d, want 80", got[0].Confidence)
	}
}

func TestResultsDropsLowConfidence(t *testing.T) {
	in := []profile.SearchResult{
		{URL: "https://github.com/a", Confidence: 29},
		{URL: "https://github.com/b", Confidence: 30},
		{URL: "https://github.com/c", Confidence: 15},
	}

	got := Results(in)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1, got %v", len(got), got)
	}
	if got[0].URL != "https://github.com/b" {
		t.Errorf("kept %q, want the 30-confidence result", got[0].URL)
	}
}

func TestResultsOrdering(t *testing.T) {
	in := []profile.SearchResult{
		{URL: "https://github.com/zeta", Confidence: 60},
		{URL: "https://github.com/alpha", Confidence: 60},
		{URL: "https://github.com/top", Confidence: 95},
	}

	got := Results(in)
	want := []string{"https://github.com/top", "https://github.com/alpha", "https://github.com/zeta"}
	var gotURLs []string
	for _, r := range got {
		gotURLs = append(gotURLs, r.URL)
	}
	if diff := cmp.Diff(want, gotURLs); diff != "" {
		t.Errorf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestResultsCap(t *testing.T) {
	var in []profile.SearchResult
	for i := range 50 {
		in = append(in, profile.SearchResult{
			URL:        fmt.Sprintf("https://github.com/user%02d", i),
			Confidence: 50,
		})
	}

	got := Results(in)
	if len(got) != MaxResults {
		t.Errorf("len = %d, want %d", len(got), MaxResults)
	}
}

func TestResultsEmpty(t *testing.T) {
	if got := Results(nil); len(got) != 0 {
		t.Errorf("Results(nil) = %v, want empty", got)
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/JohnDoe/", "github.com/johndoe"},
		{"http://www.github.com/johndoe", "github.com/johndoe"},
		{"https://x.com/johndoe", "twitter.com/johndoe"},
		{"https://x.com", "twitter.com"},
		{"https://xylophone.com/a", "xylophone.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := CanonicalURL(tt.url); got != tt.want {
				t.Errorf("CanonicalURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
