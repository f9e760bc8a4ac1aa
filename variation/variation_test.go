package variation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "single token",
			query: "johndoe",
			want: []string{
				"johndoe",
				"thejohndoe", "realjohndoe", "officialjohndoe", "iamjohndoe",
				"johndoeofficial", "johndoereal", "johndoedev", "johndoehq",
			},
		},
		{
			name:  "two tokens",
			query: "john doe",
			want: []string{
				"johndoe",
				"john.doe", "john_doe", "john-doe",
				"thejohndoe", "realjohndoe", "officialjohndoe", "iamjohndoe",
				"johndoeofficial", "johndoereal", "johndoedev", "johndoehq",
			},
		},
		{
			name:  "mixed case and padding",
			query: "  John Doe  ",
			want: []string{
				"johndoe",
				"john.doe", "john_doe", "john-doe",
				"thejohndoe", "realjohndoe", "officialjohndoe", "iamjohndoe",
				"johndoeofficial", "johndoereal", "johndoedev", "johndoehq",
			},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{""},
		},
		{
			name:  "whitespace only",
			query: "   ",
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Generate(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestGenerateStylizedHandle(t *testing.T) {
	got := Generate("john.doe")

	if got[0] != "john.doe" {
		t.Errorf("first variation = %q, want %q", got[0], "john.doe")
	}
	for _, want := range []string{"johndoe", "john_doe", "john-doe"} {
		if !contains(got, want) {
			t.Errorf("Generate(%q) missing %q, got %v", "john.doe", want, got)
		}
	}
}

func TestGenerateCap(t *testing.T) {
	for _, query := range []string{"a", "john doe", "john.doe smith", "a b c d e"} {
		if got := Generate(query); len(got) > MaxVariations {
			t.Errorf("Generate(%q) returned %d variations, cap is %d", query, len(got), MaxVariations)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate("John Doe")
	for range 10 {
		if diff := cmp.Diff(first, Generate("John Doe")); diff != "" {
			t.Fatalf("Generate is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	for _, query := range []string{"john doe", "the the", "real.real"} {
		got := Generate(query)
		seen := make(map[string]bool)
		for _, v := range got {
			if seen[v] {
				t.Errorf("Generate(%q) returned duplicate %q", query, v)
			}
			seen[v] = true
		}
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
