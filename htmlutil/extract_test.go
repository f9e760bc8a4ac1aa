package htmlutil

import (
	"testing"
	"unicode/utf8"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag",
			html: `<html><head><title>John Doe (@johndoe)</title></head></html>`,
			want: "John Doe (@johndoe)",
		},
		{
			name: "og:title fallback",
			html: `<html><head><meta property="og:title" content="John Doe"></head></html>`,
			want: "John Doe",
		},
		{
			name: "h1 fallback",
			html: `<html><body><h1 class="name">John Doe</h1></body></html>`,
			want: "John Doe",
		},
		{
			name: "entities unescaped",
			html: `<title>John &amp; Jane</title>`,
			want: "John & Jane",
		},
		{
			name: "none",
			html: `<html><body><p>hello</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.html); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og wins over meta",
			html: `<meta property="og:description" content="from og"><meta name="description" content="from meta">`,
			want: "from og",
		},
		{
			name: "meta fallback",
			html: `<meta name="description" content="from meta">`,
			want: "from meta",
		},
		{
			name: "none",
			html: `<html></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.html); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructuredDescription(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "person description",
			html: `<script type="application/ld+json">{"@type":"Person","description":"Software engineer"}</script>`,
			want: "Software engineer",
		},
		{
			name: "about field",
			html: `<script type="application/ld+json">{"about":"Open source maintainer"}</script>`,
			want: "Open source maintainer",
		},
		{
			name: "graph wrapper",
			html: `<script type="application/ld+json">{"@graph":[{"@type":"WebSite"},{"@type":"Person","description":"in the graph"}]}</script>`,
			want: "in the graph",
		},
		{
			name: "top-level array",
			html: `<script type="application/ld+json">[{"description":"first entry"}]</script>`,
			want: "first entry",
		},
		{
			name: "invalid json skipped",
			html: `<script type="application/ld+json">{broken</script><script type="application/ld+json">{"description":"valid"}</script>`,
			want: "valid",
		},
		{
			name: "no structured data",
			html: `<script type="text/javascript">var x = {"description":"nope"};</script>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StructuredDescription(tt.html); got != tt.want {
				t.Errorf("StructuredDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:image",
			html: `<meta property="og:image" content="https://cdn.example.com/a.jpg">`,
			want: "https://cdn.example.com/a.jpg",
		},
		{
			name: "twitter:image fallback",
			html: `<meta name="twitter:image" content="https://cdn.example.com/b.jpg">`,
			want: "https://cdn.example.com/b.jpg",
		},
		{
			name: "none",
			html: `<html></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL(tt.html); got != tt.want {
				t.Errorf("ImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoIndex(t *testing.T) {
	tests := []struct {
		html string
		want bool
	}{
		{`<meta name="robots" content="noindex">`, true},
		{`<meta name="robots" content="noindex, nofollow">`, true},
		{`<meta name="robots" content="index, follow">`, false},
		{`<html></html>`, false},
	}

	for _, tt := range tests {
		if got := NoIndex(tt.html); got != tt.want {
			t.Errorf("NoIndex(%q) = %v, want %v", tt.html, got, tt.want)
		}
	}
}

func TestVisibleText(t *testing.T) {
	html := `<html><head><title>skip me</title><style>body{}</style></head>
<body><script>var skip = true;</script><h1>John   Doe</h1><p>Engineer in
London</p></body></html>`

	got := VisibleText(html, 1000)
	want := "John Doe Engineer in London"
	if got != want {
		t.Errorf("VisibleText() = %q, want %q", got, want)
	}
}

func TestVisibleTextLimit(t *testing.T) {
	html := `<body><p>aaaa bbbb cccc dddd</p></body>`
	got := VisibleText(html, 9)
	if len(got) > 9 {
		t.Errorf("VisibleText() returned %d bytes, limit 9", len(got))
	}
}

func TestVisibleTextLimitRuneBoundary(t *testing.T) {
	// "é" is two bytes; a limit of 7 lands between them.
	html := `<body><p>résumé writer</p></body>`
	got := VisibleText(html, 7)
	if !utf8.ValidString(got) {
		t.Fatalf("VisibleText() = %q, not valid UTF-8", got)
	}
	if got != "résum" {
		t.Errorf("VisibleText() = %q, want %q", got, "résum")
	}
}
