// Package htmlutil provides HTML extraction helpers for profile pages.
package htmlutil

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

// Title extracts the title from HTML content.
func Title(htmlContent string) string {
	// Try <title> tag
	if matches := titlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	// Try og:title meta tag
	if matches := ogTitlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	// Try h1 tag
	if matches := firstH1Pattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	return ""
}

// Description extracts a profile description from meta tags, preferring
// Open Graph over the generic description tag.
func Description(htmlContent string) string {
	if matches := ogDescPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	if matches := descPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	return ""
}

// StructuredDescription extracts a description or about field from embedded
// JSON-LD blocks. Returns "" when no structured data is present.
func StructuredDescription(htmlContent string) string {
	for _, m := range jsonLDPattern.FindAllStringSubmatch(htmlContent, -1) {
		if len(m) < 2 {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(m[1]), &doc); err != nil {
			continue
		}
		if desc := structuredField(doc, 0); desc != "" {
			return strings.TrimSpace(desc)
		}
	}
	return ""
}

// structuredField walks a decoded JSON-LD document looking for a description
// or about string. Depth is bounded to avoid pathological documents.
func structuredField(doc any, depth int) string {
	if depth > 3 {
		return ""
	}
	switch v := doc.(type) {
	case map[string]any:
		for _, key := range []string{"description", "about"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		if graph, ok := v["@graph"]; ok {
			return structuredField(graph, depth+1)
		}
	case []any:
		for _, item := range v {
			if s := structuredField(item, depth+1); s != "" {
				return s
			}
		}
	}
	return ""
}

// ImageURL extracts a representative image from og:image or twitter:image
// meta tags.
func ImageURL(htmlContent string) string {
	if matches := ogImagePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	if matches := twitterImagePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	return ""
}

// NoIndex reports whether the page carries a robots noindex directive.
func NoIndex(htmlContent string) bool {
	return noIndexPattern.MatchString(htmlContent)
}

// Pre-compiled patterns for extraction.
var (
	titlePattern        = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitlePattern      = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	firstH1Pattern      = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	descPattern         = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescPattern       = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	ogImagePattern      = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	twitterImagePattern = regexp.MustCompile(`(?i)<meta[^>]+name=["']twitter:image["'][^>]+content=["']([^"']+)["']`)
	noIndexPattern      = regexp.MustCompile(`(?i)<meta[^>]+name=["']robots["'][^>]+content=["'][^"']*noindex[^"']*["']`)
	jsonLDPattern       = regexp.MustCompile(`(?is)<script[^>]+type=["']application/ld\+json["'][^>]*>(.*?)</script>`)
)
