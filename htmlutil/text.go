package htmlutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// VisibleText returns the first limit characters of visible text in the
// document, with runs of whitespace collapsed. Script, style, and head
// content is skipped. Malformed HTML is tolerated; the tokenizer recovers
// what it can.
func VisibleText(htmlContent string, limit int) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "template":
				return true
			}
		}
		if n.Type == html.TextNode {
			if fields := strings.Fields(n.Data); len(fields) > 0 {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(strings.Join(fields, " "))
			}
			if b.Len() >= limit {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)

	text := b.String()
	if len(text) > limit {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
