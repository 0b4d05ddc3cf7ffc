package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Sanitize strips markup from pasted argument text. Students frequently paste
// passages straight from web pages; sending raw tags to the model wastes
// tokens and skews extraction. Plain text passes through unchanged.
func Sanitize(input string) string {
	trimmed := strings.TrimSpace(input)
	if !looksLikeMarkup(trimmed) {
		return trimmed
	}

	doc, err := html.Parse(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}

	text := strings.TrimSpace(visibleText(doc))
	if text == "" {
		return trimmed
	}
	return text
}

// looksLikeMarkup is a cheap check for tag-like content
func looksLikeMarkup(s string) bool {
	open := strings.IndexByte(s, '<')
	if open == -1 {
		return false
	}
	close := strings.IndexByte(s[open:], '>')
	return close > 1
}

// visibleText extracts text nodes, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
