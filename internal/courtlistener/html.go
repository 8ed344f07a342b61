package courtlistener

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup from a provider field. Search responses wrap
// matched terms in <mark> tags and snippets may carry other inline tags.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var buf strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.TextToken:
			buf.Write(tokenizer.Text())
		}
	}
}
