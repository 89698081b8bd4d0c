// Package tokenize splits command lines on whitespace with double-quote
// grouping.
package tokenize

import "strings"

// Span locates one token in the source line. Start and End are byte offsets
// covering the raw token including its quotes.
type Span struct {
	Start  int
	End    int
	Quoted bool // the token contains a quoted run
	Closed bool // false when the line ended inside a quote
	Text   string
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// Split returns the whitespace separated tokens of s. A run enclosed in '"'
// belongs to a single token and loses its quotes. When a quote is never
// closed Split fails, unless ignoreNonMatch is set: the open region then
// becomes the last token.
func Split(s string, ignoreNonMatch bool) ([]string, bool) {
	spans := Spans(s)
	out := make([]string, 0, len(spans))
	for _, sp := range spans {
		if !sp.Closed && !ignoreNonMatch {
			return nil, false
		}
		out = append(out, sp.Text)
	}
	return out, true
}

// Spans never fails: an unterminated quote yields a final span with Closed
// set to false.
func Spans(s string) []Span {
	var spans []Span
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return spans
		}
		sp := Span{Start: i, Closed: true}
		var buf strings.Builder
		inQuote := false
		for i < len(s) && (inQuote || !isSpace(s[i])) {
			if s[i] == '"' {
				inQuote = !inQuote
				sp.Quoted = true
			} else {
				buf.WriteByte(s[i])
			}
			i++
		}
		sp.End = i
		sp.Closed = !inQuote
		sp.Text = buf.String()
		spans = append(spans, sp)
	}
}

// Quote wraps tok in quotes when it would otherwise split into several
// tokens.
func Quote(tok string) string {
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return `"` + tok + `"`
	}
	return tok
}

// Join re-joins tokens with single spaces, quoting where needed.
func Join(toks []string) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = Quote(t)
	}
	return strings.Join(parts, " ")
}
