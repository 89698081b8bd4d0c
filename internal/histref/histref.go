// Package histref expands history references in a command line:
//
//	!!   the whole previous command
//	!:N  the Nth token (0-based) of the previous command
//	!:*  every token of the previous command but the first
//
// A reference is only recognized at the start of the line or right after
// whitespace. Unresolvable references are kept verbatim. History is passed
// oldest first, so the previous command is its last entry.
package histref

import (
	"strings"

	"github.com/baaaaaaaka/cmdterm/internal/tokenize"
)

// Resolve expands the references of line against history, whose last entry
// is the previous command. The boolean reports whether anything was
// substituted.
//
// Adjacent references such as "!:0!:0" only expand the first one: the second
// does not start a token.
func Resolve(line string, history []string) (string, bool) {
	if len(history) == 0 || !strings.Contains(line, "!") {
		return line, false
	}
	last := history[len(history)-1]
	var toks []string
	tokenized := false
	tokens := func() []string {
		if !tokenized {
			toks, _ = tokenize.Split(last, true)
			tokenized = true
		}
		return toks
	}

	var out strings.Builder
	modified := false
	i := 0
	for i < len(line) {
		if line[i] != '!' || (i > 0 && !isSpace(line[i-1])) {
			out.WriteByte(line[i])
			i++
			continue
		}
		repl, n, ok := reference(line[i:], last, tokens)
		if !ok {
			out.WriteByte(line[i])
			i++
			continue
		}
		out.WriteString(repl)
		modified = true
		i += n
	}
	if !modified {
		return line, false
	}
	return out.String(), true
}

// reference parses one reference at the start of s and returns its
// expansion and the number of bytes it spans.
func reference(s, last string, tokens func() []string) (string, int, bool) {
	if strings.HasPrefix(s, "!!") {
		return last, 2, true
	}
	if !strings.HasPrefix(s, "!:") || len(s) < 3 {
		return "", 0, false
	}
	if s[2] == '*' {
		toks := tokens()
		if len(toks) < 2 {
			return "", 0, false
		}
		return tokenize.Join(toks[1:]), 3, true
	}
	n, width := 0, 0
	for 2+width < len(s) && isDigit(s[2+width]) {
		// keeps n far from overflowing
		if n > 1<<20 {
			return "", 0, false
		}
		n = n*10 + int(s[2+width]-'0')
		width++
	}
	if width == 0 {
		return "", 0, false
	}
	toks := tokens()
	if n >= len(toks) {
		return "", 0, false
	}
	return tokenize.Quote(toks[n]), 2 + width, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
