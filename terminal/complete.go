package terminal

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/internal/tokenize"
)

// tokenAtCursor describes the token being completed.
type tokenAtCursor struct {
	start   int // first byte of the raw token, quotes included
	end     int // end of the raw token in the whole line
	partial string
	quoted  bool
	index   int // 0 for the command name
	words   []string
}

func analyzeLine(line []byte, cursor int) tokenAtCursor {
	before := string(line[:cursor])
	spans := tokenize.Spans(before)
	words := make([]string, 0, len(spans)+1)
	for _, sp := range spans {
		words = append(words, sp.Text)
	}

	fresh := len(spans) == 0
	if !fresh {
		last := spans[len(spans)-1]
		fresh = last.Closed && last.End < cursor
	}
	if fresh {
		return tokenAtCursor{
			start: cursor,
			end:   cursor,
			index: len(spans),
			words: append(words, ""),
		}
	}

	last := spans[len(spans)-1]
	tok := tokenAtCursor{
		start:   last.Start,
		end:     cursor,
		partial: last.Text,
		quoted:  last.Quoted,
		index:   len(spans) - 1,
		words:   words,
	}
	// The token may go on past the cursor.
	for _, sp := range tokenize.Spans(string(line)) {
		if sp.Start == last.Start {
			tok.end = sp.End
			break
		}
	}
	return tok
}

// refreshCandidates recomputes the autocomplete candidates for the current
// input. It only depends on the buffer and the cursor.
func (t *Terminal[T]) refreshCandidates() {
	t.cmdCandidates = t.cmdCandidates[:0]
	t.candidates = t.candidates[:0]

	tok := analyzeLine(t.buf.Bytes(), t.buf.Cursor())
	if tok.index == 0 {
		var cmds []*Command[T]
		if tok.partial == "" {
			cmds = t.registry.ListCommands()
		} else {
			cmds = t.registry.FindCommandsByPrefixBytes([]byte(tok.partial))
		}
		for _, c := range cmds {
			t.cmdCandidates = append(t.cmdCandidates, c)
			t.candidates = append(t.candidates, c.Name)
		}
		return
	}

	cmd := t.findCommand(tok.words[0])
	if cmd == nil || cmd.Complete == nil {
		return
	}
	arg := &Argument[T]{Value: t.value, Term: t, CommandLine: tok.words}
	t.candidates = append(t.candidates, cmd.Complete(arg)...)
}

func (t *Terminal[T]) findCommand(name string) *Command[T] {
	if name == "" {
		return nil
	}
	for _, c := range t.registry.FindCommandsByPrefix(name) {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// complete handles Tab: a unique candidate replaces the token under the
// cursor, several candidates contribute their longest common prefix.
func (t *Terminal[T]) complete() {
	t.refreshCandidates()
	tok := analyzeLine(t.buf.Bytes(), t.buf.Cursor())

	switch len(t.candidates) {
	case 0:
		return
	case 1:
		t.logger.Debug("complete", zap.String("partial", tok.partial), zap.String("candidate", t.candidates[0]))
		t.replaceToken(tok, t.candidates[0], true)
	default:
		prefix := commonPrefix(t.candidates)
		if len(prefix) <= len(tok.partial) || !strings.HasPrefix(prefix, tok.partial) {
			return
		}
		t.logger.Debug("complete prefix", zap.String("partial", tok.partial), zap.String("prefix", prefix), zap.Int("candidates", len(t.candidates)))
		t.replaceToken(tok, prefix, false)
	}
	t.prevLen = t.buf.Len()
	t.refreshCandidates()
}

// replaceToken swaps the token under the cursor for text. A finished token
// gets its closing quote and a trailing space.
func (t *Terminal[T]) replaceToken(tok tokenAtCursor, text string, finished bool) {
	quote := tok.quoted || strings.ContainsAny(text, " \t")
	var b strings.Builder
	if quote {
		b.WriteByte('"')
	}
	b.WriteString(text)
	if finished && quote {
		b.WriteByte('"')
	}
	line := t.buf.Bytes()
	spaceFollows := tok.end < len(line) && isBlank(line[tok.end])
	if finished && !spaceFollows {
		b.WriteByte(' ')
	}

	n := t.buf.Replace(tok.start, tok.end, b.String())
	cursor := tok.start + n
	if finished && spaceFollows {
		cursor++
	}
	t.buf.SetCursor(cursor)
}

func commonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}
		prefix = prefix[:n]
	}
	for prefix != "" && !utf8.ValidString(prefix) {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix
}
