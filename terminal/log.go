package terminal

import (
	"fmt"

	"github.com/baaaaaaaka/cmdterm/message"
)

// AddText logs s as an info line of the terminal itself.
func (t *Terminal[T]) AddText(s string) {
	t.AddTextRange(s, 0, 0)
}

// AddTextRange logs s and colors the bytes in [begin,end).
func (t *Terminal[T]) AddTextRange(s string, begin, end int) {
	t.AddMessage(message.New(message.Info, s, begin, end, message.OriginTerminal))
}

// AddTextFrom logs s and colors everything from begin on.
func (t *Terminal[T]) AddTextFrom(s string, begin int) {
	t.AddTextRange(s, begin, len(s))
}

// AddTextErr logs s as a warning line of the terminal itself.
func (t *Terminal[T]) AddTextErr(s string) {
	t.AddTextErrRange(s, 0, 0)
}

func (t *Terminal[T]) AddTextErrRange(s string, begin, end int) {
	t.AddMessage(message.New(message.Warn, s, begin, end, message.OriginTerminal))
}

func (t *Terminal[T]) AddTextErrFrom(s string, begin int) {
	t.AddTextErrRange(s, begin, len(s))
}

// AddFormatted is AddText with fmt.Sprintf formatting.
func (t *Terminal[T]) AddFormatted(format string, args ...any) {
	t.AddText(fmt.Sprintf(format, args...))
}

// AddFormattedErr is AddTextErr with fmt.Sprintf formatting.
func (t *Terminal[T]) AddFormattedErr(format string, args ...any) {
	t.AddTextErr(fmt.Sprintf(format, args...))
}

// AddMessage appends m to the log, dropping the oldest lines past
// MaxMessages.
func (t *Terminal[T]) AddMessage(m message.Message) {
	t.logs = append(t.logs, m.Normalized())
	t.appended++
	if t.maxMessages > 0 && len(t.logs) > t.maxMessages {
		drop := len(t.logs) - t.maxMessages
		n := copy(t.logs, t.logs[drop:])
		clear(t.logs[n:])
		t.logs = t.logs[:n]
	}
}

// Clear empties the log.
func (t *Terminal[T]) Clear() {
	clear(t.logs)
	t.logs = t.logs[:0]
	t.appended = 0
	t.shownUpTo = 0
	t.selectorWidth = 0
}

// Messages returns the whole log, oldest first. The slice must not be
// modified and is only valid until the log changes.
func (t *Terminal[T]) Messages() []message.Message { return t.logs }

// Visible returns the messages passing the current level filter.
func (t *Terminal[T]) Visible() []message.Message {
	out := make([]message.Message, 0, len(t.logs))
	for _, m := range t.logs {
		if m.Visible(t.level) {
			out = append(out, m)
		}
	}
	return out
}
