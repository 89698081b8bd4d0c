package terminal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/internal/histref"
	"github.com/baaaaaaaka/cmdterm/internal/tokenize"
	"github.com/baaaaaaaka/cmdterm/message"
)

// handleInput is the callback handed to the backend's input field.
func (t *Terminal[T]) handleInput(data *InputCallbackData) {
	switch data.Event {
	case InputEdit:
		t.recalling = false
		t.prevLen = t.buf.Len()
		t.refreshCandidates()
	case InputCompletion:
		t.complete()
	case InputHistory:
		t.navigateHistory(data.Direction)
	case InputAlways:
		t.hasFocus = true
		if t.buf.Len() != t.prevLen {
			t.prevLen = t.buf.Len()
			t.refreshCandidates()
		}
	}
}

// historyMatches compares entries and the typed prefix without their leading
// blanks.
func (t *Terminal[T]) historyMatches(i int) bool {
	return !t.prefixFilter || strings.HasPrefix(trimBlanks(t.history[i]), t.backupPrefix)
}

func trimBlanks(s string) string { return strings.TrimLeft(s, " \t") }

func (t *Terminal[T]) navigateHistory(dir HistoryDirection) {
	if len(t.history) == 0 {
		return
	}
	if !t.recalling {
		t.recalling = true
		t.recallIdx = len(t.history)
		t.backup = t.buf.String()
		t.backupPrefix = trimBlanks(t.backup)
	}

	switch dir {
	case HistoryUp:
		for i := t.recallIdx - 1; i >= 0; i-- {
			if t.historyMatches(i) {
				t.recallIdx = i
				t.buf.Set(t.history[i])
				break
			}
		}
	case HistoryDown:
		for i := t.recallIdx + 1; i < len(t.history); i++ {
			if t.historyMatches(i) {
				t.recallIdx = i
				t.buf.Set(t.history[i])
				t.prevLen = t.buf.Len()
				t.refreshCandidates()
				return
			}
		}
		t.recalling = false
		t.buf.Set(t.backup)
	}
	t.prevLen = t.buf.Len()
	t.refreshCandidates()
}

// recallDepth is how many entries back the command line currently is, zero
// when not recalling.
func (t *Terminal[T]) recallDepth() int {
	if !t.recalling || t.recallIdx >= len(t.history) {
		return 0
	}
	return len(t.history) - t.recallIdx
}

// Submit runs the current command line as if the user had pressed Enter.
func (t *Terminal[T]) Submit() {
	t.submit()
	t.takeFocus = true
}

func (t *Terminal[T]) submit() {
	raw := t.buf.String()
	t.recalling = false

	line, modified := histref.Resolve(raw, t.history)
	if modified {
		t.logFormatted(line, message.HistoryCompletion)
	}
	words, ok := tokenize.Split(line, false)
	if !ok {
		t.logger.Debug("unterminated quote", zap.String("line", line))
		t.logFormatted(fmt.Sprintf("unterminated quote in %q", line), message.ErrorInput)
		return
	}
	if len(words) == 0 {
		t.buf.Clear()
		t.prevLen = 0
		t.refreshCandidates()
		return
	}

	cmd := t.findCommand(words[0])
	if cmd == nil {
		t.logger.Debug("unknown command", zap.String("command", words[0]))
		t.logFormatted(fmt.Sprintf("unknown command %q", words[0]), message.ErrorInput)
		return
	}

	t.logFormatted(raw, message.UserInput)
	stored := raw
	if t.historyResolved {
		stored = line
	}
	t.history = append(t.history, stored)
	if t.onSubmit != nil {
		t.onSubmit(stored)
	}
	t.buf.Clear()
	t.prevLen = 0

	t.logger.Debug("dispatch", zap.String("command", cmd.Name), zap.Int("args", len(words)-1))
	t.call(cmd, words)
	t.refreshCandidates()
}

func (t *Terminal[T]) call(cmd *Command[T], words []string) {
	if cmd.Call == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("command panicked", zap.String("command", cmd.Name), zap.Any("panic", r))
			t.logFormatted(fmt.Sprintf("command %s failed: %v", cmd.Name, r), message.ErrorInput)
		}
	}()
	cmd.Call(&Argument[T]{Value: t.value, Term: t, CommandLine: words})
}

func (t *Terminal[T]) logFormatted(raw string, kind message.Type) {
	m, ok := t.registry.Format(raw, kind)
	if !ok {
		return
	}
	m.Origin = message.OriginFor(kind)
	t.AddMessage(m)
}
