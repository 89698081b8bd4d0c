// Package message holds the log line model shared by the terminal, its
// registry and the log sinks feeding it.
package message

import (
	"fmt"
	"strings"
)

// Severity orders log lines from Trace up to Critical. Values are usable as
// array indexes.
type Severity int

const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Critical
)

// NumSeverities is the number of real severities (Trace..Critical).
const NumSeverities = int(Critical) + 1

// LevelOff is only meaningful as a display filter: it hides every message that
// is not terminal-originated.
const LevelOff = Critical + 1

var severityNames = [...]string{"trace", "debug", "info", "warning", "error", "critical", "none"}

func (s Severity) String() string {
	if s < Trace || s > LevelOff {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// FilterNames lists the display filter choices in order, LevelOff last.
func FilterNames() []string {
	return append([]string(nil), severityNames[:]...)
}

// ParseSeverity accepts the names returned by String plus a few aliases.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "err", "error":
		return Error, nil
	case "critical", "crit":
		return Critical, nil
	case "off", "none":
		return LevelOff, nil
	}
	return Trace, fmt.Errorf("unknown severity %q", s)
}

// Type is what the terminal asks a registry to format.
type Type int

const (
	UserInput Type = iota
	ErrorInput
	HistoryCompletion
)

func (t Type) String() string {
	switch t {
	case UserInput:
		return "user_input"
	case ErrorInput:
		return "error"
	case HistoryCompletion:
		return "cmd_history_completion"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Origin records who produced a line.
type Origin int

const (
	// OriginOutput is host or command output; the only origin subject to the
	// severity filter.
	OriginOutput Origin = iota
	OriginUserInput
	OriginError
	OriginHistoryCompletion
	OriginTerminal
)

// OriginFor maps a formatting request onto the origin of the resulting line.
func OriginFor(t Type) Origin {
	switch t {
	case UserInput:
		return OriginUserInput
	case ErrorInput:
		return OriginError
	case HistoryCompletion:
		return OriginHistoryCompletion
	}
	return OriginTerminal
}

// Message is one log line. ColorBegin/ColorEnd delimit the colorized byte
// range of Text; equal bounds mean nothing is colorized.
type Message struct {
	Severity   Severity
	Text       string
	ColorBegin int
	ColorEnd   int
	Origin     Origin
}

// New builds a message with its color range clamped to 0 <= begin <= end <= len(text).
func New(sev Severity, text string, begin, end int, origin Origin) Message {
	m := Message{Severity: sev, Text: text, ColorBegin: begin, ColorEnd: end, Origin: origin}
	m.clampRange()
	return m
}

func (m *Message) clampRange() {
	n := len(m.Text)
	if m.ColorBegin < 0 {
		m.ColorBegin = 0
	}
	if m.ColorEnd > n {
		m.ColorEnd = n
	}
	if m.ColorBegin > m.ColorEnd {
		m.ColorBegin = m.ColorEnd
	}
}

// Normalized returns m with its color range clamped.
func (m Message) Normalized() Message {
	m.clampRange()
	return m
}

// IsTermMessage reports whether the line was produced by the terminal itself.
// Such lines bypass the severity filter.
func (m Message) IsTermMessage() bool {
	return m.Origin != OriginOutput
}

// Colorized reports whether a non-empty color range is set.
func (m Message) Colorized() bool {
	return m.ColorBegin < m.ColorEnd
}

// Split cuts Text into the parts before, inside and after the color range.
func (m Message) Split() (before, colored, after string) {
	m.clampRange()
	return m.Text[:m.ColorBegin], m.Text[m.ColorBegin:m.ColorEnd], m.Text[m.ColorEnd:]
}

// Visible applies the display filter.
func (m Message) Visible(level Severity) bool {
	return m.IsTermMessage() || m.Severity >= level
}
