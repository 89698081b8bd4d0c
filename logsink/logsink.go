// Package logsink routes zap log records into terminal logs.
//
// Records may be written from any goroutine; they are queued and handed to
// the attached terminals by Drain, which must run on the UI thread.
package logsink

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/baaaaaaaka/cmdterm/message"
)

// TraceLevel is one step below zap's DebugLevel. Log at it with
// Logger.Log(logsink.TraceLevel, ...).
const TraceLevel = zapcore.DebugLevel - 1

const (
	defaultMaxPending = 4096
	timeLayout        = "15:04:05.000"
)

// Target receives the drained messages. *terminal.Terminal implements it.
type Target interface {
	AddMessage(m message.Message)
}

// Sink queues formatted records until they are drained.
type Sink struct {
	mu         sync.Mutex
	pending    []message.Message
	dropped    int
	maxPending int
	targets    []Target
}

// NewSink returns a sink buffering at most maxPending records between drains
// (a default when maxPending <= 0). The oldest records are dropped first.
func NewSink(maxPending int) *Sink {
	if maxPending <= 0 {
		maxPending = defaultMaxPending
	}
	return &Sink{maxPending: maxPending}
}

// Attach adds a terminal to the fan-out list.
func (s *Sink) Attach(t Target) {
	s.mu.Lock()
	s.targets = append(s.targets, t)
	s.mu.Unlock()
}

// Detach removes a terminal previously attached.
func (s *Sink) Detach(t Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.targets {
		if cur == t {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return
		}
	}
}

// Drain delivers the queued records to every attached terminal and returns
// how many were delivered.
func (s *Sink) Drain() int {
	s.mu.Lock()
	pending := s.pending
	dropped := s.dropped
	s.pending = nil
	s.dropped = 0
	targets := append([]Target(nil), s.targets...)
	s.mu.Unlock()

	if dropped > 0 {
		text := fmt.Sprintf("%d log records dropped", dropped)
		pending = append([]message.Message{message.New(message.Warn, text, 0, 0, message.OriginOutput)}, pending...)
	}
	for _, t := range targets {
		for _, m := range pending {
			t.AddMessage(m)
		}
	}
	return len(pending)
}

// Pending reports how many records wait for the next Drain.
func (s *Sink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Sink) push(m message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) >= s.maxPending {
		copy(s.pending, s.pending[1:])
		s.pending = s.pending[:len(s.pending)-1]
		s.dropped++
	}
	s.pending = append(s.pending, m)
}

// Core returns a zapcore.Core writing into the sink.
func (s *Sink) Core(enab zapcore.LevelEnabler) zapcore.Core {
	return &core{LevelEnabler: enab, sink: s}
}

type core struct {
	zapcore.LevelEnabler
	sink   *Sink
	fields []zapcore.Field
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	c.sink.push(Format(ent, append(append([]zapcore.Field(nil), c.fields...), fields...)))
	return nil
}

func (c *core) Sync() error { return nil }

// Severity maps a zap level onto a message severity.
func Severity(l zapcore.Level) message.Severity {
	switch {
	case l < zapcore.DebugLevel:
		return message.Trace
	case l == zapcore.DebugLevel:
		return message.Debug
	case l == zapcore.InfoLevel:
		return message.Info
	case l == zapcore.WarnLevel:
		return message.Warn
	case l == zapcore.ErrorLevel:
		return message.Error
	}
	return message.Critical
}

// Level is the inverse of Severity; message.LevelOff maps above FatalLevel.
func Level(s message.Severity) zapcore.Level {
	switch s {
	case message.Trace:
		return TraceLevel
	case message.Debug:
		return zapcore.DebugLevel
	case message.Info:
		return zapcore.InfoLevel
	case message.Warn:
		return zapcore.WarnLevel
	case message.Error:
		return zapcore.ErrorLevel
	case message.Critical:
		return zapcore.DPanicLevel
	}
	return zapcore.FatalLevel + 1
}

// Format renders a record as "[15:04:05.000] [level] logger: msg k=v ...",
// coloring the level name.
func Format(ent zapcore.Entry, fields []zapcore.Field) message.Message {
	sev := Severity(ent.Level)
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(ent.Time.Format(timeLayout))
	b.WriteString("] [")
	begin := b.Len()
	b.WriteString(sev.String())
	end := b.Len()
	b.WriteString("] ")
	if ent.LoggerName != "" {
		b.WriteString(ent.LoggerName)
		b.WriteString(": ")
	}
	b.WriteString(ent.Message)

	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, enc.Fields[k])
		}
	}
	return message.New(sev, b.String(), begin, end, message.OriginOutput)
}
