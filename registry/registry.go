// Package registry provides the default command table for terminals: a
// name-sorted list of commands with prefix lookup, safe for concurrent use.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/terminal"
)

var (
	ErrEmptyName = errors.New("command name is empty")
	ErrDuplicate = errors.New("command already registered")
)

// FormatFunc turns a raw command line into the log line shown for it.
type FormatFunc func(raw string, kind message.Type) (message.Message, bool)

// Registry is a terminal.Registry backed by a sorted slice.
type Registry[T any] struct {
	mu     sync.RWMutex
	cmds   []*terminal.Command[T]
	format FormatFunc
}

// New returns a registry holding cmds. It panics on an invalid or duplicate
// command, which is a programming error.
func New[T any](cmds ...terminal.Command[T]) *Registry[T] {
	r := &Registry[T]{}
	for _, c := range cmds {
		if err := r.Add(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Add registers cmd. Command names may not contain whitespace.
func (r *Registry[T]) Add(cmd terminal.Command[T]) error {
	if cmd.Name == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(cmd.Name, " \t\"") {
		return fmt.Errorf("invalid command name %q", cmd.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.search(cmd.Name)
	if i < len(r.cmds) && r.cmds[i].Name == cmd.Name {
		return fmt.Errorf("%w: %s", ErrDuplicate, cmd.Name)
	}
	c := cmd
	r.cmds = append(r.cmds, nil)
	copy(r.cmds[i+1:], r.cmds[i:])
	r.cmds[i] = &c
	return nil
}

// Remove unregisters the named command.
func (r *Registry[T]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.search(name)
	if i >= len(r.cmds) || r.cmds[i].Name != name {
		return false
	}
	r.cmds = append(r.cmds[:i], r.cmds[i+1:]...)
	return true
}

// Lookup finds a command by exact name.
func (r *Registry[T]) Lookup(name string) (*terminal.Command[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.search(name)
	if i < len(r.cmds) && r.cmds[i].Name == name {
		return r.cmds[i], true
	}
	return nil, false
}

func (r *Registry[T]) search(name string) int {
	return sort.Search(len(r.cmds), func(i int) bool { return r.cmds[i].Name >= name })
}

func (r *Registry[T]) FindCommandsByPrefix(prefix string) []*terminal.Command[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*terminal.Command[T]
	for i := r.search(prefix); i < len(r.cmds) && strings.HasPrefix(r.cmds[i].Name, prefix); i++ {
		out = append(out, r.cmds[i])
	}
	return out
}

func (r *Registry[T]) FindCommandsByPrefixBytes(prefix []byte) []*terminal.Command[T] {
	return r.FindCommandsByPrefix(string(prefix))
}

// ListCommands returns every command sorted by name.
func (r *Registry[T]) ListCommands() []*terminal.Command[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*terminal.Command[T](nil), r.cmds...)
}

// SetFormatter replaces the default line formatting. A nil fn restores it.
func (r *Registry[T]) SetFormatter(fn FormatFunc) {
	r.mu.Lock()
	r.format = fn
	r.mu.Unlock()
}

func (r *Registry[T]) Format(raw string, kind message.Type) (message.Message, bool) {
	r.mu.RLock()
	fn := r.format
	r.mu.RUnlock()
	if fn != nil {
		return fn(raw, kind)
	}
	return DefaultFormat(raw, kind)
}

// DefaultFormat echoes user input as "> line" and history expansions as
// "~> line", both fully colored; errors are logged verbatim at error level.
func DefaultFormat(raw string, kind message.Type) (message.Message, bool) {
	switch kind {
	case message.UserInput:
		text := "> " + raw
		return message.New(message.Info, text, 0, len(text), message.OriginUserInput), true
	case message.HistoryCompletion:
		text := "~> " + raw
		return message.New(message.Info, text, 0, len(text), message.OriginHistoryCompletion), true
	case message.ErrorInput:
		return message.New(message.Error, raw, 0, len(raw), message.OriginError), true
	}
	return message.Message{}, false
}

var _ terminal.Registry[struct{}] = (*Registry[struct{}])(nil)
