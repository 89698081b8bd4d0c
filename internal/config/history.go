package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HistoryStore keeps submitted command lines in a JSON-lines file, oldest
// first, trimmed to a maximum number of entries.
type HistoryStore struct {
	path  string
	limit int
	guard *guard
	now   func() time.Time
}

// NewHistoryStore opens the history at path. A limit of zero or less keeps
// DefaultHistoryLimit entries.
func NewHistoryStore(path string, limit int) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{
		path:  path,
		limit: limit,
		guard: newGuard(path),
		now:   time.Now,
	}, nil
}

func (s *HistoryStore) Path() string { return s.path }

// Load returns the newest entries, oldest first. Lines that do not parse are
// skipped.
func (s *HistoryStore) Load() (entries []HistoryEntry, err error) {
	err = s.guard.read("history", func() error {
		entries, err = s.readEntries()
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.trim(entries), nil
}

// Lines returns the text of Load's entries.
func (s *HistoryStore) Lines() ([]string, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out, nil
}

// Append records text. The file is rewritten once it holds twice the limit.
func (s *HistoryStore) Append(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.guard.write("history", func() error { return s.append(text) })
}

func (s *HistoryStore) append(text string) error {
	entry := HistoryEntry{Time: s.now().Unix(), Text: text}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}

	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	if len(entries) >= 2*s.limit {
		return s.writeEntries(s.trim(entries))
	}
	return nil
}

// Clear removes every entry.
func (s *HistoryStore) Clear() error {
	return s.guard.write("history", func() error { return s.writeEntries(nil) })
}

func (s *HistoryStore) trim(entries []HistoryEntry) []HistoryEntry {
	if len(entries) > s.limit {
		return entries[len(entries)-s.limit:]
	}
	return entries
}

func (s *HistoryStore) readEntries() ([]HistoryEntry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var entries []HistoryEntry
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e HistoryEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil || e.Text == "" {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) writeEntries(entries []HistoryEntry) error {
	err := writeFileReplace(s.path, 0o600, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
