package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newHistory(t *testing.T, limit int) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(filepath.Join(t.TempDir(), "state", "history.jsonl"), limit)
	if err != nil {
		t.Fatalf("NewHistoryStore: %v", err)
	}
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestHistoryStoreMissingFileIsEmpty(t *testing.T) {
	s := newHistory(t, 0)
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("Lines=%q want empty", lines)
	}
}

func TestHistoryStoreAppendAndLoad(t *testing.T) {
	s := newHistory(t, 0)
	for _, line := range []string{"echo one", "   ", "say \"two words\"", "echo <&>"} {
		if err := s.Append(line); err != nil {
			t.Fatalf("Append(%q): %v", line, err)
		}
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []HistoryEntry{
		{Time: 1700000000, Text: "echo one"},
		{Time: 1700000000, Text: "say \"two words\""},
		{Time: 1700000000, Text: "echo <&>"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if got := strings.Count(string(raw), "\n"); got != 3 {
		t.Fatalf("history file has %d lines want 3:\n%s", got, raw)
	}
}

func TestHistoryStoreSkipsBadLines(t *testing.T) {
	s := newHistory(t, 0)
	content := `{"ts":1,"text":"first"}
not json
{"ts":2}
{"ts":3,"text":"second"}
`
	if err := os.WriteFile(s.Path(), []byte(content), 0o600); err != nil {
		t.Fatalf("write history: %v", err)
	}
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, lines); diff != "" {
		t.Fatalf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryStoreTrimsToLimit(t *testing.T) {
	s := newHistory(t, 3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		if err := s.Append(line); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "d", "e"}, lines); diff != "" {
		t.Fatalf("Lines mismatch (-want +got):\n%s", diff)
	}

	// the sixth entry reaches twice the limit and compacts the file
	if err := s.Append("f"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if got := strings.Count(string(raw), "\n"); got != 3 {
		t.Fatalf("history file has %d lines want 3 after compaction", got)
	}
}

func TestHistoryStoreClear(t *testing.T) {
	s := newHistory(t, 0)
	if err := s.Append("x"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("Lines=%q after Clear", lines)
	}
}

func TestHistoryStoreConcurrentAppend(t *testing.T) {
	s := newHistory(t, 100)
	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := s.Append("line"); err != nil {
				t.Errorf("Append: %v", err)
			}
		}()
	}
	wg.Wait()
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != n {
		t.Fatalf("len(Lines)=%d want %d", len(lines), n)
	}
}
