package config

import (
	"fmt"
	"sync"

	"github.com/gofrs/flock"
)

// guard serializes access to one file inside the process and, through a
// lock file beside it, across processes. Readers in different processes
// share the file lock.
type guard struct {
	mu   sync.Mutex
	lock *flock.Flock
}

func newGuard(path string) *guard {
	return &guard{lock: flock.New(path + ".lock")}
}

func (g *guard) write(name string, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer func() { _ = g.lock.Unlock() }()
	return fn()
}

func (g *guard) read(name string, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.lock.RLock(); err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer func() { _ = g.lock.Unlock() }()
	return fn()
}
