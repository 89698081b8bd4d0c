//go:build !windows

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

func setMode(f *os.File, perm os.FileMode) error { return f.Chmod(perm) }

// replaceFile renames tmp over path and syncs the directory so the rename
// survives a crash.
func replaceFile(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	dir, err := os.Open(filepath.Dir(path))
	if err != nil {
		return nil
	}
	_ = dir.Sync()
	_ = dir.Close()
	return nil
}
