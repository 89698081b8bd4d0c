package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrVersion is returned for a config written by a newer cmdterm.
	ErrVersion = errors.New("unsupported config version")
	// ErrInvalid wraps the Validate error of a config that cannot be used.
	ErrInvalid = errors.New("invalid config")
)

const (
	configFile  = "config.json"
	historyFile = "history.jsonl"
)

// Store reads and writes the preferences file.
type Store struct {
	path  string
	guard *guard
}

func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(base, "cmdterm", configFile), nil
}

// NewStore opens the config at path, or at DefaultPath when path is empty.
// The directory is created.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{path: path, guard: newGuard(path)}, nil
}

func (s *Store) Path() string { return s.path }

// HistoryPath is where the command history lives next to the config file.
func (s *Store) HistoryPath() string {
	return filepath.Join(filepath.Dir(s.path), historyFile)
}

// Load returns the saved preferences. A missing file yields an empty
// current-version config.
func (s *Store) Load() (cfg Config, err error) {
	err = s.guard.read("config", func() error {
		cfg, err = s.read()
		return err
	})
	return cfg, err
}

func (s *Store) Save(cfg Config) error {
	return s.guard.write("config", func() error { return s.write(cfg) })
}

// Update applies fn to the saved preferences and writes the result. Nothing
// is written when fn fails.
func (s *Store) Update(fn func(*Config) error) error {
	return s.guard.write("config", func() error {
		cfg, err := s.read()
		if err != nil {
			return err
		}
		if err := fn(&cfg); err != nil {
			return err
		}
		return s.write(cfg)
	})
}

func checkVersion(cfg *Config) error {
	switch cfg.Version {
	case 0:
		cfg.Version = CurrentVersion
	case CurrentVersion:
	default:
		return fmt.Errorf("%w %d (this build reads %d)", ErrVersion, cfg.Version, CurrentVersion)
	}
	return nil
}

func (s *Store) read() (Config, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{Version: CurrentVersion}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if err := checkVersion(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, nil
}

func (s *Store) write(cfg Config) error {
	if err := checkVersion(&cfg); err != nil {
		return fmt.Errorf("refuse to write: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refuse to write: %w: %w", ErrInvalid, err)
	}
	err := writeFileReplace(s.path, 0o600, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
