package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/lox/blackout/internal/statistics"
)

type document struct {
	Roster  []string `yaml:"roster,omitempty"`
	History []Entry  `yaml:"history,omitempty"`
}

// FileStore keeps everything in one YAML document that is rewritten
// atomically on every change.
type FileStore struct {
	mu     sync.Mutex
	path   string
	doc    document
	logger *log.Logger
}

// OpenFile loads the document at path, starting empty if it does not exist
func OpenFile(path string, logger *log.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger.WithPrefix("store")}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("Starting new store", "path", path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	s.logger.Debug("Loaded store", "path", path, "entries", len(s.doc.History))
	return s, nil
}

func (s *FileStore) SaveRoster(_ context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Roster = append([]string(nil), names...)
	return s.flush()
}

func (s *FileStore) LoadRoster(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.doc.Roster) == 0 {
		return nil, ErrNoRoster
	}
	return append([]string(nil), s.doc.Roster...), nil
}

func (s *FileStore) AppendPenalties(_ context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.History = append(s.doc.History, entries...)
	return s.flush()
}

func (s *FileStore) Totals(context.Context) ([]statistics.Tally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return leaderboard(s.doc.History), nil
}

func (s *FileStore) Close() error { return nil }

// flush must be called with mu held
func (s *FileStore) flush() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}
	return writeAtomic(s.path, data, 0o644)
}

// writeAtomic writes to a temp file in the same directory and renames it into
// place, so readers see either the old document or the new one.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("store: chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: rename temp file: %w", err)
	}
	return nil
}
