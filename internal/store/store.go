// Package store owns the process-wide state graph and its persistence.
//
// Every operation runs as one transaction against the graph:
// Update locks the store, applies the mutation, and either persists the
// whole snapshot (commit) or reloads the last persisted snapshot
// (discard). A validation failure halfway through an operation
// therefore never leaks partial side effects such as an
// already-appended notification.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Store struct {
	mu    sync.Mutex
	path  string
	log   *zap.Logger
	state *State
}

// Open loads the snapshot at path, or starts with a fresh state when no
// snapshot exists yet.
func Open(path string, log *zap.Logger) (*Store, error) {
	s := &Store{path: path, log: log}
	state, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.state = state
	return s, nil
}

// Update runs fn inside the transaction boundary. When fn returns an
// error, every mutation it made is discarded by reloading the last
// committed snapshot; otherwise the whole graph is persisted.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		s.discard()
		return err
	}
	if err := s.save(); err != nil {
		s.discard()
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// View runs fn read-only. Nothing is persisted or discarded, so fn must
// not mutate the graph.
func (s *Store) View(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Reset wipes all state and resets every id counter to zero.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = NewState(time.Now().Unix())
	if err := s.save(); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	return nil
}

func (s *Store) discard() {
	state, err := s.load()
	if err != nil {
		// The snapshot on disk was readable at Open time; if it is gone
		// now there is nothing better than an empty graph.
		s.log.Error("reload snapshot after failed update", zap.Error(err))
		state = NewState(time.Now().Unix())
	}
	s.state = state
}

func (s *Store) load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewState(time.Now().Unix()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(raw) == 0 {
		return NewState(time.Now().Unix()), nil
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	state.rebuildIndex()
	return &state, nil
}

// save writes the snapshot atomically: marshal, write a sibling temp
// file, rename over the target.
func (s *Store) save() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
