package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/moodlog/internal/constants"
)

// jsonFile is the on-disk layout of a JSONStore
type jsonFile struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// JSONStore keeps every item in a single JSON file. Each operation re-reads
// the file so writes made by other processes are observed, and every write
// replaces the file atomically.
type JSONStore struct {
	path   string
	mu     sync.Mutex
	loaded bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Keep existing data on re-init
	if _, err := os.Stat(s.path); err == nil {
		if _, err := s.read(); err != nil {
			return err
		}
		s.loaded = true
		return nil
	}

	if err := s.write(map[string]string{}); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if _, err := s.read(); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var file jsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if file.Items == nil {
		file.Items = make(map[string]string)
	}
	return file.Items, nil
}

func (s *JSONStore) write(items map[string]string) error {
	data, err := json.MarshalIndent(jsonFile{Version: 1, Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// mutate runs fn against the current items under the lock and persists the
// result when fn reports a change.
func (s *JSONStore) mutate(ctx context.Context, fn func(items map[string]string) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	items, err := s.read()
	if err != nil {
		return err
	}
	if !fn(items) {
		return nil
	}
	return s.write(items)
}

func (s *JSONStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", false, ErrNotLoaded
	}

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *JSONStore) SetItem(ctx context.Context, key, value string) error {
	return s.mutate(ctx, func(items map[string]string) bool {
		items[key] = value
		return true
	})
}

func (s *JSONStore) CompareAndSwap(ctx context.Context, key, old string, oldPresent bool, value string) (bool, error) {
	swapped := false
	err := s.mutate(ctx, func(items map[string]string) bool {
		current, ok := items[key]
		if ok != oldPresent || (ok && current != old) {
			return false
		}
		items[key] = value
		swapped = true
		return true
	})
	if err != nil {
		return false, err
	}
	return swapped, nil
}

func (s *JSONStore) RemoveItem(ctx context.Context, key string) error {
	return s.mutate(ctx, func(items map[string]string) bool {
		if _, ok := items[key]; !ok {
			return false
		}
		delete(items, key)
		return true
	})
}

func (s *JSONStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(items map[string]string) bool {
		for k := range items {
			delete(items, k)
		}
		return true
	})
}

func (s *JSONStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	items, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
