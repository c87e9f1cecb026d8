// Package kv is the local key-value store behind every persisted record.
// Each key is one TOML document in the data directory, read whole and
// written whole.
package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// Store reads and writes whole records by key.
type Store interface {
	// Get decodes the record stored under key into dest. It reports false
	// when no record exists.
	Get(key string, dest any) (bool, error)
	// Put replaces the record stored under key.
	Put(key string, value any) error
}

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid key")

// Dir is a Store backed by a directory of TOML files.
type Dir struct {
	root string
}

var _ Store = (*Dir)(nil)

// Open prepares a directory-backed store rooted at dir, creating it when missing.
func Open(dir string) (*Dir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Dir{root: dir}, nil
}

// Get implements Store.
func (d *Dir) Get(key string, dest any) (bool, error) {
	path, err := d.path(key)
	if err != nil {
		return false, err
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := toml.Unmarshal(bytes, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put implements Store. The record is written to a temp file and renamed over
// the previous version so a crash never leaves a partial document behind.
func (d *Dir) Put(key string, value any) (err error) {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	bytes, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(d.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmp.Name()))
		}
	}()

	if _, err = tmp.Write(bytes); err != nil {
		return multierr.Combine(fmt.Errorf("write %s: %w", key, err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (d *Dir) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(d.root, key+".toml"), nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Memory is an in-process Store that round-trips values through the same
// TOML codec as Dir. It is used by tests and by callers that opt out of disk
// persistence.
type Memory struct {
	mu     sync.Mutex
	docs   map[string][]byte
	writes map[string]int
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string][]byte),
		writes: make(map[string]int),
	}
}

// Get implements Store.
func (m *Memory) Get(key string, dest any) (bool, error) {
	m.mu.Lock()
	doc, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := toml.Unmarshal(doc, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put implements Store.
func (m *Memory) Put(key string, value any) error {
	doc, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = doc
	m.writes[key]++
	return nil
}

// Writes reports how many times key has been written.
func (m *Memory) Writes(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}

// SetRaw stores an already-encoded document, bypassing the encoder.
func (m *Memory) SetRaw(key string, doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), doc...)
}
