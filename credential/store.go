// Package credential persists the single API key used to authorize scheduler
// requests, and resolves which key applies to an invocation.
package credential

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/cronstorm/errors"
)

// File permissions for the credential file and its directory
const (
	FilePermissions = 0600
	DirPermissions  = 0700
)

// Store holds at most one API key. Get reports ok=false when nothing is stored.
type Store interface {
	Get() (key string, ok bool, err error)
	Set(key string) error
}

// fileContents is the on-disk shape of the credential file
type fileContents struct {
	APIKey string `toml:"api_key"`
}

// FileStore keeps the key in a TOML file readable only by the owner
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Get reads the stored key. A missing file or empty key is not an error.
func (s *FileStore) Get() (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read credential file %s", s.Path)
	}

	var contents fileContents
	if err := toml.Unmarshal(data, &contents); err != nil {
		return "", false, errors.Wrapf(err, "failed to parse credential file %s", s.Path)
	}

	key := strings.TrimSpace(contents.APIKey)
	return key, key != "", nil
}

// Set replaces the stored key. The file is written to a temp file and renamed
// into place so a crash never leaves a truncated credential.
func (s *FileStore) Set(key string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), DirPermissions); err != nil {
		return errors.Wrap(err, "failed to create credential directory")
	}

	data, err := toml.Marshal(fileContents{APIKey: key})
	if err != nil {
		return errors.Wrap(err, "failed to marshal credential")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".credentials-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp credential file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write credential")
	}
	if err := tmp.Chmod(FilePermissions); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to set credential permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp credential file")
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return errors.Wrap(err, "failed to replace credential file")
	}
	return nil
}

// MemoryStore keeps the key in process memory
type MemoryStore struct {
	mu  sync.Mutex
	key string
}

// NewMemoryStore returns a store preloaded with key ("" means empty)
func NewMemoryStore(key string) *MemoryStore {
	return &MemoryStore{key: key}
}

func (s *MemoryStore) Get() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.key != "", nil
}

func (s *MemoryStore) Set(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	return nil
}
