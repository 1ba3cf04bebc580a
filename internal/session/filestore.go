package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Ensure FileStore satisfies the Store interface at compile time.
var _ Store = (*FileStore)(nil)

// FileStore persists the session as a small JSON file so a login survives
// client restarts, mirroring the fixed token/is_admin keys the browser build
// kept in local storage. Writes go through a temp file and rename so a crash
// can never leave a token on disk without its role flag.
type FileStore struct {
	path  string
	cur   Session
	epoch uint64
}

// NewFileStore loads any persisted session from path. A missing or corrupt
// file reads as logged out; corrupt files are discarded rather than trusted.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || !s.Authenticated() {
		_ = os.Remove(path)
		return fs, nil
	}
	fs.cur = s
	return fs, nil
}

// Current returns the in-memory snapshot.
func (f *FileStore) Current() Session {
	return f.cur
}

// Set atomically replaces the session, in memory and on disk.
func (f *FileStore) Set(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	f.cur = s
	f.epoch++
	return nil
}

// Clear removes the session, in memory and on disk. Calling it against an
// already-cleared store leaves the same observable state.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	f.cur = Session{}
	f.epoch++
	return nil
}

// Epoch returns the write counter.
func (f *FileStore) Epoch() uint64 {
	return f.epoch
}
