package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultSessionDir = "~/.local/state/wtd/session"

// File keeps each slot in its own file under a per-session directory.
type File struct {
	dir string
}

var _ Storage = (*File)(nil)

// NewFile creates a file-backed store rooted at <dir>/<sessionID>.
// The directory is created lazily on the first write.
func NewFile(dir, sessionID string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		dir = defaultSessionDir
	}
	resolved, err := expandPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve session dir: %w", err)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || sessionID == "." || sessionID == ".." {
		return nil, fmt.Errorf("invalid session id %q", sessionID)
	}
	return &File{dir: filepath.Join(resolved, sessionID)}, nil
}

// Dir returns the directory holding this session's slots.
func (f *File) Dir() string {
	return f.dir
}

// Get implements Storage.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := f.slotPath(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot: %w", err)
	}
	return data, true, nil
}

// Set implements Storage.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	path, err := f.slotPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

// Remove implements Storage.
func (f *File) Remove(_ context.Context, key string) error {
	path, err := f.slotPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove slot: %w", err)
	}
	return nil
}

func (f *File) slotPath(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
