package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// File stores each key as <dir>/<key>.json. Writers replace the file through a
// temp file and rename, and a flock on <dir>/.lock serialises access across
// processes.
type File struct {
	dir  string
	mu   sync.Mutex
	lock *flock.Flock
}

// OpenFile prepares dir for use as a File storage.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create storage dir %s: %w", dir, err)
	}
	return &File{dir: dir, lock: flock.New(filepath.Join(dir, ".lock"))}, nil
}

// Dir returns the storage directory.
func (f *File) Dir() string { return f.dir }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Get(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("cannot acquire read lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()
	return f.read(key)
}

func (f *File) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withWriteLock(func() error {
		return f.write(key, value)
	})
}

func (f *File) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withWriteLock(func() error {
		return f.remove(key)
	})
}

func (f *File) Update(key string, fn UpdateFunc) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withWriteLock(func() error {
		cur, err := f.read(key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		if next == nil {
			return f.remove(key)
		}
		return f.write(key, next)
	})
}

// Close releases the lock file handle.
func (f *File) Close() error {
	return f.lock.Close()
}

func (f *File) withWriteLock(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("cannot acquire write lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()
	return fn()
}

func (f *File) read(key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot read %s: %w", f.path(key), err)
	}
	return b, nil
}

func (f *File) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := replaceFile(tmpPath, f.path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("cannot install %s: %w", f.path(key), err)
	}
	return nil
}

func (f *File) remove(key string) error {
	err := os.Remove(f.path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("cannot remove %s: %w", f.path(key), err)
}

// replaceFile moves src over dest, keeping a backup of dest until the move
// succeeds.
func replaceFile(src, dest string) error {
	backup := dest + ".bak"
	_ = cleanupBackup(backup)
	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(src, dest); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, dest)
		}
		return err
	}
	_ = cleanupBackup(backup)
	return nil
}
