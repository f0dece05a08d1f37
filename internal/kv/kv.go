// Package kv provides the small key-value storage layer behind scout's
// persisted state. Backends store opaque byte values under short keys.
package kv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys outside [A-Za-z0-9._-].
	ErrInvalidKey = errors.New("invalid key")
)

// Storage is the minimal get/set/remove contract.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// UpdateFunc receives the current value (nil when absent) and returns the
// value to store. Returning a nil value removes the key.
type UpdateFunc func(current []byte) ([]byte, error)

// Updater is implemented by storages that can run a read-modify-write
// atomically with respect to other writers.
type Updater interface {
	Update(key string, fn UpdateFunc) error
}

// Backend is a Storage that supports atomic updates and owns resources.
type Backend interface {
	Storage
	Updater
	io.Closer
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey checks that key is usable by every backend (it becomes a file
// name for File).
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Open creates the named backend at path. path is ignored for memory.
func Open(backend, path string, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBadger:
		return OpenBadger(path, false, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q (want memory, file, sqlite or badger)", backend)
	}
}
