// Package filesystem holds the afero backend behind every file liveurl keeps:
// the config file, logs, signature scripts and the on-disk caches.
package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/metafates/gache"
	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// Swap installs fs as the backend and returns a func restoring the previous one.
func Swap(fs afero.Fs) (restore func()) {
	previous := backend
	backend = afero.Afero{Fs: fs}
	return func() {
		backend = previous
	}
}

// InMemory swaps in an empty in-memory backend.
func InMemory() (restore func()) {
	return Swap(afero.NewMemMapFs())
}

// WriteFile writes data to path, creating the missing parent directories first.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := backend.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return backend.WriteFile(path, data, perm)
}

// Usage counts the regular files under root and their total size.
// root may be a single file. A missing root is empty.
func Usage(root string) (files int, size int64, err error) {
	err = backend.Walk(root, func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Mode().IsRegular() {
			files++
			size += info.Size()
		}
		return nil
	})

	if errors.Is(err, fs.ErrNotExist) {
		return 0, 0, nil
	}
	return files, size, err
}

// Gache returns a gache.FileSystem writing through the active backend.
func Gache() gache.FileSystem {
	return gacheFS{}
}

type gacheFS struct{}

func (gacheFS) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return backend.OpenFile(name, flag, perm)
}

func (gacheFS) MkdirAll(path string, perm os.FileMode) error {
	return backend.MkdirAll(path, perm)
}
