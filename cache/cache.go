// Package cache keeps downloaded blobs on disk, one directory per namespace.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const ext = ".bin"

// Dir is a file cache rooted at a directory. Entries expire by file mtime.
type Dir struct {
	root string
}

func New(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Root() string {
	return d.root
}

// Path returns the cache file path for key within namespace
func (d *Dir) Path(namespace, key string) string {
	return filepath.Join(d.root, namespace, generateHash(key)+ext)
}

// generateHash generates an xxHash hash for the given string
func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// Write stores data under key, replacing any previous entry.
func (d *Dir) Write(namespace, key string, data []byte) error {
	if err := os.MkdirAll(filepath.Join(d.root, namespace), 0o755); err != nil {
		return err
	}

	path := d.Path(namespace, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Read returns the entry if it exists and is not older than maxAge
func (d *Dir) Read(namespace, key string, maxAge time.Duration) ([]byte, bool) {
	path := d.Path(namespace, key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Clear removes a single entry. A missing entry is not an error.
func (d *Dir) Clear(namespace, key string) error {
	err := os.Remove(d.Path(namespace, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ClearNamespace removes every entry in namespace
func (d *Dir) ClearNamespace(namespace string) error {
	return os.RemoveAll(filepath.Join(d.root, namespace))
}

// ClearAll empties the cache and reports how many entries were removed.
func (d *Dir) ClearAll() (int, error) {
	return d.sweep(func(fs.FileInfo) bool { return true })
}

// ClearOld removes entries older than maxAge and reports how many went.
func (d *Dir) ClearOld(maxAge time.Duration) (int, error) {
	return d.sweep(func(info fs.FileInfo) bool {
		return time.Since(info.ModTime()) > maxAge
	})
}

func (d *Dir) sweep(remove func(fs.FileInfo) bool) (int, error) {
	removed := 0
	err := filepath.Walk(d.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		// Only our own entries
		if !strings.HasSuffix(path, ext) {
			return nil
		}

		if remove(info) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})
	return removed, err
}
