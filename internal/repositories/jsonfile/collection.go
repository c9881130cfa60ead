// Package jsonfile implements the flat-file backing: one pretty-printed
// JSON array per entity collection, rewritten whole on every mutation.
// There is no concurrent-writer protection; the service assumes a
// single process and low write concurrency.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// collection reads and writes a whole JSON array of T at a fixed path.
type collection[T any] struct {
	path string
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{path: path}
}

// loadAll returns every record in the collection. A missing file means
// an empty collection; any other I/O failure propagates.
func (c *collection[T]) loadAll() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return items, nil
}

// saveAll overwrites the collection file. The write goes to a temporary
// file first and is renamed into place, so a failed write never
// corrupts the previous contents.
func (c *collection[T]) saveAll(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, c.path)
}

// newRecordID generates a file-local id: the current epoch millis as a
// string, bumped until it does not collide with an id already in use.
// Opaque and unique enough for a single process, not meant to be sorted.
func newRecordID(taken func(id string) bool) string {
	n := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if !taken(id) {
			return id
		}
		n++
	}
}
