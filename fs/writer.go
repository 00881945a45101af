// Package fs commits output files to a directory.
package fs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// OutputName returns the file name for a page's output: <type>-<year><ext>.
func OutputName(typ string, year int, ext string) string {
	return typ + "-" + strconv.Itoa(year) + ext
}

// WriteFunc renders a file. It reports false when there is nothing to keep.
type WriteFunc func(w io.Writer) (bool, error)

// Dir writes files into one output directory.
// Each file is rendered in memory and renamed into place, so readers never
// observe a partial file.
type Dir struct {
	path string
}

// NewDir returns a Dir for path. The directory is created on first write.
func NewDir(path string) *Dir {
	if path == "" {
		path = "."
	}
	return &Dir{path: path}
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// WriteFile renders name with fn and commits it. When fn reports false, no
// file is created and an existing file is left untouched.
func (d *Dir) WriteFile(name string, fn WriteFunc) (bool, error) {
	var buf bytes.Buffer
	ok, err := fn(&buf)
	if err != nil {
		return false, fmt.Errorf("render %s: %w", name, err)
	}
	if !ok {
		return false, nil
	}

	if err := os.MkdirAll(d.path, 0755); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return false, err
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(d.path, name)); err != nil {
		return false, err
	}
	return true, nil
}
