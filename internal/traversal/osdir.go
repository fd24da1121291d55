package traversal

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type osDir struct {
	path    string
	entries []fs.DirEntry
	pos     int
	closed  bool
}

// OpenDir opens a directory on the local filesystem. Entries are returned
// sorted by name.
func OpenDir(path string) (Directory, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	return &osDir{path: path, entries: entries}, nil
}

func (d *osDir) Path() string {
	return d.path
}

func (d *osDir) Next() (Entry, error) {
	if d.closed {
		return nil, fs.ErrClosed
	}
	for d.pos < len(d.entries) {
		e := d.entries[d.pos]
		d.pos++
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		return e, nil
	}
	return nil, io.EOF
}

func (d *osDir) Open(name string) (Directory, error) {
	if d.closed {
		return nil, fs.ErrClosed
	}
	return OpenDir(filepath.Join(d.path, name))
}

func (d *osDir) Close() error {
	d.closed = true
	d.entries = nil
	return nil
}
