// Package traversal walks a directory tree depth first and hands every
// entry to a Handler. Handlers halt the walk by returning false; a halt
// propagates through every enclosing directory so no sibling or ancestor
// entry is visited afterwards.
package traversal

import (
	"fmt"
	"io"
)

// Entry is a single directory entry.
type Entry interface {
	Name() string
	IsDir() bool
}

// Directory is an open directory. Next returns io.EOF once every entry has
// been returned and never yields "." or "..".
type Directory interface {
	Path() string
	Next() (Entry, error)
	Open(name string) (Directory, error)
	Close() error
}

// Options control how Walk recurses.
type Options struct {
	// Descend recurses into subdirectories.
	Descend bool
	// PostVisit calls Visit after a directory's children instead of before.
	PostVisit bool
}

// DefaultOptions returns recursive pre-order traversal.
func DefaultOptions() Options {
	return Options{Descend: true}
}

// State describes the entry being visited. History holds the names from
// the walk root down to and including Entry; it is reused between calls,
// so handlers must copy it to keep it.
type State struct {
	Directory Directory
	Entry     Entry
	History   []string
	First     bool
	Last      bool
}

// Handler receives entries. Returning false halts the walk.
type Handler interface {
	Visit(s *State) bool
	Exit(s *State) bool
}

// ErrorHandler may be implemented by a Handler to hear about
// subdirectories that could not be opened. Without it such directories
// are skipped silently.
type ErrorHandler interface {
	OpenFailed(s *State, err error) bool
}

// HandlerFuncs adapts plain functions to Handler. Nil funcs continue.
type HandlerFuncs struct {
	VisitFunc func(s *State) bool
	ExitFunc  func(s *State) bool
}

func (h HandlerFuncs) Visit(s *State) bool {
	if h.VisitFunc == nil {
		return true
	}
	return h.VisitFunc(s)
}

func (h HandlerFuncs) Exit(s *State) bool {
	if h.ExitFunc == nil {
		return true
	}
	return h.ExitFunc(s)
}

// WalkPath opens path and walks it. Failing to open the root is an error.
func WalkPath(path string, opts Options, h Handler) (bool, error) {
	dir, err := OpenDir(path)
	if err != nil {
		return false, fmt.Errorf("open root %s: %w", path, err)
	}
	defer dir.Close()

	return Walk(dir, opts, h)
}

// Walk visits every entry below dir. It returns false when a handler
// halted the walk or when an error stopped it. The caller keeps ownership
// of dir; every subdirectory Walk opens is closed before it returns.
func Walk(dir Directory, opts Options, h Handler) (bool, error) {
	w := &walker{opts: opts, handler: h}
	return w.walk(dir)
}

type walker struct {
	opts    Options
	handler Handler
	history []string
}

func (w *walker) walk(dir Directory) (bool, error) {
	next, nextErr := dir.Next()
	first := true

	for {
		if nextErr == io.EOF {
			return true, nil
		}
		if nextErr != nil {
			return false, fmt.Errorf("read %s: %w", dir.Path(), nextErr)
		}

		entry := next
		next, nextErr = dir.Next()

		w.history = append(w.history, entry.Name())
		cont, err := w.visit(&State{
			Directory: dir,
			Entry:     entry,
			History:   w.history,
			First:     first,
			Last:      nextErr != nil,
		})
		w.history = w.history[:len(w.history)-1]

		if err != nil || !cont {
			return false, err
		}
		first = false
	}
}

func (w *walker) visit(s *State) (bool, error) {
	cont := true
	if !w.opts.PostVisit {
		cont = w.handler.Visit(s)
	}

	if cont && s.Entry.IsDir() && w.opts.Descend {
		var err error
		cont, err = w.descend(s)
		if err != nil {
			return false, err
		}
	}

	if cont && w.opts.PostVisit {
		cont = w.handler.Visit(s)
	}
	if cont {
		cont = w.handler.Exit(s)
	}
	return cont, nil
}

func (w *walker) descend(s *State) (bool, error) {
	sub, err := s.Directory.Open(s.Entry.Name())
	if err != nil {
		if eh, ok := w.handler.(ErrorHandler); ok {
			return eh.OpenFailed(s, err), nil
		}
		return true, nil
	}
	defer sub.Close()

	return w.walk(sub)
}
