package traversal

import "path/filepath"

// ParallelState extends State with the path that mirrors the entry under
// a different root.
type ParallelState struct {
	*State
	// Path is the mirrored path: the target root joined with History.
	Path string
	// SourcePath is the entry's path in the tree being walked.
	SourcePath string
}

// ParallelHandler receives entries along with their mirrored paths.
type ParallelHandler interface {
	VisitParallel(s *ParallelState) bool
}

// ParallelExitHandler is optionally implemented by a ParallelHandler that
// wants a callback once an entry, and its children, are finished.
type ParallelExitHandler interface {
	ExitParallel(s *ParallelState) bool
}

// ParallelErrorHandler is optionally implemented by a ParallelHandler to
// hear about subdirectories that could not be opened.
type ParallelErrorHandler interface {
	OpenFailedParallel(s *ParallelState, err error) bool
}

// Parallel is a Handler that maps every entry onto a second root.
type Parallel struct {
	root    string
	handler ParallelHandler
}

var (
	_ Handler      = (*Parallel)(nil)
	_ ErrorHandler = (*Parallel)(nil)
)

// NewParallel returns a Handler mirroring entries under root.
func NewParallel(root string, h ParallelHandler) *Parallel {
	return &Parallel{root: root, handler: h}
}

// Root returns the mirror root.
func (p *Parallel) Root() string {
	return p.root
}

func (p *Parallel) state(s *State) *ParallelState {
	parts := make([]string, 0, len(s.History)+1)
	parts = append(parts, p.root)
	parts = append(parts, s.History...)
	return &ParallelState{
		State:      s,
		Path:       filepath.Join(parts...),
		SourcePath: filepath.Join(s.Directory.Path(), s.Entry.Name()),
	}
}

func (p *Parallel) Visit(s *State) bool {
	return p.handler.VisitParallel(p.state(s))
}

func (p *Parallel) Exit(s *State) bool {
	eh, ok := p.handler.(ParallelExitHandler)
	if !ok {
		return true
	}
	return eh.ExitParallel(p.state(s))
}

func (p *Parallel) OpenFailed(s *State, err error) bool {
	eh, ok := p.handler.(ParallelErrorHandler)
	if !ok {
		return true
	}
	return eh.OpenFailedParallel(p.state(s), err)
}
