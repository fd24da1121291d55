package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anselrognlie/cue-convert/internal/fileutil"
	"github.com/anselrognlie/cue-convert/internal/lineio"
	"github.com/anselrognlie/cue-convert/internal/lock"
	"github.com/anselrognlie/cue-convert/internal/logger"
	"github.com/anselrognlie/cue-convert/internal/traversal"
)

// ErrProtectedPath is returned when a purge would remove a protected tree.
var ErrProtectedPath = errors.New("refusing to purge protected path")

// PurgeOptions control Purge.
type PurgeOptions struct {
	// DryRun lists what would be removed without removing it.
	DryRun bool
	// Protect lists trees that must survive, typically the source root.
	// The purge root may not be one of them or contain one.
	Protect []string
	// LockFile, when set, is taken inside the target for the duration.
	LockFile string
	// Output receives one line per removed path.
	Output lineio.Writer
	Logger *logger.Logger
}

// PurgeResult counts what was, or would be, removed.
type PurgeResult struct {
	Files       int
	Directories int
	DryRun      bool
}

// Purge removes target and everything below it, children before parents.
func Purge(ctx context.Context, target string, opts PurgeOptions) (*PurgeResult, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	out := opts.Output
	if out == nil {
		out = lineio.Discard
	}

	root, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("purge target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("purge target %s is not a directory", target)
	}
	for _, p := range opts.Protect {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		if isWithin(root, abs) {
			return nil, fmt.Errorf("%w: %s contains %s", ErrProtectedPath, target, p)
		}
	}

	var tl *lock.TargetLock
	var lockPath string
	if opts.LockFile != "" && !opts.DryRun {
		tl = lock.ForTarget(root, opts.LockFile)
		lockPath = tl.Path()
	}

	result := &PurgeResult{DryRun: opts.DryRun}
	var removeErr error

	remove := func(path string, isDir bool) bool {
		if err := out.WriteLine(path); err != nil {
			removeErr = err
			return false
		}
		if !opts.DryRun {
			if err := fileutil.Remove(path); err != nil {
				removeErr = fmt.Errorf("failed to remove %s: %w", path, err)
				return false
			}
		}
		if isDir {
			result.Directories++
		} else {
			result.Files++
		}
		return true
	}

	handler := traversal.HandlerFuncs{
		VisitFunc: func(s *traversal.State) bool {
			if err := ctx.Err(); err != nil {
				removeErr = fmt.Errorf("purge interrupted: %w", err)
				return false
			}
			path := filepath.Join(s.Directory.Path(), s.Entry.Name())
			if path == lockPath {
				return true
			}
			return remove(path, s.Entry.IsDir())
		},
	}

	purge := func() error {
		if _, err := traversal.WalkPath(root, traversal.Options{Descend: true, PostVisit: true}, handler); err != nil {
			return err
		}
		if removeErr != nil {
			return removeErr
		}
		if tl != nil {
			// The root still holds the lock file; it goes after release.
			if err := out.WriteLine(root); err != nil {
				return err
			}
			result.Directories++
			return nil
		}
		if !remove(root, true) {
			return removeErr
		}
		return nil
	}

	log.Infow("Purging target tree", "target", root, "dry_run", opts.DryRun)
	if tl == nil {
		if err := purge(); err != nil {
			return result, err
		}
	} else {
		if err := tl.WithLock(purge); err != nil {
			return result, err
		}
		if err := fileutil.Remove(lockPath); err != nil {
			return result, fmt.Errorf("failed to remove lock file: %w", err)
		}
		if err := fileutil.Remove(root); err != nil {
			return result, fmt.Errorf("failed to remove %s: %w", root, err)
		}
	}

	log.Infow("Purge finished", "files", result.Files, "directories", result.Directories, "dry_run", opts.DryRun)
	return result, nil
}
