package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/anselrognlie/cue-convert/internal/config"
	"github.com/anselrognlie/cue-convert/internal/encoder"
	"github.com/anselrognlie/cue-convert/internal/fileutil"
	"github.com/anselrognlie/cue-convert/internal/lineio"
	"github.com/anselrognlie/cue-convert/internal/lock"
	"github.com/anselrognlie/cue-convert/internal/logger"
	"github.com/anselrognlie/cue-convert/internal/report"
	"github.com/anselrognlie/cue-convert/internal/transform"
	"github.com/anselrognlie/cue-convert/internal/traversal"
	"github.com/anselrognlie/cue-convert/internal/verifier"
)

// ErrOverlappingRoots is returned when the target tree would live inside
// the source tree.
var ErrOverlappingRoots = errors.New("target must not be inside source")

// Option configures a Converter.
type Option func(*Converter)

// WithConverterLogger sets the logger.
func WithConverterLogger(log *logger.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithMediaEncoder replaces the encoder built from configuration.
func WithMediaEncoder(enc encoder.Encoder) Option {
	return func(c *Converter) {
		c.encoder = enc
	}
}

// WithStdout sets where the console report is written.
func WithStdout(w io.Writer) Option {
	return func(c *Converter) {
		if w != nil {
			c.stdout = w
		}
	}
}

// WithForce skips the target lock.
func WithForce(force bool) Option {
	return func(c *Converter) {
		c.force = force
	}
}

// Converter runs one conversion of a source tree into a target tree.
type Converter struct {
	cfg     *config.Config
	source  string
	target  string
	codec   transform.Codec
	encoder encoder.Encoder
	logger  *logger.Logger
	stdout  io.Writer
	force   bool
}

// New validates the roots and builds a Converter from cfg.
func New(cfg *config.Config, source, target string, opts ...Option) (*Converter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", source)
	}
	if err := checkRoots(source, target); err != nil {
		return nil, err
	}

	profile, err := transform.Lookup(cfg.Conversion.Codec)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		cfg:    cfg,
		source: source,
		target: target,
		codec:  profile.Codec,
		encoder: encoder.NewOggEnc(
			encoder.WithBinary(cfg.Encoder.Binary),
			encoder.WithExtraArgs(cfg.Encoder.ExtraArgs),
			encoder.WithRawFlag(cfg.Encoder.RawFlag),
		),
		logger: logger.NewDefault(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run walks the source tree, converts every sheet and renders the report.
// Per-sheet failures are recorded in the report, not returned.
func (c *Converter) Run(ctx context.Context) (*report.Report, error) {
	runID := uuid.NewString()
	log := c.logger.WithRun(runID)
	conv := c.cfg.Conversion

	log.Infow("Starting conversion",
		"source", c.source,
		"target", c.target,
		"codec", c.codec,
		"quality", conv.Quality,
		"overwrite", conv.Overwrite,
		"dry_run", conv.DryRun,
	)

	filter, err := c.loadFilter()
	if err != nil {
		return nil, err
	}

	method, err := verifier.ParseMethod(c.cfg.Verification.Method)
	if err != nil {
		return nil, err
	}
	ver, err := verifier.NewVerifier(method, log)
	if err != nil {
		return nil, err
	}

	var rep *report.Report
	run := func() error {
		var runErr error
		rep, runErr = c.walk(ctx, runID, log, filter, ver)
		return runErr
	}

	if !conv.DryRun {
		if err := fileutil.EnsureDir(c.target); err != nil {
			return nil, err
		}
		if !c.force && conv.LockFile != "" {
			err = lock.ForTarget(c.target, conv.LockFile).WithLock(run)
			return rep, err
		}
	}
	err = run()
	return rep, err
}

// walk converts the source tree and renders the report.
func (c *Converter) walk(ctx context.Context, runID string, log *logger.Logger, filter *Filter, ver *verifier.Verifier) (*report.Report, error) {
	conv := c.cfg.Conversion

	progress := lineio.Discard
	if !conv.Quiet {
		progress = lineio.NewStreamWriter(c.stdout)
	}

	rep := report.New(runID)
	visitor := NewVisitor(ctx, rep, Options{
		Codec:     c.codec,
		Quality:   conv.Quality,
		Overwrite: conv.Overwrite,
		DryRun:    conv.DryRun,
	},
		WithEncoder(c.encoder),
		WithVerifier(ver),
		WithFilter(filter),
		WithLogger(log),
		WithProgress(progress),
	)

	completed, walkErr := traversal.WalkPath(c.source, traversal.DefaultOptions(), traversal.NewParallel(c.target, visitor))
	rep.Complete()
	if walkErr != nil {
		return rep, fmt.Errorf("traversal failed: %w", walkErr)
	}
	if err := visitor.Err(); err != nil {
		return rep, err
	}

	if err := c.render(rep); err != nil {
		return rep, err
	}

	log.Infow("Conversion finished",
		"found", rep.Found,
		"transformed", rep.TransformedCount,
		"failed", rep.FailedCount,
		"skipped", rep.SkippedCount,
		"elapsed", rep.Elapsed(),
	)

	if !completed {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("conversion interrupted: %w", err)
		}
	}
	return rep, nil
}

func (c *Converter) loadFilter() (*Filter, error) {
	if c.cfg.Conversion.FilterPath == "" {
		return nil, nil
	}
	return LoadFilter(c.cfg.Conversion.FilterPath)
}

// render writes the plain report file first, then the console report.
func (c *Converter) render(rep *report.Report) error {
	if path := c.cfg.Conversion.ReportPath; path != "" {
		fw, err := lineio.CreateFile(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		if err := report.NewWriter(fw, report.PlainStyle{}).Write(rep); err != nil {
			_ = fw.Close()
			return err
		}
		if err := fw.Close(); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}

	if c.cfg.Conversion.Quiet {
		return report.NewWriter(lineio.Discard, nil).Write(rep)
	}

	console := lineio.NewStreamWriter(c.stdout)
	if err := console.WriteLine(""); err != nil {
		return err
	}
	if err := report.NewWriter(console, report.StyleFor(c.stdout)).Write(rep); err != nil {
		return err
	}
	return lineio.WriteLines(console, report.Summary(rep))
}

// checkRoots refuses a target equal to, or below, the source root.
func checkRoots(source, target string) error {
	src, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	tgt, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if isWithin(src, tgt) {
		return fmt.Errorf("%w: %s is within %s", ErrOverlappingRoots, target, source)
	}
	return nil
}

// isWithin reports whether path is root or lies below it. Both must be
// absolute.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
