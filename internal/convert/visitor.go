// Package convert mirrors a tree of CUE sheets into a target tree,
// re-targeting eligible media to another codec along the way.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anselrognlie/cue-convert/internal/cue"
	"github.com/anselrognlie/cue-convert/internal/encoder"
	"github.com/anselrognlie/cue-convert/internal/fileutil"
	"github.com/anselrognlie/cue-convert/internal/lineio"
	"github.com/anselrognlie/cue-convert/internal/logger"
	"github.com/anselrognlie/cue-convert/internal/report"
	"github.com/anselrognlie/cue-convert/internal/transform"
	"github.com/anselrognlie/cue-convert/internal/traversal"
	"github.com/anselrognlie/cue-convert/internal/verifier"
)

const cueExtension = ".cue"

// Status details recorded on sheets that were not converted.
const (
	statusTargetExists = "Target cue file already exists"
	statusFiltered     = "Filtered by pattern: "
)

// Options control how each sheet is converted.
type Options struct {
	Codec     transform.Codec
	Quality   float64
	Overwrite bool
	DryRun    bool
}

// VisitorOption configures a Visitor.
type VisitorOption func(*Visitor)

// WithEncoder sets the encoder used for media whose type changes.
func WithEncoder(enc encoder.Encoder) VisitorOption {
	return func(v *Visitor) {
		v.encoder = enc
	}
}

// WithVerifier checks every copied media file.
func WithVerifier(ver *verifier.Verifier) VisitorOption {
	return func(v *Visitor) {
		v.verifier = ver
	}
}

// WithFilter skips sheets matching f.
func WithFilter(f *Filter) VisitorOption {
	return func(v *Visitor) {
		v.filter = f
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) VisitorOption {
	return func(v *Visitor) {
		if log != nil {
			v.logger = log
		}
	}
}

// WithProgress writes one line per filed sheet to w.
func WithProgress(w lineio.Writer) VisitorOption {
	return func(v *Visitor) {
		if w != nil {
			v.progress = w
		}
	}
}

// Visitor converts every .cue file the traversal engine hands it and files
// the outcome into a report.
type Visitor struct {
	ctx      context.Context
	opts     Options
	report   *report.Report
	encoder  encoder.Encoder
	verifier *verifier.Verifier
	filter   *Filter
	logger   *logger.Logger
	progress lineio.Writer
	err      error
}

var (
	_ traversal.ParallelHandler      = (*Visitor)(nil)
	_ traversal.ParallelErrorHandler = (*Visitor)(nil)
)

// NewVisitor returns a Visitor filing into rep. ctx cancels the walk
// between sheets and is passed to the encoder.
func NewVisitor(ctx context.Context, rep *report.Report, opts Options, vopts ...VisitorOption) *Visitor {
	v := &Visitor{
		ctx:      ctx,
		opts:     opts,
		report:   rep,
		logger:   logger.NewNop(),
		progress: lineio.Discard,
	}
	for _, opt := range vopts {
		opt(v)
	}
	return v
}

// Err returns the error that halted the walk, if filing a record failed.
func (v *Visitor) Err() error {
	return v.err
}

// IsCueFile reports whether name has a .cue extension, ignoring case.
func IsCueFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), cueExtension)
}

// VisitParallel handles one entry of the source tree.
func (v *Visitor) VisitParallel(s *traversal.ParallelState) bool {
	if err := v.ctx.Err(); err != nil {
		v.logger.Warnw("Conversion interrupted", "next", s.SourcePath, "error", err)
		return false
	}
	if s.Entry.IsDir() || !IsCueFile(s.Entry.Name()) {
		return true
	}

	rec := report.NewRecord(s.SourcePath, s.Path)
	outcome := v.process(rec)
	return v.file(rec, outcome)
}

// OpenFailedParallel logs a directory that could not be read and moves on.
func (v *Visitor) OpenFailedParallel(s *traversal.ParallelState, err error) bool {
	v.logger.Warnw("Skipping unreadable directory", "path", s.SourcePath, "error", err)
	return true
}

func (v *Visitor) process(rec *report.Record) report.Outcome {
	log := v.logger.WithCue(rec.SourcePath)

	if pattern, ok := v.filter.Match(rec.SourcePath); ok {
		rec.Result.AddStatus(statusFiltered + pattern)
		return report.Skipped
	}

	if !v.opts.Overwrite && fileutil.Exists(rec.TargetPath) {
		rec.Result.AddStatus(statusTargetExists)
		return report.Skipped
	}

	log.Debug("Parsing cue sheet")
	var perrs cue.ParseErrors
	src, err := cue.ParseFile(rec.SourcePath, &perrs)
	if err != nil {
		for _, pe := range perrs {
			rec.Result.AddParseError(pe.Line, pe.Text)
		}
		if !errors.Is(err, cue.ErrInvalidSheet) {
			rec.Result.AddError(fmt.Sprintf("Failed to read cue file: %v", err))
		}
		return report.Failed
	}
	rec.SourceSheet = src

	log.Debugw("Planning transform", "codec", v.opts.Codec)
	tgt, err := transform.Plan(src, v.opts.Codec)
	if err != nil {
		rec.Result.AddError(fmt.Sprintf("Failed to transform cue sheet: %v", err))
		return report.Failed
	}
	rec.TargetSheet = tgt

	if v.opts.DryRun {
		return report.Transformed
	}

	targetDir := filepath.Dir(rec.TargetPath)
	if err := fileutil.EnsureDir(targetDir); err != nil {
		rec.Result.AddError("Failed to create target directory: " + targetDir)
		return report.Failed
	}

	log.Debugw("Writing cue sheet", "target", rec.TargetPath)
	if err := cue.WriteFile(tgt, rec.TargetPath); err != nil {
		rec.Result.AddError("Failed to create cue file: " + rec.TargetPath)
		return report.Failed
	}

	v.convertMedia(rec, log)

	if rec.Result.HasErrors {
		return report.Failed
	}
	return report.Transformed
}

// convertMedia copies or encodes every file the sheet references. Every
// pair is attempted; failures are collected on the record.
func (v *Visitor) convertMedia(rec *report.Record, log *logger.Logger) {
	srcDir := filepath.Dir(rec.SourcePath)
	dstDir := filepath.Dir(rec.TargetPath)

	for i, sf := range rec.SourceSheet.Files {
		tf := rec.TargetSheet.Files[i]
		in := mediaPath(srcDir, sf.Name)
		out := mediaPath(dstDir, tf.Name)

		if err := fileutil.EnsureDir(filepath.Dir(out)); err != nil {
			rec.Result.AddError("Failed to create target directory: " + filepath.Dir(out))
			continue
		}

		if sf.Type == tf.Type {
			if err := v.copyMedia(in, out); err != nil {
				log.Errorw("Media copy failed", "source", in, "error", err)
				rec.Result.AddError(fmt.Sprintf("Failed to copy %s: %v", in, err))
			}
			continue
		}

		log.Debugw("Encoding media", "source", in, "target", out, "from", sf.Type, "to", tf.Type)
		if err := v.encodeMedia(sf.Type, in, out); err != nil {
			log.Errorw("Media conversion failed", "source", in, "error", err)
			rec.Result.AddError(fmt.Sprintf("Failed to convert %s: %v", in, err))
		}
	}
}

// mediaPath resolves a sheet's file name against dir. Either slash
// separates components, whichever system wrote the sheet.
func mediaPath(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
}

func (v *Visitor) copyMedia(in, out string) error {
	n, err := fileutil.CopyFile(in, out)
	if err != nil {
		return err
	}
	if v.verifier != nil {
		if _, err := v.verifier.Verify(v.ctx, in, out); err != nil {
			return err
		}
	}
	v.report.BytesCopied += n
	return nil
}

func (v *Visitor) encodeMedia(from cue.FileType, in, out string) error {
	if v.encoder == nil {
		return errors.New("no encoder configured")
	}
	err := v.encoder.Encode(v.ctx, encoder.Job{
		Codec:      string(v.opts.Codec),
		Quality:    v.opts.Quality,
		SourceType: from,
		Input:      in,
		Output:     out,
	})
	if err != nil {
		return err
	}
	v.report.Encoded++
	return nil
}

// file hands rec to the report. A refused record halts the walk.
func (v *Visitor) file(rec *report.Record, outcome report.Outcome) bool {
	if err := v.report.Add(rec, outcome); err != nil {
		v.err = fmt.Errorf("failed to file %s: %w", rec.SourcePath, err)
		v.logger.Errorw("Failed to file record", "cue", rec.SourcePath, "error", err)
		return false
	}

	log := v.logger.WithCue(rec.SourcePath)
	switch outcome {
	case report.Transformed:
		log.Infow("Cue sheet converted", "target", rec.TargetPath, "dry_run", v.opts.DryRun)
	case report.Failed:
		log.Errorw("Cue sheet failed", "errors", len(rec.Result.Errors()))
	case report.Skipped:
		log.Warnw("Cue sheet skipped", "target", rec.TargetPath)
	}

	if err := v.progress.WriteLine(fmt.Sprintf("[%s] %s", outcome, rec.SourcePath)); err != nil {
		log.Debugw("Progress write failed", "error", err)
	}
	return true
}
