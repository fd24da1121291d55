package report

import (
	"fmt"

	"github.com/anselrognlie/cue-convert/internal/lineio"
)

// Writer renders a Report to a line sink. Lines are pushed as they are
// produced; when the sink refuses one, rendering stops and the lines
// already pushed stay where they are.
type Writer struct {
	sink  lineio.Writer
	style Style
}

// NewWriter returns a Writer for sink. A nil style renders plain text.
func NewWriter(sink lineio.Writer, style Style) *Writer {
	if style == nil {
		style = PlainStyle{}
	}
	return &Writer{sink: sink, style: style}
}

func (w *Writer) line(role Role, format string, args ...any) error {
	return w.sink.WriteLine(w.style.Apply(role, fmt.Sprintf(format, args...)))
}

// Write renders rep.
func (w *Writer) Write(rep *Report) error {
	if err := w.line(RoleTitle, "CONVERSION REPORT"); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	if err := w.line(RoleTitle, "Found cue files: %d", rep.Found); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	if err := w.section(RoleTransformed, "Transformed", rep.Transformed, rep.TransformedCount, nil); err != nil {
		return err
	}
	if err := w.section(RoleFailed, "Failed", rep.Failed, rep.FailedCount, w.writeErrors); err != nil {
		return err
	}
	return w.section(RoleSkipped, "Skipped", rep.Skipped, rep.SkippedCount, w.writeStatuses)
}

func (w *Writer) section(role Role, title string, recs []*Record, total int, details func(*Record) error) error {
	if err := w.line(role, "%s files:", title); err != nil {
		return fmt.Errorf("write %s section: %w", title, err)
	}
	for _, rec := range recs {
		if err := w.line(RoleDetail, "  %s -> %s", rec.SourcePath, rec.TargetPath); err != nil {
			return fmt.Errorf("write %s record: %w", title, err)
		}
		if details == nil {
			continue
		}
		if err := details(rec); err != nil {
			return fmt.Errorf("write %s record details: %w", title, err)
		}
	}
	if err := w.line(role, "%s total: %d", title, total); err != nil {
		return fmt.Errorf("write %s total: %w", title, err)
	}
	return nil
}

func (w *Writer) writeErrors(rec *Record) error {
	if !rec.Result.HasErrors {
		return nil
	}
	if err := w.sink.WriteLine("    Errors:"); err != nil {
		return err
	}
	for _, info := range rec.Result.Errors() {
		var err error
		if info.Kind == KindParseError {
			err = w.sink.WriteLine(fmt.Sprintf("      %d: %s", info.Line, info.Detail))
		} else {
			err = w.sink.WriteLine(fmt.Sprintf("      ! %s", info.Detail))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeStatuses(rec *Record) error {
	if !rec.Result.HasStatus {
		return nil
	}
	if err := w.sink.WriteLine("    Status:"); err != nil {
		return err
	}
	for _, info := range rec.Result.Statuses() {
		if err := w.sink.WriteLine(fmt.Sprintf("      * %s", info.Detail)); err != nil {
			return err
		}
	}
	return nil
}
