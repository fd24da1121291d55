// Package report aggregates per-sheet conversion outcomes and renders them.
package report

import (
	"fmt"

	"github.com/anselrognlie/cue-convert/internal/cue"
)

// StatusKind classifies a StatusInfo.
type StatusKind int

const (
	// KindStatus is an informational note, such as why a sheet was skipped.
	KindStatus StatusKind = iota
	// KindError is a failure not tied to a line of the sheet.
	KindError
	// KindParseError is a malformed line of the source sheet.
	KindParseError
)

func (k StatusKind) String() string {
	switch k {
	case KindStatus:
		return "STATUS"
	case KindError:
		return "ERROR"
	case KindParseError:
		return "PARSE_ERROR"
	default:
		return fmt.Sprintf("StatusKind(%d)", int(k))
	}
}

// StatusInfo is one entry of a ProcessResult. Line is 0 unless the entry
// refers to a line of the source sheet.
type StatusInfo struct {
	Kind   StatusKind
	Line   int
	Detail string
}

// ProcessResult collects what happened while processing one sheet.
type ProcessResult struct {
	HasErrors bool
	HasStatus bool
	Infos     []StatusInfo
}

// AddStatus records an informational note.
func (r *ProcessResult) AddStatus(detail string) {
	r.HasStatus = true
	r.Infos = append(r.Infos, StatusInfo{Kind: KindStatus, Detail: detail})
}

// AddError records a failure that is not tied to a source line.
func (r *ProcessResult) AddError(detail string) {
	r.HasErrors = true
	r.Infos = append(r.Infos, StatusInfo{Kind: KindError, Detail: detail})
}

// AddParseError records a malformed source line.
func (r *ProcessResult) AddParseError(line int, text string) {
	r.HasErrors = true
	r.Infos = append(r.Infos, StatusInfo{Kind: KindParseError, Line: line, Detail: text})
}

// Errors returns the ERROR and PARSE_ERROR entries in order.
func (r *ProcessResult) Errors() []StatusInfo {
	var out []StatusInfo
	for _, info := range r.Infos {
		if info.Kind != KindStatus {
			out = append(out, info)
		}
	}
	return out
}

// Statuses returns the STATUS entries in order.
func (r *ProcessResult) Statuses() []StatusInfo {
	var out []StatusInfo
	for _, info := range r.Infos {
		if info.Kind == KindStatus {
			out = append(out, info)
		}
	}
	return out
}

// Record tracks one discovered sheet from discovery until it is filed.
// Either sheet may be nil when processing stopped before it was built.
type Record struct {
	SourcePath  string
	TargetPath  string
	SourceSheet *cue.Sheet
	TargetSheet *cue.Sheet
	Result      ProcessResult

	filed bool
}

// NewRecord returns an empty record for a sheet found at source and
// mirrored to target.
func NewRecord(source, target string) *Record {
	return &Record{SourcePath: source, TargetPath: target}
}

// Outcome is the bucket a record is filed into.
type Outcome int

const (
	Transformed Outcome = iota
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Transformed:
		return "transformed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
