package report

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNilRecord is returned when filing a nil record.
	ErrNilRecord = errors.New("nil record")
	// ErrAlreadyFiled is returned when a record is filed twice.
	ErrAlreadyFiled = errors.New("record already filed")
)

// Report holds every filed record. Found always equals the sum of the
// three per-outcome counts.
type Report struct {
	Found            int
	TransformedCount int
	FailedCount      int
	SkippedCount     int

	Transformed []*Record
	Failed      []*Record
	Skipped     []*Record

	RunID       string
	StartedAt   time.Time
	CompletedAt time.Time

	// BytesCopied counts media bytes copied verbatim into the target tree.
	BytesCopied int64
	// Encoded counts media files produced by the encoder.
	Encoded int
}

// New returns an empty report for the run identified by runID.
func New(runID string) *Report {
	return &Report{RunID: runID, StartedAt: time.Now()}
}

// Add files rec under outcome. The record must not be modified afterwards.
func (r *Report) Add(rec *Record, outcome Outcome) error {
	if rec == nil {
		return ErrNilRecord
	}
	if rec.filed {
		return fmt.Errorf("%w: %s", ErrAlreadyFiled, rec.SourcePath)
	}

	switch outcome {
	case Transformed:
		r.Transformed = append(r.Transformed, rec)
		r.TransformedCount++
	case Failed:
		r.Failed = append(r.Failed, rec)
		r.FailedCount++
	case Skipped:
		r.Skipped = append(r.Skipped, rec)
		r.SkippedCount++
	default:
		return fmt.Errorf("unknown outcome %d", int(outcome))
	}

	rec.filed = true
	r.Found++
	return nil
}

// Complete stamps the completion time.
func (r *Report) Complete() {
	r.CompletedAt = time.Now()
}

// Elapsed returns the run duration, or the time since start while running.
func (r *Report) Elapsed() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	if r.CompletedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// HasFailures reports whether any record was filed as failed.
func (r *Report) HasFailures() bool {
	return r.FailedCount > 0
}
