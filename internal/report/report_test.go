package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anselrognlie/cue-convert/internal/lineio"
)

func TestReport_AddKeepsCountsInStep(t *testing.T) {
	rep := New("run-1")
	outcomes := []Outcome{Transformed, Failed, Skipped, Transformed, Skipped, Transformed}

	for i, o := range outcomes {
		require.NoError(t, rep.Add(NewRecord("s", "t"), o), "record %d", i)
		assert.Equal(t, rep.Found, rep.TransformedCount+rep.FailedCount+rep.SkippedCount)
	}

	assert.Equal(t, 6, rep.Found)
	assert.Equal(t, 3, rep.TransformedCount)
	assert.Len(t, rep.Transformed, 3)
	assert.Equal(t, 1, rep.FailedCount)
	assert.Len(t, rep.Failed, 1)
	assert.Equal(t, 2, rep.SkippedCount)
	assert.Len(t, rep.Skipped, 2)
	assert.True(t, rep.HasFailures())
}

func TestReport_RejectsBadRecords(t *testing.T) {
	rep := New("")

	assert.ErrorIs(t, rep.Add(nil, Transformed), ErrNilRecord)

	rec := NewRecord("a.cue", "b.cue")
	require.NoError(t, rep.Add(rec, Failed))
	assert.ErrorIs(t, rep.Add(rec, Transformed), ErrAlreadyFiled)
	assert.Error(t, rep.Add(NewRecord("x", "y"), Outcome(42)))

	assert.Equal(t, 1, rep.Found)
	assert.Empty(t, rep.Transformed)
}

func TestReport_Elapsed(t *testing.T) {
	rep := &Report{}
	assert.Zero(t, rep.Elapsed())

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rep.StartedAt = start
	rep.CompletedAt = start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, rep.Elapsed())
	assert.False(t, rep.HasFailures())
}

func TestProcessResult(t *testing.T) {
	var r ProcessResult
	assert.False(t, r.HasErrors)
	assert.False(t, r.HasStatus)

	r.AddStatus("note")
	assert.True(t, r.HasStatus)
	assert.False(t, r.HasErrors)

	r.AddParseError(4, "BAD LINE")
	r.AddError("Failed to copy x")
	assert.True(t, r.HasErrors)

	assert.Equal(t, []StatusInfo{
		{Kind: KindParseError, Line: 4, Detail: "BAD LINE"},
		{Kind: KindError, Detail: "Failed to copy x"},
	}, r.Errors())
	assert.Equal(t, []StatusInfo{{Kind: KindStatus, Detail: "note"}}, r.Statuses())
	assert.Equal(t, "PARSE_ERROR", KindParseError.String())
	assert.Equal(t, "skipped", Skipped.String())
}

func sampleReport(t *testing.T) *Report {
	t.Helper()
	rep := New("run")

	ok := NewRecord("src/a.cue", "dst/a.cue")
	require.NoError(t, rep.Add(ok, Transformed))

	bad := NewRecord("src/b.cue", "dst/b.cue")
	bad.Result.AddParseError(3, "  TRACK 01 NOPE")
	bad.Result.AddError("Failed to convert src/b.bin: exit status 1")
	require.NoError(t, rep.Add(bad, Failed))

	quietFail := NewRecord("src/c.cue", "dst/c.cue")
	require.NoError(t, rep.Add(quietFail, Failed))

	skip := NewRecord("src/d.cue", "dst/d.cue")
	skip.Result.AddStatus("Target cue file already exists")
	require.NoError(t, rep.Add(skip, Skipped))

	bare := NewRecord("src/e.cue", "dst/e.cue")
	require.NoError(t, rep.Add(bare, Skipped))
	return rep
}

func TestWriter_Format(t *testing.T) {
	var sink lineio.SliceWriter
	require.NoError(t, NewWriter(&sink, nil).Write(sampleReport(t)))

	assert.Equal(t, []string{
		"CONVERSION REPORT",
		"Found cue files: 5",
		"Transformed files:",
		"  src/a.cue -> dst/a.cue",
		"Transformed total: 1",
		"Failed files:",
		"  src/b.cue -> dst/b.cue",
		"    Errors:",
		"      3:   TRACK 01 NOPE",
		"      ! Failed to convert src/b.bin: exit status 1",
		"  src/c.cue -> dst/c.cue",
		"Failed total: 2",
		"Skipped files:",
		"  src/d.cue -> dst/d.cue",
		"    Status:",
		"      * Target cue file already exists",
		"  src/e.cue -> dst/e.cue",
		"Skipped total: 2",
	}, sink.Lines)
}

func TestWriter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(lineio.NewStreamWriter(&buf), PlainStyle{}).Write(New("")))

	assert.Equal(t, strings.Join([]string{
		"CONVERSION REPORT",
		"Found cue files: 0",
		"Transformed files:",
		"Transformed total: 0",
		"Failed files:",
		"Failed total: 0",
		"Skipped files:",
		"Skipped total: 0",
	}, "\n")+"\n", buf.String())
}

type limitedSink struct {
	limit int
	lines []string
}

var errSinkFull = errors.New("sink full")

func (s *limitedSink) WriteLine(line string) error {
	if len(s.lines) >= s.limit {
		return errSinkFull
	}
	s.lines = append(s.lines, line)
	return nil
}

func TestWriter_SinkRefusalAborts(t *testing.T) {
	rep := sampleReport(t)

	for _, limit := range []int{0, 1, 4, 8, 9, 15} {
		sink := &limitedSink{limit: limit}
		err := NewWriter(sink, nil).Write(rep)
		assert.ErrorIs(t, err, errSinkFull, "limit %d", limit)
		assert.Len(t, sink.lines, limit, "partial output is kept")
	}
}

type bracketStyle struct{}

func (bracketStyle) Apply(role Role, s string) string {
	if role == RoleDetail {
		return s
	}
	return "[" + s + "]"
}

func TestWriter_StyleDecoratesHeadings(t *testing.T) {
	var sink lineio.SliceWriter
	require.NoError(t, NewWriter(&sink, bracketStyle{}).Write(sampleReport(t)))

	assert.Equal(t, "[CONVERSION REPORT]", sink.Lines[0])
	assert.Equal(t, "  src/a.cue -> dst/a.cue", sink.Lines[3])
	assert.Equal(t, "[Skipped total: 2]", sink.Lines[len(sink.Lines)-1])
}

func TestStyleFor_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, PlainStyle{}, StyleFor(&buf))

	cs := NewColorStyle()
	assert.Contains(t, cs.Apply(RoleFailed, "Failed files:"), "Failed files:")
	assert.Equal(t, "x", cs.Apply(Role(99), "x"))
}

func TestSummary(t *testing.T) {
	rep := sampleReport(t)
	rep.BytesCopied = 2 * 1000 * 1000
	rep.Encoded = 3
	rep.CompletedAt = rep.StartedAt.Add(2 * time.Second)

	out := Summary(rep)
	for _, want := range []string{"Transformed", "Failed", "Skipped", "Found", "2.0 MB", "2s", "run run"} {
		assert.Contains(t, out, want)
	}
}
