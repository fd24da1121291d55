// Package lineio provides line-oriented readers and writers used by the
// CUE parser, the serializer and the report writer.
package lineio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("line writer closed")

// Reader yields lines without their terminators. ReadLine returns io.EOF
// once the input is exhausted.
type Reader interface {
	ReadLine() (string, error)
}

// Writer accepts one line at a time. A non-nil error means the line was
// refused and nothing further should be pushed.
type Writer interface {
	WriteLine(line string) error
}

// SliceReader reads lines from an in-memory slice.
type SliceReader struct {
	lines []string
	pos   int
}

// NewSliceReader returns a Reader over lines.
func NewSliceReader(lines []string) *SliceReader {
	return &SliceReader{lines: lines}
}

func (r *SliceReader) ReadLine() (string, error) {
	if r.pos >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.pos]
	r.pos++
	return line, nil
}

// ScannerReader reads lines from an io.Reader. CR and LF terminators are
// stripped so CRLF files read the same as LF files.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader wraps r.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

func (r *ScannerReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return strings.TrimRight(r.scanner.Text(), "\r\n"), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SliceWriter collects written lines in memory.
type SliceWriter struct {
	Lines []string
}

func (w *SliceWriter) WriteLine(line string) error {
	w.Lines = append(w.Lines, line)
	return nil
}

// StreamWriter writes newline-terminated lines to an io.Writer.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter wraps w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

func (w *StreamWriter) WriteLine(line string) error {
	if _, err := io.WriteString(w.w, line+"\n"); err != nil {
		return err
	}
	return nil
}

// FileWriter writes lines to a file it owns.
type FileWriter struct {
	f      *os.File
	buf    *bufio.Writer
	closed bool
}

// CreateFile creates (or truncates) path and returns a writer for it.
func CreateFile(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &FileWriter{f: f, buf: bufio.NewWriter(f)}, nil
}

func (w *FileWriter) WriteLine(line string) error {
	if w.closed {
		return ErrClosed
	}
	if _, err := w.buf.WriteString(line + "\n"); err != nil {
		return err
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (w *FileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.buf.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Discard is a Writer that accepts and drops every line.
var Discard Writer = discard{}

type discard struct{}

func (discard) WriteLine(string) error { return nil }

// WriteLines pushes every line to w, stopping at the first refusal.
func WriteLines(w Writer, lines ...string) error {
	for _, line := range lines {
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}
