package cue

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/anselrognlie/cue-convert/internal/lineio"
)

// ErrInvalidSheet is returned by Parse when at least one line of the
// input could not be parsed.
var ErrInvalidSheet = errors.New("invalid cue sheet")

// ParseError records one malformed line.
type ParseError struct {
	Line int    // 1-based
	Text string // raw line as read
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Text)
}

// ParseErrors is a collection of line errors in input order.
type ParseErrors []ParseError

func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, pe := range e {
		msgs[i] = pe.Error()
	}
	return fmt.Sprintf("parse failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *ParseErrors) add(line int, text string) {
	if e == nil {
		return
	}
	*e = append(*e, ParseError{Line: line, Text: text})
}

// ParseFile parses the CUE sheet at path. See Parse.
func ParseFile(path string, errs *ParseErrors) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer f.Close()

	return Parse(lineio.NewScannerReader(f), errs)
}

// ParseReader parses a CUE sheet from r. See Parse.
func ParseReader(r io.Reader, errs *ParseErrors) (*Sheet, error) {
	return Parse(lineio.NewScannerReader(r), errs)
}

// ParseLines parses a CUE sheet held in memory. See Parse.
func ParseLines(lines []string, errs *ParseErrors) (*Sheet, error) {
	return Parse(lineio.NewSliceReader(lines), errs)
}

// Parse reads every line from r and builds a Sheet.
//
// Only FILE, TRACK, PREGAP and INDEX directives are interpreted; any other
// line is ignored. A malformed directive is recorded in errs (when non-nil)
// and parsing continues with the next line, so a single pass reports every
// bad line. If any line was malformed the sheet is discarded and
// ErrInvalidSheet is returned; errs still holds every failure.
func Parse(r lineio.Reader, errs *ParseErrors) (*Sheet, error) {
	p := &parser{sheet: &Sheet{}}

	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read cue sheet: %w", err)
		}
		p.lineNum++

		if !p.parseLine(line) {
			p.failed++
			errs.add(p.lineNum, line)
		}
	}

	if p.failed > 0 {
		return nil, fmt.Errorf("%w: %d malformed line(s)", ErrInvalidSheet, p.failed)
	}
	return p.sheet, nil
}

type parser struct {
	sheet   *Sheet
	file    *File
	track   *Track
	lineNum int
	failed  int
}

// parseLine returns false when a recognized directive is malformed.
func (p *parser) parseLine(line string) bool {
	s := skipSpace(line)
	if s == "" {
		return true
	}

	switch s[0] {
	case 'F':
		rest, ok := skipToken(s, "FILE")
		if !ok {
			return true
		}
		return p.parseFile(rest)
	case 'T':
		rest, ok := skipToken(s, "TRACK")
		if !ok {
			return true
		}
		return p.parseTrack(rest)
	case 'P':
		rest, ok := skipToken(s, "PREGAP")
		if !ok {
			return true
		}
		return p.parsePregap(rest)
	case 'I':
		rest, ok := skipToken(s, "INDEX")
		if !ok {
			return true
		}
		return p.parseIndex(rest)
	}
	return true
}

func (p *parser) parseFile(s string) bool {
	name, rest, ok := parsePath(s)
	if !ok {
		return false
	}
	typ, _, ok := parseFileType(rest)
	if !ok {
		return false
	}
	p.file = p.sheet.NewFile(name, typ)
	return true
}

func (p *parser) parseTrack(s string) bool {
	if p.file == nil {
		return false
	}
	number, rest, ok := parseIntToken(s)
	if !ok {
		return false
	}
	mode, _, ok := parseTrackMode(rest)
	if !ok {
		return false
	}
	p.track = p.file.NewTrack(number, mode)
	return true
}

func (p *parser) parsePregap(s string) bool {
	if p.track == nil {
		return false
	}
	t, _, ok := parseTime(s)
	if !ok {
		return false
	}
	p.track.Pregap = t
	return true
}

func (p *parser) parseIndex(s string) bool {
	if p.track == nil {
		return false
	}
	number, rest, ok := parseIntToken(s)
	if !ok {
		return false
	}
	t, _, ok := parseTime(rest)
	if !ok {
		return false
	}
	p.track.NewIndex(number, t)
	return true
}

const whitespace = " \t"

func skipSpace(s string) string {
	return strings.TrimLeft(s, whitespace)
}

// separated consumes the whitespace that must follow a token. The end of
// the line also terminates a token.
func separated(s string) (string, bool) {
	if s == "" {
		return s, true
	}
	next := skipSpace(s)
	if len(next) == len(s) {
		return s, false
	}
	return next, true
}

func skipToken(s, token string) (string, bool) {
	if !strings.HasPrefix(s, token) {
		return s, false
	}
	return separated(s[len(token):])
}

func parsePath(s string) (path, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", s, false
		}
		path, rest = s[1:1+end], s[2+end:]
	} else {
		end := strings.IndexAny(s, whitespace)
		if end < 0 {
			end = len(s)
		}
		path, rest = s[:end], s[end:]
	}
	if path == "" {
		return "", s, false
	}
	rest, ok = separated(rest)
	return path, rest, ok
}

func parseFileType(s string) (FileType, string, bool) {
	for i, kw := range fileTypeKeywords {
		if rest, ok := skipToken(s, kw); ok {
			return FileType(i), rest, true
		}
	}
	return 0, s, false
}

func parseTrackMode(s string) (TrackMode, string, bool) {
	for i, kw := range trackModeKeywords {
		if rest, ok := skipToken(s, kw); ok {
			return TrackMode(i), rest, true
		}
	}
	return 0, s, false
}

func parseInt(s string) (int, string, bool) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, s, false
	}
	// Out of range values saturate; digits are only checked lexically.
	v, err := strconv.Atoi(s[:n])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, s, false
	}
	return v, s[n:], true
}

func parseIntToken(s string) (int, string, bool) {
	v, rest, ok := parseInt(s)
	if !ok {
		return 0, s, false
	}
	rest, ok = separated(rest)
	return v, rest, ok
}

func parseTime(s string) (Time, string, bool) {
	var fields [3]int
	rest := s
	for i := range fields {
		if i > 0 {
			if !strings.HasPrefix(rest, ":") {
				return Time{}, s, false
			}
			rest = rest[1:]
		}
		v, r, ok := parseInt(rest)
		if !ok {
			return Time{}, s, false
		}
		fields[i], rest = v, r
	}
	rest, ok := separated(rest)
	if !ok {
		return Time{}, s, false
	}
	return MSF(fields[0], fields[1], fields[2]), rest, true
}
