package convert

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/anselrognlie/cue-convert/internal/lineio"
)

// Filter excludes sheets whose source path matches any of its patterns.
// A nil Filter matches nothing.
type Filter struct {
	patterns []*regexp.Regexp
}

// NewFilter compiles patterns.
func NewFilter(patterns ...string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// LoadFilter reads one regular expression per line from path. Blank lines
// and lines starting with '#' are ignored.
func LoadFilter(path string) (*Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open filter file: %w", err)
	}
	defer file.Close()

	f := &Filter{}
	r := lineio.NewScannerReader(file)
	for lineNum := 1; ; lineNum++ {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read filter file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid pattern: %w", path, lineNum, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match returns the first pattern matching path.
func (f *Filter) Match(path string) (string, bool) {
	if f == nil {
		return "", false
	}
	for _, re := range f.patterns {
		if re.MatchString(path) {
			return re.String(), true
		}
	}
	return "", false
}

// Len returns the number of patterns.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
