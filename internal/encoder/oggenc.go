// Package encoder runs the external audio encoder that transcodes media
// referenced by a sheet.
package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/anselrognlie/cue-convert/internal/cue"
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// ErrEncoderNotFound is returned by LookPath when the binary is missing.
var ErrEncoderNotFound = errors.New("encoder binary not found")

// stderrTail bounds how much encoder stderr is kept for error messages.
const stderrTail = 512

// Job describes one transcode.
type Job struct {
	Codec      string
	Quality    float64
	SourceType cue.FileType
	Input      string
	Output     string
}

// Encoder produces Output from Input.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// EncoderError reports a failed encoder run.
type EncoderError struct {
	Binary string
	Input  string
	Err    error
	Stderr string
}

func (e *EncoderError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Binary, e.Input, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *EncoderError) Unwrap() error {
	return e.Err
}

// Option configures OggEnc.
type Option func(*OggEnc)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(o *OggEnc) {
		if binary != "" {
			o.binary = binary
		}
	}
}

// WithExtraArgs appends shell-style words to every invocation, ahead of
// the output flag.
func WithExtraArgs(args string) Option {
	return func(o *OggEnc) {
		o.extraArgs = args
	}
}

// WithRawFlag overrides the flag that marks headerless PCM input.
func WithRawFlag(flag string) Option {
	return func(o *OggEnc) {
		if flag != "" {
			o.rawFlag = flag
		}
	}
}

// OggEnc wraps the oggenc command-line encoder.
type OggEnc struct {
	binary    string
	extraArgs string
	rawFlag   string
}

// NewOggEnc constructs an encoder using defaults.
func NewOggEnc(opts ...Option) *OggEnc {
	o := &OggEnc{binary: "oggenc", rawFlag: "-r"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Binary returns the configured binary name.
func (o *OggEnc) Binary() string {
	return o.binary
}

// LookPath resolves the encoder binary on PATH.
func (o *OggEnc) LookPath() (string, error) {
	path, err := lookPath(o.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncoderNotFound, o.binary, err)
	}
	return path, nil
}

// FormatQuality renders a quality value with two significant digits.
func FormatQuality(q float64) string {
	return strconv.FormatFloat(q, 'g', 2, 64)
}

// Args builds the argument list for job, excluding the binary itself.
func (o *OggEnc) Args(job Job) ([]string, error) {
	args := []string{"-q", FormatQuality(job.Quality)}
	if job.SourceType == cue.TypeBinary {
		args = append(args, o.rawFlag)
	}
	if strings.TrimSpace(o.extraArgs) != "" {
		extra, err := shlex.Split(o.extraArgs)
		if err != nil {
			return nil, fmt.Errorf("parse encoder args %q: %w", o.extraArgs, err)
		}
		args = append(args, extra...)
	}
	return append(args, "-o", job.Output, job.Input), nil
}

// Encode runs oggenc for job and waits for it to exit.
func (o *OggEnc) Encode(ctx context.Context, job Job) error {
	if job.Input == "" {
		return errors.New("input path required")
	}
	if job.Output == "" {
		return errors.New("output path required")
	}

	args, err := o.Args(job)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := commandContext(ctx, o.binary, args...) //nolint:gosec
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &EncoderError{
			Binary: o.binary,
			Input:  job.Input,
			Err:    err,
			Stderr: tail(stderr.String(), stderrTail),
		}
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

var _ Encoder = (*OggEnc)(nil)
