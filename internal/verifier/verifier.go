// Package verifier checks that media copied into the target tree matches
// its source.
package verifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/anselrognlie/cue-convert/internal/logger"
)

// ErrMismatch is returned when a copy does not match its source.
var ErrMismatch = errors.New("verification mismatch")

// VerificationMethod defines how to verify a copy.
type VerificationMethod string

const (
	// MethodNone skips verification entirely
	MethodNone VerificationMethod = "none"
	// MethodSize compares file sizes (fast)
	MethodSize VerificationMethod = "size"
	// MethodSHA256 compares SHA256 digests of both files (reads both in full)
	MethodSHA256 VerificationMethod = "sha256"
)

// ParseMethod resolves a configured method name. Empty means MethodNone.
func ParseMethod(s string) (VerificationMethod, error) {
	switch VerificationMethod(s) {
	case "", MethodNone:
		return MethodNone, nil
	case MethodSize, MethodSHA256:
		return VerificationMethod(s), nil
	default:
		return "", fmt.Errorf("unsupported verification method: %q", s)
	}
}

// VerifyResult holds the outcome for one copied file.
type VerifyResult struct {
	Source       string
	Dest         string
	Method       VerificationMethod
	SourceSize   int64
	DestSize     int64
	SourceHash   string
	DestHash     string
	Match        bool
	ErrorMessage string
}

// VerifyStats accumulates results across a run.
type VerifyStats struct {
	FilesVerified int
	FilesPassed   int
	FilesFailed   int
	TotalBytes    int64
	Method        VerificationMethod
}

// Verifier compares copied media against its source.
type Verifier struct {
	method VerificationMethod
	logger *logger.Logger
	stats  VerifyStats
}

// NewVerifier creates a verifier using method.
func NewVerifier(method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}

	if method == "" {
		method = MethodNone
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}

	return &Verifier{
		method: method,
		logger: log,
		stats:  VerifyStats{Method: method},
	}, nil
}

// Method returns the configured method.
func (v *Verifier) Method() VerificationMethod {
	return v.method
}

// Stats returns the totals so far.
func (v *Verifier) Stats() VerifyStats {
	return v.stats
}

// Verify compares dst against src. A mismatch returns the result along
// with an error wrapping ErrMismatch; I/O failures return only an error.
func (v *Verifier) Verify(ctx context.Context, src, dst string) (*VerifyResult, error) {
	if v.method == MethodNone {
		return &VerifyResult{Source: src, Dest: dst, Method: MethodNone, Match: true}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verification interrupted: %w", err)
	}

	var (
		result *VerifyResult
		err    error
	)
	switch v.method {
	case MethodSize:
		result, err = v.verifyBySize(src, dst)
	case MethodSHA256:
		result, err = v.verifyBySHA256(ctx, src, dst)
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", v.method)
	}
	if err != nil {
		return nil, err
	}

	v.stats.FilesVerified++
	v.stats.TotalBytes += result.SourceSize

	if !result.Match {
		v.stats.FilesFailed++
		v.logger.Errorw("Verification FAILED", "source", src, "dest", dst, "reason", result.ErrorMessage)
		return result, fmt.Errorf("%w: %s: %s", ErrMismatch, dst, result.ErrorMessage)
	}

	v.stats.FilesPassed++
	v.logger.Debugw("Verification passed", "dest", dst, "method", v.method, "size", humanize.Bytes(uint64(result.SourceSize)))
	return result, nil
}

func (v *Verifier) verifyBySize(src, dst string) (*VerifyResult, error) {
	srcSize, err := fileSize(src)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	dstSize, err := fileSize(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to stat destination: %w", err)
	}

	result := &VerifyResult{
		Source:     src,
		Dest:       dst,
		Method:     MethodSize,
		SourceSize: srcSize,
		DestSize:   dstSize,
		Match:      srcSize == dstSize,
	}
	if !result.Match {
		result.ErrorMessage = sizeMismatch(srcSize, dstSize)
	}
	return result, nil
}

func (v *Verifier) verifyBySHA256(ctx context.Context, src, dst string) (*VerifyResult, error) {
	srcHash, srcSize, err := hashFile(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to hash source: %w", err)
	}
	dstHash, dstSize, err := hashFile(ctx, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to hash destination: %w", err)
	}

	result := &VerifyResult{
		Source:     src,
		Dest:       dst,
		Method:     MethodSHA256,
		SourceSize: srcSize,
		DestSize:   dstSize,
		SourceHash: srcHash,
		DestHash:   dstHash,
		Match:      srcHash == dstHash,
	}
	if !result.Match {
		if srcSize != dstSize {
			result.ErrorMessage = sizeMismatch(srcSize, dstSize)
		} else {
			result.ErrorMessage = fmt.Sprintf("hash mismatch: source=%s, dest=%s", srcHash, dstHash)
		}
	}
	return result, nil
}

func sizeMismatch(src, dst int64) string {
	return fmt.Sprintf("size mismatch: source=%s (%d bytes), dest=%s (%d bytes)",
		humanize.Bytes(uint64(src)), src, humanize.Bytes(uint64(dst)), dst)
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ctxReader stops a long hash when the run is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func hashFile(ctx context.Context, path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, ctxReader{ctx: ctx, r: f})
	if err != nil {
		return "", n, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
