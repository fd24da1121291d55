package verifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anselrognlie/cue-convert/internal/logger"
)

// ============================================================================
// Test Helpers
// ============================================================================

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestVerifier(t *testing.T, method VerificationMethod) *Verifier {
	t.Helper()
	v, err := NewVerifier(method, logger.NewNop())
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return v
}

// ============================================================================
// NewVerifier Tests
// ============================================================================

func TestNewVerifier_DefaultsToNone(t *testing.T) {
	v, err := NewVerifier("", nil)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	if v.Method() != MethodNone {
		t.Errorf("Expected method %s, got %s", MethodNone, v.Method())
	}
}

func TestNewVerifier_InvalidMethod(t *testing.T) {
	if _, err := NewVerifier("count", logger.NewNop()); err == nil {
		t.Error("Expected error for unsupported method")
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    VerificationMethod
		wantErr bool
	}{
		{"", MethodNone, false},
		{"none", MethodNone, false},
		{"size", MethodSize, false},
		{"sha256", MethodSHA256, false},
		{"md5", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Verify Tests
// ============================================================================

func TestVerify_None(t *testing.T) {
	v := newTestVerifier(t, MethodNone)

	result, err := v.Verify(context.Background(), "/does/not/exist", "/nor/this")
	if err != nil {
		t.Fatalf("Verify with none should not touch files: %v", err)
	}
	if !result.Match {
		t.Error("Expected match for method none")
	}
	if v.Stats().FilesVerified != 0 {
		t.Error("Expected no files counted for method none")
	}
}

func TestVerify_SizeMatch(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.bin", "0123456789")
	dst := writeFile(t, dir, "b.bin", "abcdefghij")

	v := newTestVerifier(t, MethodSize)
	result, err := v.Verify(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Match || result.SourceSize != 10 || result.DestSize != 10 {
		t.Errorf("Unexpected result: %+v", result)
	}

	stats := v.Stats()
	if stats.FilesVerified != 1 || stats.FilesPassed != 1 || stats.TotalBytes != 10 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestVerify_SizeMismatch(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.bin", "0123456789")
	dst := writeFile(t, dir, "b.bin", "01234")

	v := newTestVerifier(t, MethodSize)
	result, err := v.Verify(context.Background(), src, dst)
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("Expected ErrMismatch, got %v", err)
	}
	if result == nil || result.Match {
		t.Fatal("Expected a non-matching result")
	}
	if !strings.Contains(result.ErrorMessage, "size mismatch") {
		t.Errorf("Unexpected message: %s", result.ErrorMessage)
	}
	if v.Stats().FilesFailed != 1 {
		t.Errorf("Expected 1 failed file, got %d", v.Stats().FilesFailed)
	}
}

func TestVerify_SHA256(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.bin", "same payload")
	good := writeFile(t, dir, "good.bin", "same payload")
	bad := writeFile(t, dir, "bad.bin", "SAME PAYLOAD")

	v := newTestVerifier(t, MethodSHA256)

	result, err := v.Verify(context.Background(), src, good)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.SourceHash == "" || result.SourceHash != result.DestHash {
		t.Errorf("Expected equal non-empty hashes, got %q and %q", result.SourceHash, result.DestHash)
	}

	result, err = v.Verify(context.Background(), src, bad)
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("Expected ErrMismatch, got %v", err)
	}
	if !strings.Contains(result.ErrorMessage, "hash mismatch") {
		t.Errorf("Expected hash mismatch message, got %s", result.ErrorMessage)
	}
}

func TestVerify_MissingFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.bin", "x")

	for _, m := range []VerificationMethod{MethodSize, MethodSHA256} {
		v := newTestVerifier(t, m)
		if _, err := v.Verify(context.Background(), src, filepath.Join(dir, "missing")); err == nil {
			t.Errorf("%s: expected error for missing destination", m)
		} else if errors.Is(err, ErrMismatch) {
			t.Errorf("%s: missing file should not be reported as a mismatch", m)
		}
	}
}

func TestVerify_Cancelled(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.bin", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := newTestVerifier(t, MethodSHA256)
	if _, err := v.Verify(ctx, src, src); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
