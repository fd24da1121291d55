package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateCommandChecks(t *testing.T) {
	doc := validateCmd.Long
	assert.Contains(t, doc, "Checks performed")
	assert.Contains(t, doc, "Configuration")
	assert.Contains(t, doc, "Encoder binary")
	assert.Contains(t, doc, "Example:")
	assert.Contains(t, doc, "cueconvert validate")
}

func TestRunValidate_Passes(t *testing.T) {
	// The running test binary stands in for an installed encoder.
	self, err := os.Executable()
	require.NoError(t, err)

	filter := filepath.Join(t.TempDir(), "filter.txt")
	require.NoError(t, os.WriteFile(filter, []byte("live\nbootleg\n"), 0o644))

	useConfig(t, quietLogging+`
encoder:
  binary: `+self+`
conversion:
  filter_path: `+filter+`
`)
	out := captureOutput(t)

	require.NoError(t, runValidate(validateCmd, nil))
	assert.Contains(t, out.String(), "✅ Configuration is valid (codec ogg, quality 3)")
	assert.Contains(t, out.String(), "✅ Encoder: "+self+" ("+self+")")
	assert.Contains(t, out.String(), "✅ Filter: 2 pattern(s)")
	assert.Contains(t, out.String(), "=== Validation Complete ===")
}

func TestRunValidate_MissingEncoder(t *testing.T) {
	useConfig(t, quietLogging+`
encoder:
  binary: cueconvert-no-such-encoder
`)
	out := captureOutput(t)

	err := runValidate(validateCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "❌ Encoder:")
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	useConfig(t, `
conversion:
  quality: 99
`)
	out := captureOutput(t)

	err := runValidate(validateCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "❌")
}
