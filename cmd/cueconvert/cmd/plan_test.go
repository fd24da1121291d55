package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anselrognlie/cue-convert/internal/cue"
)

func TestPlanCommandStructure(t *testing.T) {
	assert.NotNil(t, planCmd)
	assert.Equal(t, "plan", planCmd.Name())
	assert.NotEmpty(t, planCmd.Short)
	assert.NotEmpty(t, planCmd.Long)
	assert.NotNil(t, planCmd.RunE)
	assert.NotNil(t, planCmd.Flags().Lookup("codec"))
}

func TestRunPlan(t *testing.T) {
	useConfig(t, quietLogging)
	out := captureOutput(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"disc.cue": `FILE disc.bin BINARY
TRACK 1 AUDIO
INDEX 1 0:0:0
FILE "bonus.mp3" MP3
TRACK 2 AUDIO
INDEX 1 0:0:0
`,
	})

	require.NoError(t, runPlan(planCmd, []string{filepath.Join(dir, "disc.cue")}))

	got := out.String()
	assert.Contains(t, got, "Source                 | Target (ogg)\n")
	assert.Contains(t, got, `FILE "disc.bin" BINARY | FILE "disc.ogg" OGG`+"\n")
	assert.Contains(t, got, `FILE "bonus.mp3" MP3   | FILE "bonus.mp3" MP3`+"\n")
	assert.Contains(t, got, "  encode disc.bin -> disc.ogg\n")
	assert.Contains(t, got, "  copy   bonus.mp3 -> bonus.mp3\n")
}

func TestRunPlan_ParseErrors(t *testing.T) {
	useConfig(t, quietLogging)
	out := captureOutput(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.cue": "FILE \"a.bin\" BINARY\n  TRACK one AUDIO\n",
	})

	err := runPlan(planCmd, []string{filepath.Join(dir, "bad.cue")})
	assert.ErrorIs(t, err, cue.ErrInvalidSheet)
	assert.Contains(t, out.String(), "     2:   TRACK one AUDIO\n")
}

func TestPrintSideBySide(t *testing.T) {
	out := captureOutput(t)

	printSideBySide("L", []string{"日本", "abc", "x"}, "R", []string{"1", "2"})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"L    | R",
		"---- | -",
		"日本 | 1",
		"abc  | 2",
		"x    | ",
	}, lines)
}
