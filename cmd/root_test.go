package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileArgsValidation(t *testing.T) {
	assert.EqualError(t, fileArgs(nil, nil), "no file given")
	assert.EqualError(t, fileArgs(nil, []string{"a.zila", "b.zila"}), "multiple input files specified: a.zila, b.zila")
	assert.NoError(t, fileArgs(nil, []string{"a.zila"}))
}

func TestRunEmitsAssemblyOnly(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.zila")
	require.NoError(t, os.WriteFile(src, []byte("1 1 + exit\n"), 0o644))

	stem := filepath.Join(dir, "out")
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--emit-asm-only", "-o", stem, src})
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	require.NoError(t, cmd.Execute())

	asm, err := os.ReadFile(stem + ".asm")
	require.NoError(t, err)
	assert.Contains(t, string(asm), "_start:")
	assert.Contains(t, string(asm), "ADD")
}

func TestRepeatedOutputFlagIsRejected(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.zila")
	require.NoError(t, os.WriteFile(src, []byte("1 1 + exit\n"), 0o644))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"-o", "a", "-o", "b", src})
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetOut(&stderr)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may only be given once")
}

func TestRunReportsAnalysisError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.zila")
	require.NoError(t, os.WriteFile(src, []byte("1 ~\n"), 0o644))

	stem := filepath.Join(dir, "out")
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--emit-asm-only", "-o", stem, src})
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "undefined word")
}
