package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAssembly(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "prog")

	path, err := WriteAssembly(stem, "section .text\n")
	require.NoError(t, err)
	assert.Equal(t, stem+".asm", path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "section .text\n", string(contents))
}
