//go:build integration

package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_Exists(t *testing.T) {
	fs := NewFS()
	tempDir := t.TempDir()

	// Existing file
	testFile := filepath.Join(tempDir, "present.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("content"), 0644))

	exists, err := fs.Exists(testFile)
	assert.NoError(t, err)
	assert.True(t, exists)

	// Existing directory
	exists, err = fs.Exists(tempDir)
	assert.NoError(t, err)
	assert.True(t, exists)

	// Missing path
	exists, err = fs.Exists(filepath.Join(tempDir, "missing.txt"))
	assert.NoError(t, err)
	assert.False(t, exists)
}
