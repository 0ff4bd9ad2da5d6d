package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "a", "b", "c")

	require.NoError(t, EnsureDir(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is a no-op
	require.NoError(t, EnsureDir(target))
}

func TestAtomicWriteFile(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "gen", "macros.rs")

		require.NoError(t, AtomicWriteFile(path, []byte("content\n"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content\n", string(data))
	})

	t.Run("replaces existing content", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "macros.rs")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, AtomicWriteFile(path, []byte("new"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "macros.rs")

		require.NoError(t, AtomicWriteFile(path, []byte("content"), 0644))

		entries, err := os.ReadDir(tempDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "macros.rs", entries[0].Name())
	})
}
