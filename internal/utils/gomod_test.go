package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModParser_ParseModuleName(t *testing.T) {
	parser := NewGoModParser(NewFileReader())

	t.Run("valid go.mod", func(t *testing.T) {
		tempDir := t.TempDir()
		goModPath := filepath.Join(tempDir, "go.mod")
		content := `module github.com/example/project

go 1.25

require gopkg.in/yaml.v3 v3.0.1
`
		require.NoError(t, os.WriteFile(goModPath, []byte(content), 0644))

		name, err := parser.ParseModuleName(goModPath)
		require.NoError(t, err)
		assert.Equal(t, "github.com/example/project", name)
	})

	t.Run("wrong file name", func(t *testing.T) {
		_, err := parser.ParseModuleName("config.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a go.mod file")
	})

	t.Run("no module declaration", func(t *testing.T) {
		tempDir := t.TempDir()
		goModPath := filepath.Join(tempDir, "go.mod")
		require.NoError(t, os.WriteFile(goModPath, []byte("go 1.25\n"), 0644))

		_, err := parser.ParseModuleName(goModPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no module declaration")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.ParseModuleName(filepath.Join(t.TempDir(), "go.mod"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read go.mod")
	})
}

func TestGoModParser_FindGoModFile(t *testing.T) {
	parser := NewGoModParser(NewFileReader())

	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "internal", "deep", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	goModPath := filepath.Join(tempDir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module example\n"), 0644))

	t.Run("walks up from nested directory", func(t *testing.T) {
		found, err := parser.FindGoModFile(nested)
		require.NoError(t, err)
		assert.Equal(t, goModPath, found)
	})

	t.Run("finds in start directory", func(t *testing.T) {
		found, err := parser.FindGoModFile(tempDir)
		require.NoError(t, err)
		assert.Equal(t, goModPath, found)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := parser.FindGoModFile(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "go.mod file not found")
	})
}

func TestGoModParser_FindWorkspaceRoot(t *testing.T) {
	parser := NewGoModParser(NewFileReader())

	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "src", "generator")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "go.mod"), []byte("module example\n"), 0644))

	root, err := parser.FindWorkspaceRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, tempDir, root)
}
