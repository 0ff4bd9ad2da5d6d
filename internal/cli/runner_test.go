package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permutegen/internal/errors"
	"permutegen/internal/utils"
)

// newTestRunner builds a runner whose diagnostics go nowhere
func newTestRunner() *Runner {
	diagnostics := utils.NewDiagnosticSystemWithWriters(
		utils.DiagnosticSilent, &bytes.Buffer{}, &bytes.Buffer{})
	return NewRunnerWithDiagnostics(diagnostics)
}

func TestRunner_Generate(t *testing.T) {
	root := t.TempDir()
	runner := newTestRunner()

	require.NoError(t, runner.Run(Config{RootPath: root}))

	artifactPath := filepath.Join(root, "macros.rs")
	info, err := os.Stat(artifactPath)
	require.NoError(t, err)

	summary := runner.GetSummary()
	assert.Equal(t, artifactPath, summary.OutputPath)
	assert.Equal(t, 364, summary.Signatures)
	assert.Equal(t, 324, summary.GuardedLines)
	assert.Equal(t, []int{1, 3, 9, 27, 81, 243}, summary.PerArity)
	assert.Equal(t, info.Size(), int64(summary.Bytes))
	assert.Equal(t, 693, summary.Lines)
	assert.Greater(t, summary.Duration, time.Duration(0))
}

func TestRunner_GenerateOutputOverride(t *testing.T) {
	root := t.TempDir()
	runner := newTestRunner()

	require.NoError(t, runner.Run(Config{RootPath: root, OutputPath: filepath.Join("gen", "table.rs")}))

	artifactPath := filepath.Join(root, "gen", "table.rs")
	_, err := os.Stat(artifactPath)
	require.NoError(t, err)
	assert.Equal(t, artifactPath, runner.GetSummary().OutputPath)
}

func TestRunner_GenerateAbsoluteOutput(t *testing.T) {
	artifactPath := filepath.Join(t.TempDir(), "abs.rs")
	runner := newTestRunner()

	require.NoError(t, runner.Run(Config{OutputPath: artifactPath}))

	_, err := os.Stat(artifactPath)
	require.NoError(t, err)
	assert.Equal(t, artifactPath, runner.GetSummary().OutputPath)
}

func TestRunner_CheckAfterGenerate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, newTestRunner().Run(Config{RootPath: root}))

	checker := newTestRunner()
	require.NoError(t, checker.Run(Config{RootPath: root, Check: true}))

	// Check mode reads the artifact, it does not re-render statistics
	summary := checker.GetSummary()
	assert.Equal(t, filepath.Join(root, "macros.rs"), summary.OutputPath)
	assert.Zero(t, summary.Signatures)
	assert.Greater(t, summary.Duration, time.Duration(0))
}

func TestRunner_CheckDetectsDrift(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, newTestRunner().Run(Config{RootPath: root}))

	artifactPath := filepath.Join(root, "macros.rs")
	content, err := os.ReadFile(artifactPath)
	require.NoError(t, err)
	tampered := strings.Replace(string(content),
		"        $call!(0);", "         $call!(0);", 1)
	require.NoError(t, os.WriteFile(artifactPath, []byte(tampered), 0644))

	err = newTestRunner().Run(Config{RootPath: root, Check: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.DriftErrorCode))
}

func TestRunner_CheckMissingArtifact(t *testing.T) {
	err := newTestRunner().Run(Config{RootPath: t.TempDir(), Check: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.FileSystemErrorCode))
}

func TestRunner_DryRun(t *testing.T) {
	root := t.TempDir()
	runner := newTestRunner()

	require.NoError(t, runner.Run(Config{RootPath: root, DryRun: true}))

	_, err := os.Stat(filepath.Join(root, "macros.rs"))
	assert.True(t, os.IsNotExist(err))

	summary := runner.GetSummary()
	assert.Equal(t, 364, summary.Signatures)
	assert.Greater(t, summary.Bytes, 0)
}

func TestRunner_ProfileSelectsOutputAndShape(t *testing.T) {
	root := t.TempDir()
	profilePath := filepath.Join(root, "permutegen.yaml")
	require.NoError(t, os.WriteFile(profilePath,
		[]byte("output_path: custom.rs\nmax_arity: 2\n"), 0644))

	runner := newTestRunner()
	require.NoError(t, runner.Run(Config{ProfilePath: profilePath, RootPath: root}))

	_, err := os.Stat(filepath.Join(root, "custom.rs"))
	require.NoError(t, err)
	assert.Equal(t, 13, runner.GetSummary().Signatures)
}

func TestRunner_BadProfileFile(t *testing.T) {
	root := t.TempDir()
	profilePath := filepath.Join(root, "permutegen.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("bogus: true\n"), 0644))

	err := newTestRunner().Run(Config{ProfilePath: profilePath, RootPath: root})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ProfileErrorCode))

	_, statErr := os.Stat(filepath.Join(root, "macros.rs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_InvalidProfileValues(t *testing.T) {
	root := t.TempDir()
	profilePath := filepath.Join(root, "permutegen.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("max_arity: 9\n"), 0644))

	err := newTestRunner().Run(Config{ProfilePath: profilePath, RootPath: root})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ConfigurationErrorCode))

	_, statErr := os.Stat(filepath.Join(root, "macros.rs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewRunner(t *testing.T) {
	runner := NewRunner()
	require.NotNil(t, runner)
	assert.Zero(t, runner.GetSummary())
}
