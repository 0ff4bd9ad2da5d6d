package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permutegen/internal/emitter"
	"permutegen/internal/errors"
	"permutegen/internal/profile"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macros.rs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// singleVerification unwraps the one verification error a check produced
func singleVerification(t *testing.T, err error) *errors.VerificationError {
	t.Helper()
	multi, ok := err.(*errors.MultipleErrors)
	require.True(t, ok, "expected *errors.MultipleErrors, got %T", err)
	require.Len(t, multi.Errors, 1)
	verr, ok := multi.Errors[0].(*errors.VerificationError)
	require.True(t, ok, "expected *errors.VerificationError, got %T", multi.Errors[0])
	return verr
}

func TestCheck_UpToDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.rs")
	_, err := emitter.New(profile.Default()).WriteArtifact(path)
	require.NoError(t, err)

	assert.NoError(t, NewChecker(profile.Default()).Check(path))
}

func TestCheck_WhitespaceDrift(t *testing.T) {
	// Extra indentation parses identically, so only the byte comparison sees it
	tampered := strings.Replace(renderDefault(t),
		"        $call!(0);", "         $call!(0);", 1)
	path := writeArtifact(t, tampered)

	err := NewChecker(profile.Default()).Check(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.DriftErrorCode))

	drift, ok := err.(*errors.DriftError)
	require.True(t, ok)
	assert.Equal(t, 4, drift.LineNum)
	assert.Equal(t, "        $call!(0);", drift.Expected)
	assert.Equal(t, "         $call!(0);", drift.Actual)
	assert.Contains(t, err.Error(), "out of date")
}

func TestCheck_TamperedOrdinal(t *testing.T) {
	tampered := strings.Replace(renderDefault(t),
		"{B, b, B, 1,", "{B, b, B, 7,", 1)
	path := writeArtifact(t, tampered)

	err := NewChecker(profile.Default()).Check(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.VerificationErrorCode))

	verr := singleVerification(t, err)
	assert.Equal(t, "ordinal", verr.Rule)
	assert.Contains(t, verr.Error(), "has ordinal 7, expected 1")
}

func TestCheck_TamperedCapabilities(t *testing.T) {
	tampered := strings.Replace(renderDefault(t),
		"{?Sized + UnsafeToRef}", "{?Sized + UnsafeToOther}", 1)
	path := writeArtifact(t, tampered)

	err := NewChecker(profile.Default()).Check(path)
	require.Error(t, err)

	verr := singleVerification(t, err)
	assert.Equal(t, "capabilities", verr.Rule)
}

func TestCheck_HeaderMismatch(t *testing.T) {
	other := profile.Default()
	other.ToolName = "some_other_tool"
	content, _, err := emitter.New(other).Render()
	require.NoError(t, err)
	path := writeArtifact(t, string(content))

	err = NewChecker(profile.Default()).Check(path)
	require.Error(t, err)

	verr := singleVerification(t, err)
	assert.Equal(t, "header_note", verr.Rule)
	assert.Contains(t, verr.Error(), "header reads")
}

func TestCheck_SignatureCountMismatch(t *testing.T) {
	path := writeArtifact(t, renderDefault(t))

	smaller := profile.Default()
	smaller.MaxArity = 4

	err := NewChecker(smaller).Check(path)
	require.Error(t, err)

	verr := singleVerification(t, err)
	assert.Equal(t, "signature_count", verr.Rule)
	assert.Contains(t, verr.Error(), "found 364 invocations, profile produces 121")
}

func TestCheck_MissingGuards(t *testing.T) {
	unguarded := profile.Default()
	unguarded.GuardThreshold = 5
	content, _, err := emitter.New(unguarded).Render()
	require.NoError(t, err)
	path := writeArtifact(t, string(content))

	// The default profile guards arity 4 and up, so all 81 arity 4
	// invocations are flagged
	err = NewChecker(profile.Default()).Check(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.VerificationErrorCode))
	assert.Contains(t, err.Error(), "multiple errors (81 total):")
	assert.Contains(t, err.Error(), "missing its guard attribute")
}

func TestCheck_Truncated(t *testing.T) {
	content := renderDefault(t)
	path := writeArtifact(t, content[:200])

	err := NewChecker(profile.Default()).Check(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.SyntaxErrorCode))
}

func TestCheck_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.rs")

	err := NewChecker(profile.Default()).Check(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.FileSystemErrorCode))
}

func TestCheck_InvalidProfile(t *testing.T) {
	p := profile.Default()
	p.MaxArity = -1

	// Configuration problems surface before the artifact is touched
	err := NewChecker(p).Check(filepath.Join(t.TempDir(), "macros.rs"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ConfigurationErrorCode))
}

func TestFirstDivergence(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		line     int
		want     string
		got      string
	}{
		{"identical", "a\nb\n", "a\nb\n", 0, "", ""},
		{"differs mid file", "a\nb\nc\n", "a\nX\nc\n", 2, "b", "X"},
		{"actual truncated", "a\nb\nc\n", "a\nb\n", 3, "c", ""},
		{"actual longer", "a\n", "a\nextra\n", 2, "", "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, want, got := firstDivergence([]byte(tt.expected), []byte(tt.actual))
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.want, want)
			assert.Equal(t, tt.got, got)
		})
	}
}
