package permute

import (
	"testing"

	"permutegen/internal/errors"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeOwned, "owned"},
		{ModeRef, "ref"},
		{ModeMut, "mut"},
		{Mode(7), "Mode(7)"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.expected)
		}
	}
}

func TestMode_TypeExpression(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeOwned, "A"},
		{ModeRef, "Ref<A>"},
		{ModeMut, "Mut<A>"},
	}

	for _, tt := range tests {
		if got := tt.mode.TypeExpression("A"); got != tt.expected {
			t.Errorf("%s.TypeExpression(A) = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestMode_Modifier(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeOwned, ""},
		{ModeRef, "&"},
		{ModeMut, "&mut"},
	}

	for _, tt := range tests {
		if got := tt.mode.Modifier(); got != tt.expected {
			t.Errorf("%s.Modifier() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestMode_Capabilities(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected []string
	}{
		{ModeOwned, []string{"FromValue"}},
		{ModeRef, []string{"?Sized", "UnsafeToRef"}},
		{ModeMut, []string{"?Sized", "UnsafeToMut"}},
	}

	for _, tt := range tests {
		got := tt.mode.Capabilities()
		if len(got) != len(tt.expected) {
			t.Errorf("%s.Capabilities() = %v, want %v", tt.mode, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("%s.Capabilities()[%d] = %q, want %q", tt.mode, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestMode_CoercionFunc(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeOwned, "from_value"},
		{ModeRef, "unsafe_to_ref"},
		{ModeMut, "unsafe_to_mut"},
	}

	for _, tt := range tests {
		if got := tt.mode.CoercionFunc(); got != tt.expected {
			t.Errorf("%s.CoercionFunc() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

func TestMode_Validate(t *testing.T) {
	for _, mode := range AllModes() {
		if err := mode.Validate(); err != nil {
			t.Errorf("expected %s to validate, got %v", mode, err)
		}
	}

	err := Mode(9).Validate()
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !errors.IsCode(err, errors.ConfigurationErrorCode) {
		t.Errorf("expected ConfigurationErrorCode, got %v", errors.CodeOf(err))
	}
}

func TestAllModes(t *testing.T) {
	modes := AllModes()
	expected := []Mode{ModeOwned, ModeRef, ModeMut}

	if len(modes) != len(expected) {
		t.Fatalf("expected %d modes, got %d", len(expected), len(modes))
	}
	for i := range modes {
		if modes[i] != expected[i] {
			t.Errorf("AllModes()[%d] = %s, want %s", i, modes[i], expected[i])
		}
	}
}

func TestParseMode(t *testing.T) {
	valid := []struct {
		name     string
		expected Mode
	}{
		{"owned", ModeOwned},
		{"ref", ModeRef},
		{"mut", ModeMut},
		{"OWNED", ModeOwned},
		{" mut ", ModeMut},
	}

	for _, tt := range valid {
		mode, err := ParseMode(tt.name)
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", tt.name, err)
			continue
		}
		if mode != tt.expected {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.name, mode, tt.expected)
		}
	}

	_, err := ParseMode("shared")
	if err == nil {
		t.Fatal("expected error for unknown mode name")
	}
	if !errors.IsCode(err, errors.ConfigurationErrorCode) {
		t.Errorf("expected ConfigurationErrorCode, got %v", errors.CodeOf(err))
	}

	genErr, ok := err.(errors.GenError)
	if !ok {
		t.Fatal("expected a GenError")
	}
	if len(genErr.Suggestions()) == 0 {
		t.Error("expected a suggestion listing the valid modes")
	}
}
