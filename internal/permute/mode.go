package permute

import (
	"fmt"
	"strings"

	"permutegen/internal/errors"
)

// Mode identifies how a signature slot receives its value
type Mode int

const (
	// ModeOwned consumes the value
	ModeOwned Mode = iota
	// ModeRef borrows the value immutably
	ModeRef
	// ModeMut borrows the value mutably
	ModeMut
)

// String returns the profile name of the mode
func (m Mode) String() string {
	switch m {
	case ModeOwned:
		return "owned"
	case ModeRef:
		return "ref"
	case ModeMut:
		return "mut"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// TypeExpression returns the consuming-side type for a slot of type v
func (m Mode) TypeExpression(v string) string {
	switch m {
	case ModeRef:
		return "Ref<" + v + ">"
	case ModeMut:
		return "Mut<" + v + ">"
	default:
		return v
	}
}

// Modifier returns the borrow modifier token, empty for owned slots
func (m Mode) Modifier() string {
	switch m {
	case ModeRef:
		return "&"
	case ModeMut:
		return "&mut"
	default:
		return ""
	}
}

// Capabilities returns the constraints a slot type must satisfy for the mode
func (m Mode) Capabilities() []string {
	switch m {
	case ModeRef:
		return []string{"?Sized", "UnsafeToRef"}
	case ModeMut:
		return []string{"?Sized", "UnsafeToMut"}
	default:
		return []string{"FromValue"}
	}
}

// CoercionFunc returns the conversion entry point used to obtain the value
func (m Mode) CoercionFunc() string {
	switch m {
	case ModeRef:
		return "unsafe_to_ref"
	case ModeMut:
		return "unsafe_to_mut"
	default:
		return "from_value"
	}
}

// Known reports whether the mode is one of the defined variants
func (m Mode) Known() bool {
	return m == ModeOwned || m == ModeRef || m == ModeMut
}

// Validate checks that the mode's intrinsic definition is complete
func (m Mode) Validate() error {
	if !m.Known() {
		return errors.Newf(errors.ConfigurationErrorCode, "unknown parameter mode %d", int(m))
	}
	if len(m.Capabilities()) == 0 {
		return errors.ConfigurationError("modes", fmt.Sprintf("mode '%s' has an empty capability set", m))
	}
	if m.CoercionFunc() == "" {
		return errors.ConfigurationError("modes", fmt.Sprintf("mode '%s' has no coercion function", m))
	}
	return nil
}

// AllModes returns the defined modes in their reference order
func AllModes() []Mode {
	return []Mode{ModeOwned, ModeRef, ModeMut}
}

// ParseMode resolves a profile mode name to its Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "owned":
		return ModeOwned, nil
	case "ref":
		return ModeRef, nil
	case "mut":
		return ModeMut, nil
	default:
		return ModeOwned, errors.Newf(errors.ConfigurationErrorCode, "unknown parameter mode '%s'", name).
			WithSuggestion("Valid modes are: owned, ref, mut")
	}
}
