package permute

import (
	"strconv"
	"strings"
)

// Slot is a named parameter position in a signature
type Slot struct {
	Index int    // zero-based position
	Name  string // type-level name, e.g. "A"
}

// Binding returns the value-level name for the slot
func (s Slot) Binding() string {
	return strings.ToLower(s.Name)
}

// MakeSlots builds the slot list from ordered type-level names
func MakeSlots(names []string) []Slot {
	slots := make([]Slot, len(names))
	for i, name := range names {
		slots[i] = Slot{Index: i, Name: name}
	}
	return slots
}

// Param pairs a slot with the mode assigned to it
type Param struct {
	Slot Slot
	Mode Mode
}

// Signature is one complete mode assignment over the first Arity slots
type Signature struct {
	Arity  int
	Params []Param
}

// Modes returns the assigned modes in slot order
func (s Signature) Modes() []Mode {
	modes := make([]Mode, len(s.Params))
	for i, p := range s.Params {
		modes[i] = p.Mode
	}
	return modes
}

// String renders a compact description for diagnostics and tests
func (s Signature) String() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Mode.String()
	}
	return strconv.Itoa(s.Arity) + ":[" + strings.Join(names, " ") + "]"
}
