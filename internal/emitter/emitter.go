package emitter

import (
	"bytes"
	"strconv"
	"strings"

	"permutegen/internal/errors"
	"permutegen/internal/permute"
	"permutegen/internal/profile"
	"permutegen/internal/utils"
)

// Stats describes one rendered artifact
type Stats struct {
	Signatures   int   // invocation lines emitted
	GuardedLines int   // invocation lines preceded by the guard attribute
	PerArity     []int // signature count per arity, index is the arity
	Bytes        int   // total artifact size
	Lines        int   // total line count
}

// Emitter renders the macro invocation table for a profile
type Emitter struct {
	profile *profile.Profile
}

// New creates an emitter for the given profile
func New(p *profile.Profile) *Emitter {
	return &Emitter{profile: p}
}

// Render produces the complete artifact in memory.
// The profile is validated before anything is rendered, so configuration
// problems surface before the caller touches the filesystem. Output is
// deterministic: the same profile always renders the same bytes.
func (e *Emitter) Render() ([]byte, Stats, error) {
	p := e.profile
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}

	modes, err := p.SelectedModes()
	if err != nil {
		return nil, Stats{}, err
	}

	g := p.Grammar
	indent1 := g.IndentUnit
	indent2 := g.IndentUnit + g.IndentUnit

	stats := Stats{PerArity: make([]int, p.MaxArity+1)}

	var sb strings.Builder
	sb.WriteString(p.Header())
	sb.WriteString("\n")
	sb.WriteString("macro_rules! ")
	sb.WriteString(g.MacroName)
	sb.WriteString(" {\n")
	sb.WriteString(indent1)
	sb.WriteString("(")
	sb.WriteString(g.CalleeToken)
	sb.WriteString(":")
	sb.WriteString(g.FragmentSpec)
	sb.WriteString(") => {\n")

	err = permute.VisitSignatures(modes, p.Slots(), p.MaxArity, func(sig permute.Signature) error {
		if sig.Arity >= p.GuardThreshold {
			sb.WriteString(indent2)
			sb.WriteString(g.GuardLine)
			sb.WriteString("\n")
			stats.GuardedLines++
		}
		sb.WriteString(indent2)
		sb.WriteString(FormatSignature(g, sig))
		sb.WriteString("\n")
		stats.Signatures++
		stats.PerArity[sig.Arity]++
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	sb.WriteString(indent1)
	sb.WriteString("}\n")
	sb.WriteString("}\n")

	content := []byte(sb.String())
	stats.Bytes = len(content)
	stats.Lines = bytes.Count(content, []byte("\n"))
	return content, stats, nil
}

// WriteArtifact renders the profile's artifact and writes it to path as a
// single full replacement
func (e *Emitter) WriteArtifact(path string) (Stats, error) {
	content, stats, err := e.Render()
	if err != nil {
		return Stats{}, err
	}

	if err := utils.AtomicWriteFile(path, content, 0644); err != nil {
		return Stats{}, errors.WrapFileSystemError("write", path, err)
	}

	return stats, nil
}

// FormatSignature renders the invocation line for one signature, without
// indentation or guard
func FormatSignature(g profile.Grammar, sig permute.Signature) string {
	var sb strings.Builder
	sb.WriteString(g.CalleeToken)
	sb.WriteString("!(")
	sb.WriteString(strconv.Itoa(sig.Arity))
	for _, param := range sig.Params {
		sb.WriteString(", ")
		writeGroup(&sb, g, param)
	}
	sb.WriteString(");")
	return sb.String()
}

// writeGroup renders one parameter group of an invocation line
func writeGroup(sb *strings.Builder, g profile.Grammar, p permute.Param) {
	sb.WriteString("{")
	sb.WriteString(p.Slot.Name)
	sb.WriteString(", ")
	sb.WriteString(p.Slot.Binding())
	sb.WriteString(", ")
	sb.WriteString(p.Mode.TypeExpression(p.Slot.Name))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(p.Slot.Index))
	sb.WriteString(", {")
	sb.WriteString(p.Mode.Modifier())
	sb.WriteString("}, {")
	sb.WriteString(strings.Join(p.Mode.Capabilities(), g.CapabilityJoin))
	sb.WriteString("}, ")
	sb.WriteString(p.Mode.CoercionFunc())
	sb.WriteString("}")
}
