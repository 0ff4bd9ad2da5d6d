package verify

import (
	"fmt"
	"strings"

	"permutegen/internal/emitter"
	"permutegen/internal/errors"
	"permutegen/internal/permute"
	"permutegen/internal/profile"
)

// Checker validates an on-disk artifact against a profile
type Checker struct {
	parser  *Parser
	profile *profile.Profile
}

// NewChecker creates a checker for the given profile
func NewChecker(p *profile.Profile) *Checker {
	return &Checker{
		parser:  NewParser(),
		profile: p,
	}
}

// Check verifies that the artifact at path is exactly what the profile would
// generate and that its structure honors the consumer contract.
// Nothing is written.
func (c *Checker) Check(path string) error {
	// Render first so configuration problems surface before the file is read
	expected, _, err := emitter.New(c.profile).Render()
	if err != nil {
		return err
	}

	actual, err := c.parser.reader.ReadFile(path)
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}

	artifact, err := c.parser.ParseSource(path, actual)
	if err != nil {
		return err
	}

	if err := c.validateStructure(path, artifact); err != nil {
		return err
	}

	if string(expected) != actual {
		line, want, got := firstDivergence(expected, []byte(actual))
		return errors.NewDriftError(path, line, want, got)
	}

	return nil
}

// validateStructure checks the consumer contract: wrapper names, invocation
// order, ordinals, guard placement, and per-mode field consistency
func (c *Checker) validateStructure(path string, artifact *Artifact) error {
	p := c.profile
	g := p.Grammar

	var multi *errors.MultipleErrors

	if artifact.Header != p.Header() {
		errors.AddVerificationError(&multi, path, "header_note",
			fmt.Sprintf("header reads '%s', profile expects '%s'", artifact.Header, p.Header()))
	}
	if artifact.MacroName != g.MacroName {
		errors.AddVerificationError(&multi, path, "macro_name",
			fmt.Sprintf("macro is named '%s', profile expects '%s'", artifact.MacroName, g.MacroName))
	}
	if artifact.Callee != g.CalleeToken {
		errors.AddVerificationError(&multi, path, "callee_token",
			fmt.Sprintf("macro arm binds '%s', profile expects '%s'", artifact.Callee, g.CalleeToken))
	}
	if artifact.FragmentSpec != g.FragmentSpec {
		errors.AddVerificationError(&multi, path, "fragment_spec",
			fmt.Sprintf("callee fragment is '%s', profile expects '%s'", artifact.FragmentSpec, g.FragmentSpec))
	}

	expectedCount := p.SignatureCount()
	if len(artifact.Invocations) != expectedCount {
		// Positional comparison is meaningless when the counts differ
		errors.AddVerificationError(&multi, path, "signature_count",
			fmt.Sprintf("found %d invocations, profile produces %d", len(artifact.Invocations), expectedCount))
		return multi
	}

	modes, err := p.SelectedModes()
	if err != nil {
		return err
	}

	index := 0
	err = permute.VisitSignatures(modes, p.Slots(), p.MaxArity, func(sig permute.Signature) error {
		c.compareInvocation(&multi, path, index, artifact.Invocations[index], sig)
		index++
		return nil
	})
	if err != nil {
		return err
	}

	if multi != nil && !multi.IsEmpty() {
		return multi
	}
	return nil
}

// compareInvocation checks one parsed invocation against the signature the
// generator emits at the same position
func (c *Checker) compareInvocation(multi **errors.MultipleErrors, path string, index int, inv Invocation, sig permute.Signature) {
	g := c.profile.Grammar
	position := fmt.Sprintf("invocation %d", index)

	if inv.Callee != g.CalleeToken {
		errors.AddVerificationError(multi, path, "callee_token",
			fmt.Sprintf("%s calls '%s', profile expects '%s'", position, inv.Callee, g.CalleeToken))
	}
	if inv.Arity != sig.Arity {
		errors.AddVerificationError(multi, path, "arity_order",
			fmt.Sprintf("%s has arity %d, expected %d", position, inv.Arity, sig.Arity))
		return
	}
	if len(inv.Groups) != sig.Arity {
		errors.AddVerificationError(multi, path, "group_count",
			fmt.Sprintf("%s has %d groups for arity %d", position, len(inv.Groups), inv.Arity))
		return
	}

	wantGuard := sig.Arity >= c.profile.GuardThreshold
	if inv.Guarded != wantGuard {
		if wantGuard {
			errors.AddVerificationError(multi, path, "guard_placement",
				fmt.Sprintf("%s is missing its guard attribute", position))
		} else {
			errors.AddVerificationError(multi, path, "guard_placement",
				fmt.Sprintf("%s carries an unexpected guard attribute", position))
		}
	}
	if inv.Guarded && inv.Guard != g.GuardLine {
		errors.AddVerificationError(multi, path, "guard_line",
			fmt.Sprintf("%s guard reads '%s', profile expects '%s'", position, inv.Guard, g.GuardLine))
	}

	for i, grp := range inv.Groups {
		param := sig.Params[i]
		gpos := fmt.Sprintf("%s group %d", position, i)

		if grp.TypeName != param.Slot.Name {
			errors.AddVerificationError(multi, path, "slot_name",
				fmt.Sprintf("%s names slot '%s', expected '%s'", gpos, grp.TypeName, param.Slot.Name))
		}
		if grp.Binding != param.Slot.Binding() {
			errors.AddVerificationError(multi, path, "binding",
				fmt.Sprintf("%s binds '%s', expected '%s'", gpos, grp.Binding, param.Slot.Binding()))
		}
		if want := param.Mode.TypeExpression(param.Slot.Name); grp.Place != want {
			errors.AddVerificationError(multi, path, "place_type",
				fmt.Sprintf("%s has place type '%s', expected '%s'", gpos, grp.Place, want))
		}
		if grp.Ordinal != i {
			errors.AddVerificationError(multi, path, "ordinal",
				fmt.Sprintf("%s has ordinal %d, expected %d", gpos, grp.Ordinal, i))
		}
		if want := param.Mode.Modifier(); grp.Modifier != want {
			errors.AddVerificationError(multi, path, "modifier",
				fmt.Sprintf("%s has modifier '%s', expected '%s'", gpos, grp.Modifier, want))
		}
		if want := param.Mode.Capabilities(); !equalStrings(grp.Capabilities, want) {
			errors.AddVerificationError(multi, path, "capabilities",
				fmt.Sprintf("%s has capabilities %v, expected %v", gpos, grp.Capabilities, want))
		}
		if want := param.Mode.CoercionFunc(); grp.Coercion != want {
			errors.AddVerificationError(multi, path, "coercion",
				fmt.Sprintf("%s coerces via '%s', expected '%s'", gpos, grp.Coercion, want))
		}
	}
}

// firstDivergence locates the first line where two renderings differ
func firstDivergence(expected, actual []byte) (line int, want, got string) {
	wantLines := strings.Split(string(expected), "\n")
	gotLines := strings.Split(string(actual), "\n")

	limit := len(wantLines)
	if len(gotLines) < limit {
		limit = len(gotLines)
	}
	for i := 0; i < limit; i++ {
		if wantLines[i] != gotLines[i] {
			return i + 1, wantLines[i], gotLines[i]
		}
	}

	// One rendering is a prefix of the other
	if len(wantLines) > limit {
		return limit + 1, wantLines[limit], ""
	}
	if len(gotLines) > limit {
		return limit + 1, "", gotLines[limit]
	}
	return 0, "", ""
}

// equalStrings compares two string slices element-wise
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
