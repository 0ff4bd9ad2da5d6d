package permute

import "permutegen/internal/errors"

// VisitFunc receives each signature in emission order
type VisitFunc func(sig Signature) error

// VisitSignatures enumerates every parameter-mode assignment for arities 0
// through maxArity over the given slots, in emission order: arity ascending,
// then mode assignments counted as a base-len(modes) numeral with the first
// slot as the most significant position (the rightmost slot varies fastest).
//
// The configuration is checked before the first visit, so a bad configuration
// never produces partial output.
func VisitSignatures(modes []Mode, slots []Slot, maxArity int, visit VisitFunc) error {
	if err := checkEnumerable(modes, slots, maxArity); err != nil {
		return err
	}

	for arity := 0; arity <= maxArity; arity++ {
		if err := visitArity(modes, slots, arity, visit); err != nil {
			return err
		}
	}
	return nil
}

// visitArity walks the assignments of one arity with an explicit odometer
func visitArity(modes []Mode, slots []Slot, arity int, visit VisitFunc) error {
	counters := make([]int, arity)

	for {
		params := make([]Param, arity)
		for i := 0; i < arity; i++ {
			params[i] = Param{Slot: slots[i], Mode: modes[counters[i]]}
		}
		if err := visit(Signature{Arity: arity, Params: params}); err != nil {
			return err
		}

		// Advance the odometer from the rightmost position
		pos := arity - 1
		for pos >= 0 {
			counters[pos]++
			if counters[pos] < len(modes) {
				break
			}
			counters[pos] = 0
			pos--
		}
		if pos < 0 {
			return nil
		}
	}
}

// checkEnumerable validates the enumeration inputs
func checkEnumerable(modes []Mode, slots []Slot, maxArity int) error {
	if len(modes) == 0 {
		return errors.ConfigurationError("modes", "at least one parameter mode is required")
	}
	for _, m := range modes {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if maxArity < 0 {
		return errors.ConfigurationError("max_arity", "cannot be negative")
	}
	if maxArity > len(slots) {
		return errors.Newf(errors.ConfigurationErrorCode,
			"max arity %d exceeds the %d available slot names", maxArity, len(slots)).
			WithSuggestion("Extend the slot alphabet or lower max_arity")
	}
	return nil
}

// SignatureCount returns the number of signatures produced for the given
// mode count and maximum arity: the sum of modeCount^k for k in 0..maxArity
func SignatureCount(modeCount, maxArity int) int {
	total := 0
	power := 1
	for k := 0; k <= maxArity; k++ {
		total += power
		power *= modeCount
	}
	return total
}
