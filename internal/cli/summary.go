package cli

import "time"

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	OutputPath   string        // resolved artifact path
	Signatures   int           // invocation lines rendered
	GuardedLines int           // invocations carrying the guard attribute
	PerArity     []int         // signature count per arity, index is the arity
	Bytes        int           // rendered artifact size
	Lines        int           // rendered line count
	Duration     time.Duration // wall time for the run
}
