package main

import (
	"flag"
	"fmt"
	"os"

	"permutegen/internal/cli"
	"permutegen/internal/errors"
	"permutegen/internal/utils"
)

func main() {
	// Define command-line flags
	var (
		profileFlag = flag.String("profile", "", "YAML profile describing the table to generate (defaults to the built-in profile)")
		outFlag     = flag.String("out", "", "Artifact path, overriding the profile's output_path")
		rootFlag    = flag.String("root", "", "Workspace root for resolving relative paths (defaults to the nearest go.mod directory)")
		checkFlag   = flag.Bool("check", false, "Verify the artifact on disk matches the profile instead of writing")
		dryRunFlag  = flag.Bool("dry-run", false, "Render the table and report statistics without writing")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Signature Table Generator\n")
		fmt.Fprintf(os.Stderr, "Enumerates every parameter passing-mode combination up to the configured arity\n")
		fmt.Fprintf(os.Stderr, "and writes the macro invocation table the function call machinery consumes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                               # Regenerate the default artifact\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -check                        # Fail if the artifact is stale\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -profile profiles/wide.yaml   # Generate from a custom profile\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -out src/table.rs             # Override the artifact path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dry-run -verbose             # Preview statistics without writing\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -quiet                        # Minimal output\n", os.Args[0])
	}

	flag.Parse()

	// Show help if requested
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Validate arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}
	if *checkFlag && *dryRunFlag {
		fmt.Fprintf(os.Stderr, "Error: -check and -dry-run are mutually exclusive\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	// Show startup banner
	diagnostics.Section("Signature Table Generator")

	// Show configuration
	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		if *profileFlag != "" {
			diagnostics.List("Profile: %s", *profileFlag)
		} else {
			diagnostics.List("Profile: built-in defaults")
		}
		if *outFlag != "" {
			diagnostics.List("Output override: %s", *outFlag)
		}
		if *rootFlag != "" {
			diagnostics.List("Workspace root: %s", *rootFlag)
		}
		diagnostics.List("Verbose mode: enabled")
	}

	// Run the generation process
	runner := cli.NewRunnerWithDiagnostics(diagnostics)
	err := runner.Run(cli.Config{
		ProfilePath: *profileFlag,
		OutputPath:  *outFlag,
		RootPath:    *rootFlag,
		Check:       *checkFlag,
		DryRun:      *dryRunFlag,
	})
	if err != nil {
		diagnostics.Error("%v", err)
		if genErr, ok := err.(errors.GenError); ok {
			for _, suggestion := range genErr.Suggestions() {
				diagnostics.List("%s", suggestion)
			}
		}
		os.Exit(1)
	}

	// Show final summary
	summary := runner.GetSummary()
	if *checkFlag {
		diagnostics.Success("Artifact %s is up to date", summary.OutputPath)
		return
	}

	stats := map[string]interface{}{
		"Signatures":     summary.Signatures,
		"Guarded lines":  summary.GuardedLines,
		"Artifact bytes": summary.Bytes,
		"Artifact lines": summary.Lines,
	}
	diagnostics.Summary("Generation Complete!", stats)

	// Show the per-arity breakdown in verbose mode
	if *verboseFlag {
		diagnostics.Subsection("Signatures per arity")
		for arity, count := range summary.PerArity {
			diagnostics.List("arity %d: %d", arity, count)
		}
	}

	if *dryRunFlag {
		diagnostics.Success("Dry run finished in %v", summary.Duration)
	} else {
		diagnostics.Success("Wrote %s in %v", summary.OutputPath, summary.Duration)
	}
}
