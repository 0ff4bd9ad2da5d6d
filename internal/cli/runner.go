package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"permutegen/internal/emitter"
	"permutegen/internal/errors"
	"permutegen/internal/profile"
	"permutegen/internal/utils"
	"permutegen/internal/verify"
)

// Runner coordinates profile loading, rendering, and artifact output
type Runner struct {
	diagnostics *utils.DiagnosticSystem
	fileReader  *utils.FileReader
	modParser   *utils.GoModParser
	summary     GenerationSummary
}

// NewRunner creates a runner reporting at the default diagnostic level
func NewRunner() *Runner {
	return NewRunnerWithDiagnostics(utils.NewDiagnosticSystem(utils.DiagnosticInfo))
}

// NewRunnerWithDiagnostics creates a runner backed by the given diagnostic system
func NewRunnerWithDiagnostics(diagnostics *utils.DiagnosticSystem) *Runner {
	fileReader := utils.NewFileReader()
	return &Runner{
		diagnostics: diagnostics,
		fileReader:  fileReader,
		modParser:   utils.NewGoModParser(fileReader),
	}
}

// GetSummary returns the summary of the last run
func (r *Runner) GetSummary() GenerationSummary {
	return r.summary
}

// Run executes the complete run described by config
func (r *Runner) Run(config Config) error {
	startTime := time.Now()
	r.summary = GenerationSummary{}

	r.diagnostics.Verbose("Starting run %s at %s", uuid.NewString(), startTime.Format("15:04:05"))
	if config.ProfilePath != "" {
		r.diagnostics.Debug("Using profile: %s", config.ProfilePath)
	}

	r.diagnostics.StartProgress("Loading profile")
	prof, err := profile.LoadOrDefault(config.ProfilePath)
	if err != nil {
		r.diagnostics.EndProgress(false, "")
		return err
	}
	r.diagnostics.EndProgress(true, "")
	r.diagnostics.Debug("Profile: %d modes, max arity %d, guard threshold %d",
		len(prof.Modes), prof.MaxArity, prof.GuardThreshold)

	outputPath, err := r.resolveOutputPath(config, prof)
	if err != nil {
		return err
	}
	r.summary.OutputPath = outputPath
	r.diagnostics.Debug("Artifact path: %s", outputPath)

	switch {
	case config.Check:
		err = r.runCheck(prof, outputPath)
	case config.DryRun:
		err = r.runDryRun(prof)
	default:
		err = r.runGenerate(prof, outputPath)
	}
	if err != nil {
		return err
	}

	r.summary.Duration = time.Since(startTime)
	return nil
}

// runGenerate renders the table and writes it to the artifact path
func (r *Runner) runGenerate(prof *profile.Profile, outputPath string) error {
	r.diagnostics.WriteItem(outputPath)
	r.diagnostics.StartProgress("Generating signature table")

	stats, err := emitter.New(prof).WriteArtifact(outputPath)
	if err != nil {
		r.diagnostics.EndProgress(false, "")
		return err
	}

	r.diagnostics.EndProgress(true, fmt.Sprintf("%d signatures, %d bytes", stats.Signatures, stats.Bytes))
	r.recordStats(stats)
	return nil
}

// runDryRun renders the table and discards it
func (r *Runner) runDryRun(prof *profile.Profile) error {
	r.diagnostics.StartProgress("Rendering signature table")

	_, stats, err := emitter.New(prof).Render()
	if err != nil {
		r.diagnostics.EndProgress(false, "")
		return err
	}

	r.diagnostics.EndProgress(true, fmt.Sprintf("%d signatures, %d bytes", stats.Signatures, stats.Bytes))
	r.recordStats(stats)
	return nil
}

// runCheck verifies the artifact on disk without writing anything
func (r *Runner) runCheck(prof *profile.Profile, outputPath string) error {
	r.diagnostics.StartProgress("Checking %s", outputPath)

	if err := verify.NewChecker(prof).Check(outputPath); err != nil {
		r.diagnostics.EndProgress(false, "")
		return err
	}

	r.diagnostics.EndProgress(true, "up to date")
	return nil
}

// recordStats copies render statistics into the run summary
func (r *Runner) recordStats(stats emitter.Stats) {
	r.summary.Signatures = stats.Signatures
	r.summary.GuardedLines = stats.GuardedLines
	r.summary.PerArity = stats.PerArity
	r.summary.Bytes = stats.Bytes
	r.summary.Lines = stats.Lines
}

// resolveOutputPath determines where the artifact lives for this run.
// Relative paths resolve against the workspace root so invocations from
// subdirectories and go:generate directives agree on the location.
func (r *Runner) resolveOutputPath(config Config, prof *profile.Profile) (string, error) {
	outputPath := prof.OutputPath
	if config.OutputPath != "" {
		outputPath = config.OutputPath
	}
	if filepath.IsAbs(outputPath) {
		return filepath.Clean(outputPath), nil
	}

	root := config.RootPath
	if root == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", errors.WrapFileSystemError("resolve", outputPath, err)
		}
		root, err = r.modParser.FindWorkspaceRoot(workDir)
		if err != nil {
			// Outside any module, fall back to the working directory
			r.diagnostics.Debug("No go.mod found above %s", workDir)
			root = workDir
		}
	}
	return filepath.Join(root, outputPath), nil
}
