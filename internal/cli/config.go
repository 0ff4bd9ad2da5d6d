package cli

// Config holds the configuration for a generator run
type Config struct {
	// ProfilePath is the YAML profile describing the table to generate
	// If empty, the compiled-in defaults are used
	ProfilePath string

	// OutputPath overrides the profile's output path when set
	OutputPath string

	// RootPath is the directory relative output paths are resolved against
	// If empty, it is derived from the nearest enclosing go.mod
	RootPath string

	// Check verifies the artifact on disk instead of writing it
	Check bool

	// DryRun renders the table and reports statistics without writing
	DryRun bool
}
