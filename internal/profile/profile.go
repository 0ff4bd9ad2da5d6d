package profile

import (
	"fmt"
	"strings"

	"permutegen/internal/errors"
	"permutegen/internal/permute"
	"permutegen/internal/utils"
)

// Grammar carries the surface tokens of the emitted macro table.
// The structural delimiters (group braces, field separators, statement
// terminator) are fixed; these are the tokens that differ between tool
// variants.
type Grammar struct {
	// MacroName is the name of the generated macro definition
	MacroName string `yaml:"macro_name"`

	// CalleeToken is the metavariable the macro body invokes, e.g. "$call"
	CalleeToken string `yaml:"callee_token"`

	// FragmentSpec is the fragment specifier of the callee, e.g. "path"
	FragmentSpec string `yaml:"fragment_spec"`

	// GuardLine is the attribute emitted above conditionally compiled lines
	GuardLine string `yaml:"guard_line"`

	// CapabilityJoin separates entries of a capability set
	CapabilityJoin string `yaml:"capability_join"`

	// IndentUnit is one level of indentation in the artifact
	IndentUnit string `yaml:"indent_unit"`

	// HeaderNote is the header comment template; %s receives the tool name
	HeaderNote string `yaml:"header_note"`
}

// Profile is the complete configuration of one generation run
type Profile struct {
	// ToolName appears in the artifact header
	ToolName string `yaml:"tool_name"`

	// OutputPath is where the artifact is written, resolved against the
	// workspace root unless absolute
	OutputPath string `yaml:"output_path"`

	// Alphabet lists the ordered type-level slot names
	Alphabet []string `yaml:"alphabet"`

	// MaxArity is the largest signature arity to enumerate
	MaxArity int `yaml:"max_arity"`

	// GuardThreshold is the smallest arity that receives the guard line
	GuardThreshold int `yaml:"guard_threshold"`

	// Modes selects and orders the parameter modes by name
	Modes []string `yaml:"modes"`

	// Grammar configures the artifact's surface tokens
	Grammar Grammar `yaml:"grammar"`
}

// Default returns the reference configuration: five slots A through E,
// arities 0 through 5, all three modes, guard from arity 4 up
func Default() *Profile {
	return &Profile{
		ToolName:       "permutegen",
		OutputPath:     "macros.rs",
		Alphabet:       []string{"A", "B", "C", "D", "E"},
		MaxArity:       5,
		GuardThreshold: 4,
		Modes:          []string{"owned", "ref", "mut"},
		Grammar: Grammar{
			MacroName:      "permute",
			CalleeToken:    "$call",
			FragmentSpec:   "path",
			GuardLine:      "#[cfg(not(test))]",
			CapabilityJoin: " + ",
			IndentUnit:     "    ",
			HeaderNote:     "// Note: Automatically generated using %s",
		},
	}
}

// Slots returns the slot list the profile enumerates over
func (p *Profile) Slots() []permute.Slot {
	return permute.MakeSlots(p.Alphabet)
}

// SelectedModes resolves the profile's mode names in order
func (p *Profile) SelectedModes() ([]permute.Mode, error) {
	modes := make([]permute.Mode, 0, len(p.Modes))
	for _, name := range p.Modes {
		mode, err := permute.ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

// Header renders the artifact header line for the profile
func (p *Profile) Header() string {
	return fmt.Sprintf(p.Grammar.HeaderNote, p.ToolName)
}

// SignatureCount returns how many signatures the profile produces
func (p *Profile) SignatureCount() int {
	return permute.SignatureCount(len(p.Modes), p.MaxArity)
}

// Validate checks the whole profile and fails before any output is produced
func (p *Profile) Validate() error {
	if err := utils.NotEmpty("tool_name")(p.ToolName); err != nil {
		return configErr(err)
	}
	if err := utils.NotEmpty("output_path")(p.OutputPath); err != nil {
		return configErr(err)
	}

	alphabetChain := utils.NewValidatorChain(
		utils.NonEmptySlice[string]("alphabet"),
		utils.UniqueStrings("alphabet"),
	)
	if err := alphabetChain.Validate(p.Alphabet); err != nil {
		return configErr(err)
	}
	for _, name := range p.Alphabet {
		if err := utils.ValidIdentifier("alphabet")(name); err != nil {
			return configErr(err)
		}
	}

	if err := utils.NonNegative("max_arity")(p.MaxArity); err != nil {
		return configErr(err)
	}
	if p.MaxArity > len(p.Alphabet) {
		return errors.Newf(errors.ConfigurationErrorCode,
			"max arity %d exceeds the %d available slot names", p.MaxArity, len(p.Alphabet)).
			WithSuggestion("Extend the alphabet or lower max_arity")
	}

	if err := utils.NonNegative("guard_threshold")(p.GuardThreshold); err != nil {
		return configErr(err)
	}

	modeChain := utils.NewValidatorChain(
		utils.NonEmptySlice[string]("modes"),
		utils.UniqueStrings("modes"),
	)
	if err := modeChain.Validate(p.Modes); err != nil {
		return configErr(err)
	}
	modes, err := p.SelectedModes()
	if err != nil {
		return err
	}
	for _, mode := range modes {
		if err := mode.Validate(); err != nil {
			return err
		}
	}

	return p.Grammar.validate()
}

// validate checks the grammar tokens
func (g Grammar) validate() error {
	if err := utils.ValidIdentifier("grammar.macro_name")(g.MacroName); err != nil {
		return configErr(err)
	}
	if err := utils.MatchesPattern("grammar.callee_token", `^\$[A-Za-z_][A-Za-z0-9_]*$`)(g.CalleeToken); err != nil {
		return configErr(err)
	}
	if err := utils.ValidIdentifier("grammar.fragment_spec")(g.FragmentSpec); err != nil {
		return configErr(err)
	}
	if err := utils.NotEmpty("grammar.guard_line")(g.GuardLine); err != nil {
		return configErr(err)
	}
	if err := utils.NotEmpty("grammar.capability_join")(g.CapabilityJoin); err != nil {
		return configErr(err)
	}
	if err := utils.NotEmpty("grammar.indent_unit")(g.IndentUnit); err != nil {
		return configErr(err)
	}
	if err := utils.NotEmpty("grammar.header_note")(g.HeaderNote); err != nil {
		return configErr(err)
	}
	if !strings.Contains(g.HeaderNote, "%s") {
		return errors.ConfigurationError("grammar.header_note", "must contain %s for the tool name")
	}
	return nil
}

// configErr lifts a utils validation error into the configuration error type
func configErr(err error) error {
	return errors.Wrap(errors.ConfigurationErrorCode, err.Error(), err)
}
