package verify

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"permutegen/internal/errors"
	"permutegen/internal/utils"
)

// Parser parses emitted macro tables back into their structure
type Parser struct {
	parser *participle.Parser[macroFile]
	reader *utils.FileReader
}

// macroFile is the grammar root: header comment, macro definition wrapper,
// invocation lines, closing braces
type macroFile struct {
	Header string       `parser:"@Comment"`
	Name   string       `parser:"'macro_rules' '!' @Ident '{'"`
	Callee string       `parser:"'(' '$' @Ident ':'"`
	Frag   string       `parser:"@Ident ')' Arrow '{'"`
	Lines  []*macroLine `parser:"@@* '}' '}'"`
}

// macroLine is one invocation, optionally preceded by a guard attribute
type macroLine struct {
	Guard      string      `parser:"@Guard?"`
	Invocation *invocation `parser:"@@"`
}

// invocation is one generated macro call
type invocation struct {
	Callee string   `parser:"'$' @Ident '!' '('"`
	Arity  int      `parser:"@Int"`
	Groups []*group `parser:"(',' @@)* ')' ';'"`
}

// group is one parameter group of an invocation
type group struct {
	TypeName string `parser:"'{' @Ident ','"`
	Binding  string `parser:"@Ident ','"`
	Place    string `parser:"@(Ident ('<' Ident '>')?) ','"`
	Ordinal  int    `parser:"@Int ','"`
	Modifier string `parser:"'{' @('&' 'mut'?)? '}' ','"`
	Caps     string `parser:"'{' @(('?' | '+' | Ident)*) '}' ','"`
	Coercion string `parser:"@Ident '}'"`
}

// NewParser creates a parser for emitted artifacts
func NewParser() *Parser {
	// Define the lexer
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Guard", Pattern: `#\[[^\]]*\]`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[${}(),;:!<>&?+=]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[macroFile](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{
		parser: parser,
		reader: utils.NewFileReader(),
	}
}

// Artifact is the parsed form of an emitted macro table
type Artifact struct {
	Header       string
	MacroName    string
	Callee       string // includes the leading $
	FragmentSpec string
	Invocations  []Invocation
}

// Invocation is one parsed macro call
type Invocation struct {
	Guarded bool
	Guard   string // the guard attribute text when present
	Callee  string // includes the leading $
	Arity   int
	Groups  []Group
}

// Group is one parsed parameter group
type Group struct {
	TypeName     string
	Binding      string
	Place        string
	Ordinal      int
	Modifier     string   // "", "&", or "&mut"
	Capabilities []string // entries without the join separator
	Coercion     string
}

// ParseArtifact reads and parses the artifact at path
func (p *Parser) ParseArtifact(path string) (*Artifact, error) {
	content, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, content)
}

// ParseSource parses artifact text; name is used in error locations
func (p *Parser) ParseSource(name, source string) (*Artifact, error) {
	file, err := p.parser.ParseString(name, source)
	if err != nil {
		return nil, convertParseError(name, err)
	}
	return convertFile(file), nil
}

// convertParseError maps a participle error to a located syntax error
func convertParseError(name string, err error) error {
	synErr := errors.WrapParseError("artifact", err)
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		synErr.WithLocation(errors.SourceLocation{
			File:   name,
			Line:   pos.Line,
			Column: pos.Column,
		})
	}
	return synErr
}

// convertFile maps the grammar structs onto the exported artifact model
func convertFile(file *macroFile) *Artifact {
	artifact := &Artifact{
		Header:       file.Header,
		MacroName:    file.Name,
		Callee:       "$" + file.Callee,
		FragmentSpec: file.Frag,
		Invocations:  make([]Invocation, 0, len(file.Lines)),
	}

	for _, line := range file.Lines {
		inv := Invocation{
			Guarded: line.Guard != "",
			Guard:   line.Guard,
			Callee:  "$" + line.Invocation.Callee,
			Arity:   line.Invocation.Arity,
			Groups:  make([]Group, 0, len(line.Invocation.Groups)),
		}
		for _, g := range line.Invocation.Groups {
			inv.Groups = append(inv.Groups, Group{
				TypeName:     g.TypeName,
				Binding:      g.Binding,
				Place:        g.Place,
				Ordinal:      g.Ordinal,
				Modifier:     g.Modifier,
				Capabilities: splitCaps(g.Caps),
				Coercion:     g.Coercion,
			})
		}
		artifact.Invocations = append(artifact.Invocations, inv)
	}

	return artifact
}

// splitCaps breaks a concatenated capability capture into its entries.
// The lexer elides whitespace, so "?Sized + UnsafeToRef" arrives as
// "?Sized+UnsafeToRef".
func splitCaps(caps string) []string {
	if caps == "" {
		return nil
	}
	parts := strings.Split(caps, "+")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
