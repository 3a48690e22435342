package target

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// descriptorLexer tokenises target descriptor files.
var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `[{}=]`},
})

// descriptorFile is the root of a descriptor file.
type descriptorFile struct {
	Targets []*targetBlock `@@*`
}

// targetBlock is one `target "name" { ... }` declaration.
type targetBlock struct {
	Pos        lexer.Position
	Name       string      `"target" @String "{"`
	Properties []*property `@@* "}"`
}

// property is `key = value` or a bare `key` flag.
type property struct {
	Pos   lexer.Position
	Key   string `@Ident`
	Value *value `( "=" @@ )?`
}

type value struct {
	Scalar    *scalar `@@`
	Placement string  `@("high" | "low")?`
}

type scalar struct {
	Number *string `  @Number`
	Word   *string `| @Ident`
}

func (v *value) number() *string {
	if v == nil || v.Scalar == nil {
		return nil
	}
	return v.Scalar.Number
}

func (v *value) raw() string {
	switch {
	case v == nil || v.Scalar == nil:
		return ""
	case v.Scalar.Number != nil:
		return *v.Scalar.Number
	case v.Scalar.Word != nil:
		return *v.Scalar.Word
	}
	return ""
}
