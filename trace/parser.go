package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Records are single lines, so whitespace is a real token: every grammar
// spells out its single spaces and nothing is elided.
var (
	traceLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Space", Pattern: ` `},
		{Name: "Arrow", Pattern: `->`},
		{Name: "Ref", Pattern: `@@`},
		{Name: "At", Pattern: `@`},
		{Name: "Key", Pattern: `[a-z]+=`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Number", Pattern: `[-0-9]+`},
		{Name: "String", Pattern: `"[^" ]*"`},
		{Name: "Punct", Pattern: `[^ ]`},
	})

	spaceTokenType = mustTokenType("Space")

	potentialParser = participle.MustBuild[potentialLine](participle.Lexer(traceLexer))
	decidedParser   = participle.MustBuild[decidedLine](participle.Lexer(traceLexer))
	positionParser  = participle.MustBuild[positionLine](participle.Lexer(traceLexer))
)

// potentialLine is `@ via @@<int> b=<int> p=<token> d=<int>`.
type potentialLine struct {
	Previous Int    `parser:"'@' Space 'via' Space '@@' @Number Space"`
	Badness  Int    `parser:"'b=' @Number Space"`
	Penalty  *Field `parser:"'p=' @@ Space"`
	Demerits Int    `parser:"'d=' @Number"`
}

// decidedLine is `@@<nat>: line <token>.<nat> t=<int> -> @@<nat>`.
type decidedLine struct {
	Breakpoint Nat        `parser:"'@@' @Number ':' Space 'line' Space"`
	Class      *LineClass `parser:"@@ Space"`
	Total      Int        `parser:"'t=' @Number Space"`
	Previous   Nat        `parser:"Arrow Space '@@' @Number"`
}

// positionLine is `(<x>, <y>) {Character { char: <code>, font: "<name>" }}`.
type positionLine struct {
	X    Nat    `parser:"'(' @Number ',' Space"`
	Y    Nat    `parser:"@Number ')' Space '{' 'Character' Space '{' Space"`
	Char Nat    `parser:"'char' ':' Space @Number ',' Space"`
	Font Quoted `parser:"'font' ':' Space @String Space '}' '}'"`
}

// Int captures a signed decimal. A malformed value such as "-" or "1-2"
// is kept as 0 instead of failing the line.
type Int int

// Capture implements participle.Capture.
func (i *Int) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("integer capture requires value")
	}
	n, err := strconv.Atoi(values[0])
	if err != nil {
		n = 0
	}
	*i = Int(n)
	return nil
}

// Nat captures an unsigned decimal; anything other than digits rejects the
// line. Values that overflow int are kept as 0.
type Nat int

// Capture implements participle.Capture.
func (n *Nat) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("natural capture requires value")
	}
	if !isDigits(values[0]) {
		return fmt.Errorf("%q is not an unsigned integer", values[0])
	}
	v, err := strconv.Atoi(values[0])
	if err != nil {
		v = 0
	}
	*n = Nat(v)
	return nil
}

// Quoted unquotes a double-quoted string on capture.
type Quoted string

// Capture implements participle.Capture.
func (q *Quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string capture requires value")
	}
	*q = Quoted(strings.Trim(values[0], `"`))
	return nil
}

// Field is a run of non-space characters, whatever tokens it lexes into.
type Field struct {
	Raw string
}

// Parse implements participle.Parseable for Field.
func (f *Field) Parse(lex *lexer.PeekingLexer) error {
	raw, ok := consumeField(lex)
	if !ok {
		return participle.NextMatch
	}
	f.Raw = raw
	return nil
}

// LineClass is the `<token>.<nat>` field of a decided line. The field is
// split at its last dot; the part after it is the fitness classification.
type LineClass struct {
	Raw   string
	Line  string
	Class int
}

// Parse implements participle.Parseable for LineClass.
func (c *LineClass) Parse(lex *lexer.PeekingLexer) error {
	raw, ok := consumeField(lex)
	if !ok {
		return participle.NextMatch
	}
	dot := strings.LastIndexByte(raw, '.')
	if dot <= 0 || !isDigits(raw[dot+1:]) {
		return fmt.Errorf("line field %q has no .<class> suffix", raw)
	}
	class, err := strconv.Atoi(raw[dot+1:])
	if err != nil {
		class = 0
	}
	*c = LineClass{Raw: raw, Line: raw[:dot], Class: class}
	return nil
}

// consumeField joins tokens up to the next space or end of line.
func consumeField(lex *lexer.PeekingLexer) (string, bool) {
	var b strings.Builder
	for {
		tok := lex.Peek()
		if tok == nil || tok.EOF() || tok.Type == spaceTokenType {
			break
		}
		b.WriteString(lex.Next().Value)
	}
	return b.String(), b.Len() > 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := traceLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
