// Package script parses and runs scripted hunting sessions: a seed, a list
// of player commands and clock steps, and expectations about the outcome.
package script

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Script struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos lexer.Position

	Seed    *int64       `  "seed" @Number`
	Buy     *string      `| "buy" @Ident`
	Deploy  *DeployStmt  `| "deploy" @@`
	Advance *float64     `| "advance" @Number`
	Fire    *string      `| "fire" @("tax" | "hunt" | "spawn")`
	Pause   bool         `| @"pause"`
	Resume  bool         `| @"resume"`
	Status  bool         `| @"status"`
	Expect  *Expectation `| "expect" @@`
}

type DeployStmt struct {
	Trap string `@Ident`
	Zone string `@Ident`
}

type Expectation struct {
	Balance *int         `  "balance" @Number`
	Owned   *OwnedCheck  `| "owned" @@`
	Animals *AnimalCheck `| "animals" @@`
	Traps   *TrapCheck   `| "traps" @@`
	Over    *string      `| "over" @String`
	Running bool         `| @"running"`
}

type OwnedCheck struct {
	Trap  string `@Ident`
	Count int    `@Number`
}

type AnimalCheck struct {
	Zone   string `@Ident`
	Animal string `@Ident`
	Count  int    `@Number`
}

type TrapCheck struct {
	Zone  string `@Ident`
	Trap  string `@Ident`
	Count int    `@Number`
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
})

var parser = participle.MustBuild[Script](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

func Parse(source string) (*Script, error) {
	return parser.ParseString("", source)
}

func ParseFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return parser.ParseString(path, string(src))
}
