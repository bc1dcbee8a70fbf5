/*
 * Chadsembly - Statement grammar, procedure splitting, and label classification
 *
 * Copyright 2026, Chadsembly Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package parser validates statement-level grammar, carves the token stream
// into per-procedure instruction pools, and classifies labels into branch,
// variable, and procedure symbols.
package parser

import (
	"fmt"
	"strconv"

	"github.com/chadsembly/chadsembly/internal/pool"
	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

// Error is a single parse-stage diagnostic.
type Error struct {
	Position token.Position
	Category string
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s found in line %d at position %d: %s", e.Category, e.Position.Row, e.Position.Column, e.Message)
}

func newError(pos token.Position, category, message string) Error {
	return Error{Position: pos, Category: category, Message: message}
}

var transitions = map[token.Kind][]token.Kind{
	token.END:                {token.END, token.INSTRUCTION, token.LABEL, token.RIGHT_BRACE, token.LEFT_BRACE},
	token.INSTRUCTION:        {token.END, token.ADDRESSING_MODE, token.VALUE, token.REGISTER, token.LABEL, token.RIGHT_BRACE},
	token.ADDRESSING_MODE:    {token.VALUE, token.REGISTER, token.LABEL},
	token.VALUE:              {token.END, token.SEPARATOR, token.RIGHT_BRACE, token.LEFT_BRACE},
	token.REGISTER:           {token.END, token.SEPARATOR, token.RIGHT_BRACE, token.LEFT_BRACE},
	token.LABEL:              {token.END, token.SEPARATOR, token.INSTRUCTION, token.RIGHT_BRACE, token.LEFT_BRACE, token.ASSEMBLY_DIRECTIVE},
	token.SEPARATOR:          {token.ADDRESSING_MODE, token.VALUE, token.REGISTER, token.LABEL},
	token.LEFT_BRACE:         {token.END},
	token.RIGHT_BRACE:        {token.END},
	token.ASSEMBLY_DIRECTIVE: {token.END, token.VALUE},
}

func permits(permitted []token.Kind, kind token.Kind) bool {
	for _, k := range permitted {
		if k == kind {
			return true
		}
	}
	return false
}

// Preparse validates statement-level grammar (the token-succession
// transition table) and brace nesting, independently of each other.
func Preparse(tokens []token.Token) []Error {
	var errs []Error

	prev := token.END
	for _, tok := range tokens {
		permitted, known := transitions[prev]
		if known && !permits(permitted, tok.Kind) {
			if prev == token.END {
				errs = append(errs, newError(tok.Position, "Invalid Syntax Error",
					fmt.Sprintf("Statement cannot begin with a %s", tok.Kind)))
			} else {
				errs = append(errs, newError(tok.Position, "Invalid Syntax Error",
					fmt.Sprintf("Unexpected %s found", tok.Kind)))
			}
		}
		prev = tok.Kind
	}

	open := false
	var last token.Position
	for _, tok := range tokens {
		last = tok.Position
		switch tok.Kind {
		case token.LEFT_BRACE:
			if open {
				errs = append(errs, newError(tok.Position, "Block Scope Error", "Procedures cannot be nested"))
			}
			open = true
		case token.RIGHT_BRACE:
			if !open {
				errs = append(errs, newError(tok.Position, "Block Scope Error", "No open procedure to close"))
			}
			open = false
		}
	}
	if open {
		errs = append(errs, newError(last, "Block Scope Error", "Procedure body is never closed"))
	}

	return errs
}

// split carves the token stream into the global pool and one pool per
// procedure. On a LEFT_BRACE, the most recently accumulated non-END token
// in the global pool is popped off as the procedure's label (skipping a
// preceding END, which separates the label statement from the brace).
func split(tokens []token.Token) *pool.Set {
	set := pool.NewSet()
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok.Kind != token.LEFT_BRACE {
			set.Global.Tokens = append(set.Global.Tokens, tok)
			i++
			continue
		}

		g := set.Global.Tokens
		label := g[len(g)-1]
		g = g[:len(g)-1]
		if label.Kind == token.END {
			label = g[len(g)-1]
			g = g[:len(g)-1]
		}
		set.Global.Tokens = g

		j := i + 1
		for j < len(tokens) && tokens[j].Kind != token.RIGHT_BRACE {
			j++
		}

		proc := set.AddProcedure(token.Casing(label.Lexeme))
		proc.Tokens = append(proc.Tokens, tokens[i+1:j]...)

		i = j + 1
	}
	return set
}

func parseSignedLexeme(lexeme string) int {
	n, _ := strconv.Atoi(lexeme)
	return n
}

func declareVariable(p *pool.Pool, identifier string, initializer int, pos token.Position) []Error {
	if existing, ok := p.SymbolTable.Get(identifier); ok {
		switch existing.Kind {
		case symtab.Branch, symtab.Procedure:
			return []Error{newError(pos, "Invalid Label Error", "Redeclare as variable")}
		case symtab.Variable:
			// Re-declaring a variable overwrites its initializer; allowed.
		}
	}
	p.SymbolTable.Insert(symtab.Entry{Identifier: identifier, Kind: symtab.Variable, Initializer: initializer})
	return nil
}

func declareBranch(p *pool.Pool, identifier string, relativeIndex int, pos token.Position) []Error {
	if existing, ok := p.SymbolTable.Get(identifier); ok {
		switch existing.Kind {
		case symtab.Branch:
			return []Error{newError(pos, "Invalid Label Error", "Duplicate branch label")}
		case symtab.Variable:
			return []Error{newError(pos, "Invalid Label Error", "Redeclare variable as branch")}
		case symtab.Procedure:
			return []Error{newError(pos, "Invalid Label Error", "Cannot redeclare a procedure label")}
		}
	}
	p.SymbolTable.Insert(symtab.Entry{Identifier: identifier, Kind: symtab.Branch, RelativeIndex: relativeIndex})
	return nil
}

// classify walks one pool's token stream, building its symbol table.
// Variable declarations (`LABEL DAT [value]`) are deleted from the token
// stream, leaving their terminating END behind; branch declarations stay
// in place. Instruction positions are counted only at INSTRUCTION tokens,
// so variables never shift a branch's relative index.
func classify(p *pool.Pool) []Error {
	var errs []Error
	instructionCount := 0

	i := 0
	for i < len(p.Tokens) {
		tok := p.Tokens[i]

		switch tok.Kind {
		case token.INSTRUCTION:
			instructionCount++
			i++

		case token.LABEL:
			if i+1 >= len(p.Tokens) {
				i++
				continue
			}
			next := p.Tokens[i+1]
			switch next.Kind {
			case token.ASSEMBLY_DIRECTIVE:
				initializer := 0
				end := i + 2
				if end < len(p.Tokens) && p.Tokens[end].Kind == token.VALUE {
					initializer = parseSignedLexeme(p.Tokens[end].Lexeme)
					end++
				}
				errs = append(errs, declareVariable(p, tok.Lexeme, initializer, tok.Position)...)
				p.Tokens = append(p.Tokens[:i], p.Tokens[end:]...)
				// Do not advance i: the terminating END now sits at i.

			case token.INSTRUCTION:
				errs = append(errs, declareBranch(p, tok.Lexeme, instructionCount, tok.Position)...)
				i++

			default:
				i++
			}

		default:
			i++
		}
	}

	return errs
}

// Parse runs the pre-parse grammar check, splits the stream into pools,
// registers every procedure name in the global symbol table, and then
// classifies labels within each pool.
func Parse(tokens []token.Token) (*pool.Set, []Error) {
	if errs := Preparse(tokens); len(errs) > 0 {
		return nil, errs
	}

	set := split(tokens)

	for _, id := range set.Order {
		set.Global.SymbolTable.Insert(symtab.Entry{Identifier: id, Kind: symtab.Procedure})
	}

	var errs []Error
	errs = append(errs, classify(set.Global)...)
	for _, id := range set.Order {
		errs = append(errs, classify(set.Procedures[id])...)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return set, nil
}
