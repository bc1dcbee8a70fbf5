/*
 * Chadsembly - Token and position types
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

// Package token defines the Position and Token types shared by every stage
// of the compilation pipeline, plus the single case-normalization rule the
// whole system agrees on.
package token

import "fmt"

// Position is a 1-based (row, column) pair attached to every token and
// diagnostic.
type Position struct {
	Row    int
	Column int
}

// Advance moves the position onto the character that follows c. A
// line-break character starts a new row and resets the column to
// resetColumn; anything else just advances the column.
func (p *Position) Advance(c byte, resetColumn int) {
	if c == '\n' || c == '\r' || c == '\f' {
		p.Row++
		p.Column = resetColumn
		return
	}
	p.Column++
}

func (p Position) String() string {
	return fmt.Sprintf("line %d at position %d", p.Row, p.Column)
}

// Kind classifies a token.
type Kind int

const (
	END Kind = iota
	INSTRUCTION
	ADDRESSING_MODE
	VALUE
	REGISTER
	LABEL
	SEPARATOR
	LEFT_BRACE
	RIGHT_BRACE
	ASSEMBLY_DIRECTIVE
	INVALID
)

var kindNames = map[Kind]string{
	END:                "end of statement",
	INSTRUCTION:        "instruction",
	ADDRESSING_MODE:    "addressing mode",
	VALUE:              "value",
	REGISTER:           "register",
	LABEL:              "label",
	SEPARATOR:          "separator",
	LEFT_BRACE:         "left brace",
	RIGHT_BRACE:        "right brace",
	ASSEMBLY_DIRECTIVE: "assembly directive",
	INVALID:            "invalid token",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// Token is a classified lexeme with its source position.
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Position
}

func New(kind Kind, lexeme string, row, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Position: Position{Row: row, Column: column}}
}

// Casing is the single, global case-normalization rule. Every identifier
// (labels, instructions, registers, directives, configuration options) is
// folded through this function before comparison or storage, so the whole
// system stays case-insensitive by construction.
func Casing(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
