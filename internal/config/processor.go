/*
 * Chadsembly - Option token parsing shared by CLI arguments and directives
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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/token"
)

// Error is a single batched configuration diagnostic.
type Error struct {
	Position token.Position
	Noun     string // "argument" or "line"
	Category string
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s found in %s %d at position %d: %s",
		e.Category, e.Noun, e.Position.Row, e.Position.Column, e.Message)
}

type rawToken struct {
	Value    string
	Position token.Position
}

// Processor tokenizes and validates a sequence of "option<delimiter>value"
// strings against a configuration table, accumulating every error found
// rather than stopping at the first. A single implementation serves both
// the CLI argument source and the in-source directive source: the only
// difference between them is the noun used in error text and how the
// caller advances the position between entries.
type Processor struct {
	Table           Table
	Minimums        Table
	DirectivePrefix byte
	Delimiter       byte
	Noun            string
	Errors          []Error
}

// NewArgumentProcessor builds a Processor for external, command-line-style
// option strings (one table entry per string, directive prefix optional).
func NewArgumentProcessor(table, minimums Table) *Processor {
	return &Processor{
		Table:           table,
		Minimums:        minimums,
		DirectivePrefix: keywords.DirectivePrefix,
		Delimiter:       keywords.TokenDelimiter,
		Noun:            "argument",
	}
}

// NewDirectiveProcessor builds a Processor for in-source `!OPTION=VALUE`
// directives, whose diagnostics are reported by source line instead of
// argument index.
func NewDirectiveProcessor(table, minimums Table) *Processor {
	p := NewArgumentProcessor(table, minimums)
	p.Noun = "line"
	return p
}

func (p *Processor) recordError(pos token.Position, category, message string) {
	p.Errors = append(p.Errors, Error{Position: pos, Noun: p.Noun, Category: category, Message: message})
}

func (p *Processor) tokenize(raw string, at token.Position) []rawToken {
	if len(raw) == 0 {
		return nil
	}

	i := 0
	col := at.Column
	if raw[0] == p.DirectivePrefix {
		i = 1
		col++
	}

	terminators := keywords.LineBreakCharacters + keywords.WhiteSpaceCharacters + string(p.Delimiter)
	n := len(raw)
	var toks []rawToken

	for i < n {
		if !strings.ContainsRune(terminators, rune(raw[i])) {
			lowerIndex, lowerCol := i, col
			for i < n && !strings.ContainsRune(terminators, rune(raw[i])) {
				i++
				col++
			}
			toks = append(toks, rawToken{
				Value:    token.Casing(raw[lowerIndex:i]),
				Position: token.Position{Row: at.Row, Column: lowerCol},
			})
		} else {
			i++
			col++
		}
	}
	return toks
}

func (p *Processor) validNumberOfTokens(toks []rawToken) bool {
	switch len(toks) {
	case 0:
		return false
	case 1:
		p.recordError(toks[0].Position, "Syntax Error", "A Key : Value pair was not found")
		return false
	case 2:
		return true
	default:
		p.recordError(token.Position{Row: toks[0].Position.Row, Column: 0}, "Syntax Error",
			"Should only contain a single Key : Value pair")
		return false
	}
}

func (p *Processor) validOption(opt rawToken) bool {
	if _, ok := p.Table[opt.Value]; !ok {
		p.recordError(opt.Position, "Unknown Option Error", "Option is not recognised")
		return false
	}
	return true
}

func (p *Processor) containsNoSign(value rawToken) bool {
	switch value.Value[0] {
	case '+':
		p.recordError(value.Position, "Invalid Value Error", "Do not specify the sign of a configuration value")
		return false
	case '-':
		p.recordError(value.Position, "Invalid Value Error", "A configuration value must be a non-negative, denary integer")
		return false
	default:
		return true
	}
}

func (p *Processor) validValue(value rawToken) bool {
	valid := true
	col := value.Position.Column
	for _, c := range []byte(value.Value) {
		if c < '0' || c > '9' {
			p.recordError(token.Position{Row: value.Position.Row, Column: col}, "Invalid Value Error", "Value must only contain integers")
			valid = false
		}
		col++
	}
	return valid
}

func (p *Processor) update(opt, value rawToken) {
	n, _ := strconv.Atoi(value.Value)
	min := p.Minimums[opt.Value]
	if n < min {
		p.recordError(value.Position, "Minimum Value Error", fmt.Sprintf("Value is below the minimum of %d", min))
		return
	}
	p.Table[opt.Value] = n
}

func (p *Processor) parse(toks []rawToken) {
	if !p.validNumberOfTokens(toks) {
		return
	}
	opt, value := toks[0], toks[1]
	if !p.validOption(opt) || !p.containsNoSign(value) || !p.validValue(value) {
		return
	}
	p.update(opt, value)
}

// ProcessArguments validates a list of external "option=value" strings,
// one per CLI argument, numbering them from 1.
func (p *Processor) ProcessArguments(args []string) []Error {
	for i, arg := range args {
		p.parse(p.tokenize(arg, token.Position{Row: i + 1, Column: 1}))
	}
	return p.Errors
}

// Directive is one `!OPTION=VALUE` directive extracted from source text,
// together with the position it was found at.
type Directive struct {
	Text     string
	Position token.Position
}

// ProcessDirectives validates a list of in-source directives, reporting
// diagnostics at each directive's own source position.
func (p *Processor) ProcessDirectives(directives []Directive) []Error {
	for _, d := range directives {
		p.parse(p.tokenize(d.Text, d.Position))
	}
	return p.Errors
}
