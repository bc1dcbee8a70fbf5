/*
 * Chadsembly - Source lexer
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

// Package lexer turns preprocessed Chadsembly source text into a stream of
// typed tokens with source positions.
package lexer

import (
	"fmt"
	"strings"

	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/token"
)

// Error is a single lexical diagnostic.
type Error struct {
	Position token.Position
	Category string
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s found in line %d at position %d: %s", e.Category, e.Position.Row, e.Position.Column, e.Message)
}

var terminators = keywords.WhiteSpaceCharacters +
	keywords.LineBreakCharacters +
	string(keywords.InstructionSeparator) +
	string(keywords.LeftBraceCharacter) +
	string(keywords.RightBraceCharacter) +
	"#@>%" +
	string(keywords.CommentPrefix)

func isTerminator(c byte) bool {
	return strings.IndexByte(terminators, c) >= 0
}

func isWhitespace(c byte) bool {
	return strings.IndexByte(keywords.WhiteSpaceCharacters, c) >= 0
}

func isLineBreak(c byte) bool {
	return strings.IndexByte(keywords.LineBreakCharacters, c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Lexer scans source text into a token stream.
type Lexer struct {
	source   string
	pos      int
	row, col int
	prevKind token.Kind
	tokens   []token.Token
	errors   []Error
}

// New returns a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: source, row: 1, col: 1, prevKind: token.END}
}

func (l *Lexer) recordError(pos token.Position, category, message string) {
	l.errors = append(l.errors, Error{Position: pos, Category: category, Message: message})
}

func (l *Lexer) emit(kind token.Kind, lexeme string, row, col int) {
	l.tokens = append(l.tokens, token.New(kind, lexeme, row, col))
	l.prevKind = kind
}

func (l *Lexer) advance(c byte) {
	if isLineBreak(c) {
		l.row++
		l.col = 1
		return
	}
	l.col++
}

// Lex scans the whole source and returns the token stream and any lexical
// errors. The stream always ends with exactly one END token.
func (l *Lexer) Lex() ([]token.Token, []Error) {
	n := len(l.source)
	for l.pos < n {
		c := l.source[l.pos]
		row, col := l.row, l.col

		switch {
		case c == keywords.CommentPrefix:
			for l.pos < n && !isLineBreak(l.source[l.pos]) {
				l.advance(l.source[l.pos])
				l.pos++
			}

		case isLineBreak(c):
			if l.prevKind != token.END {
				l.emit(token.END, string(keywords.LineBreakSymbol), row, col)
			}
			l.advance(c)
			l.pos++

		case isWhitespace(c):
			l.advance(c)
			l.pos++

		case c == keywords.LeftBraceCharacter:
			l.emit(token.LEFT_BRACE, "{", row, col)
			l.advance(c)
			l.pos++

		case c == keywords.RightBraceCharacter:
			l.emit(token.RIGHT_BRACE, "}", row, col)
			l.advance(c)
			l.pos++

		case c == keywords.InstructionSeparator:
			l.emit(token.SEPARATOR, ",", row, col)
			l.advance(c)
			l.pos++

		case isAddressingModeChar(c):
			mode := string(c)
			l.emit(token.ADDRESSING_MODE, canonicalAddressingMode(mode), row, col)
			l.advance(c)
			l.pos++

		default:
			l.lexWord()
		}
	}

	if l.prevKind != token.END {
		l.tokens = append(l.tokens, token.New(token.END, string(keywords.LineBreakSymbol), l.row, l.col))
		l.prevKind = token.END
	}

	return l.tokens, l.errors
}

func isAddressingModeChar(c byte) bool {
	_, ok := keywords.AddressingModeCharacters[c]
	return ok
}

func canonicalAddressingMode(lexeme string) string {
	return lexeme
}

func (l *Lexer) lexWord() {
	n := len(l.source)
	start := l.pos
	row, col := l.row, l.col

	for l.pos < n && !isTerminator(l.source[l.pos]) {
		l.advance(l.source[l.pos])
		l.pos++
	}

	raw := l.source[start:l.pos]
	word := token.Casing(raw)

	switch {
	case word[0] == '+' || word[0] == '-' || isDigit(word[0]):
		l.lexValue(word, row, col)

	default:
		if lexeme, ok := matchRegisterAlias(word); ok {
			l.emit(token.REGISTER, lexeme, row, col)
			return
		}
		l.lexKeywordOrLabel(word, row, col)
	}
}

func (l *Lexer) lexValue(word string, row, col int) {
	sign := "+"
	digits := word
	if word[0] == '+' || word[0] == '-' {
		sign = string(word[0])
		digits = word[1:]
	}
	if digits == "" {
		l.recordError(token.Position{Row: row, Column: col}, "Invalid Value Error", "Value has no digits")
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			l.recordError(token.Position{Row: row, Column: col + i}, "Invalid Value Error", "Value must only contain digits")
		}
	}
	l.emit(token.VALUE, sign+digits, row, col)
}

// matchRegisterAlias recognizes REGISTER/REG/R followed by one or more
// digits as general-purpose register <digits>. This check must run before
// generic keyword classification: a bare "REGISTER" is an addressing-mode
// keyword, but "REGISTER5" names a register.
func matchRegisterAlias(word string) (lexeme string, ok bool) {
	i := len(word)
	for i > 0 && isDigit(word[i-1]) {
		i--
	}
	digits := word[i:]
	prefix := word[:i]
	if digits == "" {
		return "", false
	}
	if !keywords.GeneralPurposeRegisterAliases[prefix] {
		return "", false
	}
	return digits, true
}

func (l *Lexer) lexKeywordOrLabel(word string, row, col int) {
	if _, ok := keywords.InstructionSet[word]; ok {
		l.emit(token.INSTRUCTION, word, row, col)
		return
	}
	if keywords.SpecialPurposeRegisters[word] {
		l.emit(token.REGISTER, word, row, col)
		return
	}
	if canonical, ok := keywords.AddressingModeKeywordAliases[word]; ok {
		l.emit(token.ADDRESSING_MODE, canonical, row, col)
		return
	}
	if word == keywords.AssemblyDirective {
		l.emit(token.ASSEMBLY_DIRECTIVE, word, row, col)
		return
	}

	l.validateLabel(word, row, col)
	l.emit(token.LABEL, word, row, col)
}

func (l *Lexer) validateLabel(word string, row, col int) {
	if !isAlpha(word[0]) && word[0] != '_' {
		l.recordError(token.Position{Row: row, Column: col}, "Invalid Label Error", "A label must begin with a letter or underscore")
	}
	for i := 1; i < len(word); i++ {
		c := word[i]
		if !isAlpha(c) && !isDigit(c) && c != '_' {
			l.recordError(token.Position{Row: row, Column: col + i}, "Invalid Label Error", "A label may only contain letters, digits, and underscores")
		}
	}
}
