/*
 * Chadsembly - In-source directive extraction
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
	"strings"

	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/token"
)

func isLineBreak(c byte) bool {
	return strings.IndexByte(keywords.LineBreakCharacters, c) >= 0
}

// ExtractDirectives scans source for `!OPTION=VALUE` directives and
// comments, returning the source with every directive removed (comments
// are left in place for the lexer to skip) along with the directive texts
// and the positions they were found at.
func ExtractDirectives(source string) (cleaned string, directives []Directive) {
	var out strings.Builder
	pos := token.Position{Row: 1, Column: 1}
	terminators := keywords.LineBreakCharacters + string(keywords.CommentPrefix) + string(keywords.DirectivePrefix)
	i, n := 0, len(source)

	for i < n {
		c := source[i]
		switch {
		case c == keywords.CommentPrefix:
			start := i
			for i < n && !isLineBreak(source[i]) {
				i++
			}
			out.WriteString(source[start:i])
			pos.Column += i - start

		case c == keywords.DirectivePrefix:
			directivePos := pos
			start := i
			j := i + 1
			for j < n && !strings.ContainsRune(terminators, rune(source[j])) {
				j++
			}
			directives = append(directives, Directive{Text: source[start:j], Position: directivePos})
			pos.Column += j - start
			i = j
			continue

		default:
			out.WriteByte(c)
			pos.Advance(c, 1)
			i++
			continue
		}
	}

	return out.String(), directives
}
