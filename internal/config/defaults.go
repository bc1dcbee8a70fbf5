/*
 * Chadsembly - Configuration defaults and option names
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

// Package config merges built-in defaults, in-source preprocessor
// directives, and caller-supplied options into one validated configuration
// table.
package config

// Recognized configuration option names.
const (
	Memory    = "MEMORY"
	Registers = "REGISTERS"
	Clock     = "CLOCK"
)

// Table maps a configuration option name to its integer value.
type Table map[string]int

// Defaults returns a fresh table of built-in default values.
func Defaults() Table {
	return Table{
		Memory:    100,
		Registers: 10,
		Clock:     0,
	}
}

// Minimums returns the read-only floor for each recognized option.
func Minimums() Table {
	return Table{
		Memory:    16,
		Registers: 4,
		Clock:     0,
	}
}

// Clone returns a shallow copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
