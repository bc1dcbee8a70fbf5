/*
 * Chadsembly - Symbol tables
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

// Package symtab implements the per-pool symbol table. Entries are a tagged
// variant rather than one struct with a repurposed integer field: a
// Variable's initializer and resolved address, a Branch's relative and
// absolute address, and a Procedure's absolute address are each named
// fields, so no phase of the pipeline has to remember which meaning an
// untyped "value" field currently holds.
package symtab

// Kind tags which variant an Entry holds.
type Kind int

const (
	Branch Kind = iota
	Variable
	Procedure
)

func (k Kind) String() string {
	switch k {
	case Branch:
		return "branch"
	case Variable:
		return "variable"
	case Procedure:
		return "procedure"
	default:
		return "unknown"
	}
}

// Entry is one symbol table record. Only the fields relevant to Kind are
// meaningful at any point:
//   - Branch:    RelativeIndex holds the in-pool instruction count until
//     the code generator rewrites AbsoluteAddress.
//   - Variable:  Initializer holds the DAT initializer until the code
//     generator rewrites AbsoluteAddress and records a promise.
//   - Procedure: AbsoluteAddress is set once, during code generation.
type Entry struct {
	Identifier      string
	Kind            Kind
	Initializer     int
	RelativeIndex   int
	AbsoluteAddress int
}

// Table maps a normalized identifier to its Entry. The zero value is ready
// to use.
type Table struct {
	entries map[string]*Entry
	order   []string
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Insert adds or replaces the entry for identifier, preserving declaration
// order for Labels (used by the code generator to walk variables in
// declaration order).
func (t *Table) Insert(entry Entry) {
	if t.entries == nil {
		t.entries = make(map[string]*Entry)
	}
	if _, exists := t.entries[entry.Identifier]; !exists {
		t.order = append(t.order, entry.Identifier)
	}
	e := entry
	t.entries[entry.Identifier] = &e
}

// Get returns the entry for identifier and whether it was present,
// replacing the NULL-sentinel idiom with Go's optional-result convention.
func (t *Table) Get(identifier string) (*Entry, bool) {
	if t.entries == nil {
		return nil, false
	}
	e, ok := t.entries[identifier]
	return e, ok
}

// Labels returns every identifier in the table, in declaration order.
func (t *Table) Labels() []string {
	return t.order
}
