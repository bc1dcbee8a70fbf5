/*
 * Chadsembly - Instruction pools
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

// Package pool defines the instruction pool: one token stream and one
// symbol table per lexical scope (the global scope, or one procedure body).
package pool

import (
	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

// GlobalIdentifier names the pool holding top-level code; no user label may
// collide with it.
const GlobalIdentifier = ".MAIN"

// Pool is the token stream and symbol table for one lexical scope.
type Pool struct {
	Identifier  string
	Tokens      []token.Token
	SymbolTable *symtab.Table
}

// New returns an empty, named pool.
func New(identifier string) *Pool {
	return &Pool{Identifier: identifier, SymbolTable: symtab.New()}
}

// Set is the collection of pools produced by the parser: the global pool
// plus one pool per procedure, with a fixed iteration order that every
// later stage (semantic analysis, code generation) must respect.
type Set struct {
	Global     *Pool
	Procedures map[string]*Pool
	Order      []string // procedure identifiers, in first-declared order
}

// NewSet returns an empty Set with an initialized global pool.
func NewSet() *Set {
	return &Set{
		Global:     New(GlobalIdentifier),
		Procedures: make(map[string]*Pool),
	}
}

// AddProcedure registers a new procedure pool, recording its declaration
// order. Re-declaring a procedure name overwrites its pool but keeps the
// original position in Order.
func (s *Set) AddProcedure(identifier string) *Pool {
	if _, exists := s.Procedures[identifier]; !exists {
		s.Order = append(s.Order, identifier)
	}
	p := New(identifier)
	s.Procedures[identifier] = p
	return p
}

// All returns the global pool followed by every procedure pool in
// declaration order — the fixed order every later stage must use.
func (s *Set) All() []*Pool {
	all := make([]*Pool, 0, 1+len(s.Order))
	all = append(all, s.Global)
	for _, id := range s.Order {
		all = append(all, s.Procedures[id])
	}
	return all
}

// CountInstructions counts INSTRUCTION tokens in a pool.
func CountInstructions(p *Pool) int {
	n := 0
	for _, t := range p.Tokens {
		if t.Kind == token.INSTRUCTION {
			n++
		}
	}
	return n
}

// CountVariables counts VARIABLE-kind entries in a pool's symbol table.
func CountVariables(p *Pool) int {
	n := 0
	for _, id := range p.SymbolTable.Labels() {
		if e, ok := p.SymbolTable.Get(id); ok && e.Kind == symtab.Variable {
			n++
		}
	}
	return n
}
