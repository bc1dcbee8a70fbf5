/*
 * Chadsembly - Code generator
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

// Package codegen lays procedures and variables out in one linear address
// space, rewrites every label's relative position to an absolute image
// index, and emits the fixed-width binary image the VM loads.
//
// Layout runs in two passes. Pass A walks procedures in declaration order,
// assigning each one an absolute base address and rewriting its branch
// labels' addresses in place. Pass B walks the same order assigning
// variable addresses and recording a promise — the image index an
// initializer belongs at — since a pool's variables are emitted only
// after every instruction has been. Emission then walks the pools once
// more to produce the bit strings, and a final pass writes initializers
// into the promised cells.
package codegen

import (
	"fmt"
	"strconv"

	"github.com/chadsembly/chadsembly/internal/bitstring"
	"github.com/chadsembly/chadsembly/internal/ir"
	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/layout"
	"github.com/chadsembly/chadsembly/internal/pool"
	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

// Error is a single code-generation diagnostic. These should be
// unreachable once semantic analysis has accepted a program; they exist
// to surface a code-generator bug as a diagnostic rather than a panic.
type Error struct {
	Category string
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func newError(category, message string) Error {
	return Error{Category: category, Message: message}
}

// Image is the generated program: a sequence of W-bit cells, plus the
// layout the VM needs to decode them.
type Image struct {
	Cells  []string
	Layout layout.Layout
}

type promise struct {
	index int
	value int
}

// Generate lays out set's procedures and variables and emits their
// statements (already validated and lowered by the semantic analyzer)
// into one binary image.
func Generate(set *pool.Set, statements map[string][]ir.Statement, lay layout.Layout) (*Image, []Error) {
	var errs []Error

	instructionCount := func(identifier string) int { return len(statements[identifier]) }

	layoutProcedureAddresses(set, instructionCount)
	promises := layoutVariableAddresses(set, instructionCount)

	var cells []string
	for _, p := range set.All() {
		for _, stmt := range statements[p.Identifier] {
			bits, serrs := emitStatement(lay, stmt, p, set.Global)
			errs = append(errs, serrs...)
			cells = append(cells, bits)
		}
		for n := pool.CountVariables(p); n > 0; n-- {
			cells = append(cells, bitstring.Signed(0, lay.W))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, pr := range promises {
		cells[pr.index] = bitstring.Signed(int64(pr.value), lay.W)
	}

	return &Image{Cells: cells, Layout: lay}, nil
}

// layoutProcedureAddresses is Pass A: every procedure is assigned an
// absolute base address, each of its branch labels is rewritten from a
// pool-relative instruction index to that absolute address, and the
// global pool's own branch labels — already absolute, since the image
// starts at the global pool — are finalized too.
func layoutProcedureAddresses(set *pool.Set, instructionCount func(string) int) {
	for _, identifier := range set.Global.SymbolTable.Labels() {
		entry, _ := set.Global.SymbolTable.Get(identifier)
		if entry.Kind == symtab.Branch {
			entry.AbsoluteAddress = entry.RelativeIndex
		}
	}

	offset := instructionCount(set.Global.Identifier) + pool.CountVariables(set.Global)
	for _, id := range set.Order {
		p := set.Procedures[id]

		for _, identifier := range p.SymbolTable.Labels() {
			entry, _ := p.SymbolTable.Get(identifier)
			if entry.Kind == symtab.Branch {
				entry.AbsoluteAddress = entry.RelativeIndex + offset
			}
		}
		if procEntry, ok := set.Global.SymbolTable.Get(id); ok {
			procEntry.AbsoluteAddress = offset
		}

		offset += instructionCount(id) + pool.CountVariables(p)
	}
}

// layoutVariableAddresses is Pass B: every variable is assigned an
// absolute address in the same pool order as Pass A, and a promise is
// recorded so its initializer can be written once the image exists.
func layoutVariableAddresses(set *pool.Set, instructionCount func(string) int) []promise {
	var promises []promise

	assign := func(p *pool.Pool, offset int) int {
		for _, identifier := range p.SymbolTable.Labels() {
			entry, _ := p.SymbolTable.Get(identifier)
			if entry.Kind != symtab.Variable {
				continue
			}
			promises = append(promises, promise{index: offset, value: entry.Initializer})
			entry.AbsoluteAddress = offset
			offset++
		}
		return offset
	}

	offset := instructionCount(set.Global.Identifier)
	offset = assign(set.Global, offset)

	for _, id := range set.Order {
		p := set.Procedures[id]
		offset += instructionCount(id)
		offset = assign(p, offset)
	}

	return promises
}

func emitStatement(lay layout.Layout, stmt ir.Statement, p, global *pool.Pool) (string, []Error) {
	var errs []Error
	mode := keywords.DirectMode
	srcVal, dstVal := 0, 0

	if len(stmt.Operands) >= 1 {
		mode = stmt.Operands[0].Mode
		v, err := encodeOperandValue(stmt.Operands[0], p, global, lay.GeneralRegisters)
		if err != nil {
			errs = append(errs, newError("Code Generation Error", err.Error()))
		}
		srcVal = v
	}
	if len(stmt.Operands) >= 2 {
		v, err := encodeOperandValue(stmt.Operands[1], p, global, lay.GeneralRegisters)
		if err != nil {
			errs = append(errs, newError("Code Generation Error", err.Error()))
		}
		dstVal = v
	}

	bits := bitstring.Unsigned(int64(stmt.Opcode), lay.M) +
		bitstring.Unsigned(int64(mode), lay.A) +
		bitstring.Signed(int64(srcVal), lay.O) +
		bitstring.Signed(int64(dstVal), lay.O)

	return bits, errs
}

func encodeOperandValue(op ir.Operand, p, global *pool.Pool, generalRegisters int) (int, error) {
	switch op.Value.Kind {
	case token.REGISTER:
		return registerEncodedValue(op.Value.Lexeme, generalRegisters), nil

	case token.VALUE:
		n, err := strconv.Atoi(op.Value.Lexeme)
		if err != nil {
			return 0, fmt.Errorf("value operand %q is not an integer", op.Value.Lexeme)
		}
		return n, nil

	case token.LABEL:
		if entry, ok := p.SymbolTable.Get(op.Value.Lexeme); ok {
			return entry.AbsoluteAddress, nil
		}
		if entry, ok := global.SymbolTable.Get(op.Value.Lexeme); ok {
			return entry.AbsoluteAddress, nil
		}
		return 0, fmt.Errorf("undeclared label %q reached code generation", op.Value.Lexeme)

	default:
		return 0, fmt.Errorf("operand token kind %s cannot be encoded", op.Value.Kind)
	}
}

// registerEncodedValue is the positive value an operand names a register
// with: a special-purpose register sits just above the general-purpose
// block, and a general-purpose register number wraps into [1, G] by the
// closed-form equivalent of "while v > G: v -= G".
func registerEncodedValue(lexeme string, generalRegisters int) int {
	if keywords.SpecialPurposeRegisters[lexeme] {
		return generalRegisters + keywords.SpecialPurposeRegistersOffset[lexeme]
	}
	v, _ := strconv.Atoi(lexeme)
	return 1 + (v-1)%generalRegisters
}
