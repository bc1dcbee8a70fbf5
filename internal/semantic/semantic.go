/*
 * Chadsembly - Semantic analysis
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

// Package semantic inserts implicit operands and addressing modes, enforces
// per-opcode operand shape, resolves label references against the local
// and global symbol tables, and lowers each pool's token stream into the
// ir.Statement representation the code generator consumes.
//
// A bare operand with no explicit addressing-mode marker is given one by
// default: a bare REGISTER token is REGISTER-addressed, a bare VALUE or
// LABEL token is DIRECT-addressed. An instruction's second operand carries
// no addressing-mode field of its own in the encoded image — it is always
// a register — so it must resolve to a REGISTER in REGISTER mode.
package semantic

import (
	"fmt"

	"github.com/chadsembly/chadsembly/internal/ir"
	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/pool"
	"github.com/chadsembly/chadsembly/internal/symtab"
	"github.com/chadsembly/chadsembly/internal/token"
)

// Error is a single semantic diagnostic.
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

// Analyze validates and lowers every pool in set, keyed by pool identifier
// (the global pool's is pool.GlobalIdentifier).
func Analyze(set *pool.Set) (map[string][]ir.Statement, []Error) {
	result := make(map[string][]ir.Statement, 1+len(set.Order))
	var errs []Error

	for _, p := range set.All() {
		stmts, perrs := analyzePool(p, set.Global)
		result[p.Identifier] = stmts
		errs = append(errs, perrs...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

func analyzePool(p, global *pool.Pool) ([]ir.Statement, []Error) {
	var stmts []ir.Statement
	var errs []Error

	toks := p.Tokens
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Kind != token.INSTRUCTION {
			// END tokens and the branch-declaration LABEL attached to the
			// following instruction are not statements on their own.
			i++
			continue
		}

		name := tok.Lexeme
		opcode := keywords.InstructionSet[name]
		arity := keywords.NumberOfOperands[name]

		var operands []ir.Operand
		var operrs []Error
		next := i + 1

		switch arity {
		case 1:
			var op ir.Operand
			op, next, operrs = readSingleOperand(toks, next, name, tok, p, global)
			operands = []ir.Operand{op}
		case 2:
			operands, next, operrs = readDoubleOperand(toks, next, name, tok, p, global)
		}
		errs = append(errs, operrs...)

		if next < len(toks) && toks[next].Kind != token.END {
			errs = append(errs, newError(toks[next].Position, "Excess Operand Error",
				fmt.Sprintf("%s was given more operands than it accepts", name)))
		}
		for next < len(toks) && toks[next].Kind != token.END {
			next++
		}
		if next < len(toks) {
			next++
		}

		stmts = append(stmts, ir.Statement{Opcode: opcode, Position: tok.Position, Operands: operands})
		i = next
	}

	return stmts, errs
}

func defaultAccOperand(pos token.Position) ir.Operand {
	return ir.Operand{
		Mode:  keywords.RegisterMode,
		Value: token.New(token.REGISTER, keywords.Accumulator, pos.Row, pos.Column),
	}
}

// readOperandTokens reads one `[ADDRESSING_MODE] value` operand site
// starting at i, applying the default addressing mode when none was
// written and validating the register-0 and data-flow-immediate rules.
func readOperandTokens(toks []token.Token, i int, name string, isSource bool) (ir.Operand, int, []Error) {
	var errs []Error
	var modeTok token.Token
	explicit := false

	if i < len(toks) && toks[i].Kind == token.ADDRESSING_MODE {
		explicit = true
		modeTok = toks[i]
		i++
	}
	if i >= len(toks) || toks[i].Kind == token.END {
		errs = append(errs, newError(modeTok.Position, "Missing Operand Error",
			fmt.Sprintf("%s is missing an operand value", name)))
		return ir.Operand{}, i, errs
	}

	valueTok := toks[i]
	i++

	mode, ok := resolveMode(modeTok, valueTok, explicit)
	if !ok {
		errs = append(errs, newError(valueTok.Position, "Invalid Operand Error",
			fmt.Sprintf("a %s is not a valid target for this addressing mode", valueTok.Kind)))
	}

	if valueTok.Kind == token.REGISTER && valueTok.Lexeme == "0" {
		errs = append(errs, newError(valueTok.Position, "Invalid Operand Error",
			"register 0 does not exist; general-purpose registers are numbered from 1"))
	}

	if isSource && keywords.DataFlowInstructions[name] && mode == keywords.ImmediateMode {
		errs = append(errs, newError(valueTok.Position, "Invalid Operand Error",
			fmt.Sprintf("%s cannot read its source in immediate mode", name)))
	}

	return ir.Operand{Mode: mode, Value: valueTok}, i, errs
}

func requireDirectLabel(name string, op ir.Operand) []Error {
	if op.Value.Kind != token.LABEL || op.Mode != keywords.DirectMode {
		return []Error{newError(op.Value.Position, "Invalid Operand Error",
			fmt.Sprintf("%s requires a label operand", name))}
	}
	return nil
}

func resolveLabelEntry(valueTok token.Token, p, global *pool.Pool) (*symtab.Entry, bool) {
	if e, ok := p.SymbolTable.Get(valueTok.Lexeme); ok {
		return e, true
	}
	if p != global {
		if e, ok := global.SymbolTable.Get(valueTok.Lexeme); ok {
			return e, true
		}
	}
	return nil, false
}

// validateLabelContext checks that a resolved label's kind fits how name
// uses it: CALL requires a procedure, a branch instruction requires a
// branch or procedure, and every other use as a data operand requires a
// variable.
func validateLabelContext(name string, valueTok token.Token, entry *symtab.Entry) []Error {
	switch {
	case keywords.CallInstructions[name]:
		if entry.Kind != symtab.Procedure {
			return []Error{newError(valueTok.Position, "Invalid Label Error", "CALL must target a procedure label")}
		}
	case keywords.BranchInstructions[name]:
		if entry.Kind == symtab.Variable {
			return []Error{newError(valueTok.Position, "Invalid Label Error",
				fmt.Sprintf("%s cannot target a variable label", name))}
		}
	default:
		if entry.Kind != symtab.Variable {
			return []Error{newError(valueTok.Position, "Invalid Label Error",
				"a branch or procedure label cannot be used as a data operand")}
		}
	}
	return nil
}

func checkLabelReference(name string, op ir.Operand, p, global *pool.Pool) []Error {
	if op.Value.Kind != token.LABEL {
		return nil
	}
	entry, ok := resolveLabelEntry(op.Value, p, global)
	if !ok {
		return []Error{newError(op.Value.Position, "Unknown Label Error",
			fmt.Sprintf("attempting to use an undeclared label %q", op.Value.Lexeme))}
	}
	return validateLabelContext(name, op.Value, entry)
}

// readSingleOperand reads the lone operand of a one-operand instruction. A
// wholly absent operand defaults to register-mode ACC, unless name is in
// the explicit-operand set (CALL), which must always state its target.
func readSingleOperand(toks []token.Token, i int, name string, instrTok token.Token, p, global *pool.Pool) (ir.Operand, int, []Error) {
	if i >= len(toks) || toks[i].Kind == token.END {
		if keywords.ExplicitSingleOperandInstructions[name] {
			return ir.Operand{}, i, []Error{newError(instrTok.Position, "Missing Operand Error",
				fmt.Sprintf("%s requires an operand", name))}
		}
		return defaultAccOperand(instrTok.Position), i, nil
	}

	op, next, errs := readOperandTokens(toks, i, name, true)

	if keywords.ExplicitSingleOperandInstructions[name] {
		errs = append(errs, requireDirectLabel(name, op)...)
	}
	if keywords.InputInstructions[name] && (op.Value.Kind != token.REGISTER || op.Mode != keywords.RegisterMode) {
		errs = append(errs, newError(op.Value.Position, "Invalid Operand Error", "INP requires a register operand"))
	}
	errs = append(errs, checkLabelReference(name, op, p, global)...)

	return op, next, errs
}

// readDoubleOperand reads a two-operand instruction's source and
// destination. A wholly absent destination defaults to register-mode ACC;
// the destination must always resolve to a register.
func readDoubleOperand(toks []token.Token, i int, name string, instrTok token.Token, p, global *pool.Pool) ([]ir.Operand, int, []Error) {
	var errs []Error

	src, next, serrs := readOperandTokens(toks, i, name, true)
	errs = append(errs, serrs...)

	if keywords.BranchInstructions[name] {
		errs = append(errs, requireDirectLabel(name, src)...)
	}
	errs = append(errs, checkLabelReference(name, src, p, global)...)

	var dst ir.Operand
	dstOK := false
	switch {
	case next >= len(toks) || toks[next].Kind == token.END:
		dst = defaultAccOperand(instrTok.Position)
		dstOK = true
	case toks[next].Kind == token.SEPARATOR:
		next++
		var derrs []Error
		dst, next, derrs = readOperandTokens(toks, next, name, false)
		errs = append(errs, derrs...)
		dstOK = len(derrs) == 0
	default:
		errs = append(errs, newError(toks[next].Position, "Missing Operand Error",
			fmt.Sprintf("%s expects its operands separated by ','", name)))
	}

	if dstOK && (dst.Value.Kind != token.REGISTER || dst.Mode != keywords.RegisterMode) {
		errs = append(errs, newError(dst.Value.Position, "Invalid Operand Error", "Second operand must be a register"))
	}

	return []ir.Operand{src, dst}, next, errs
}

// resolveMode determines an operand's addressing mode — from its explicit
// marker if one was written, or the implicit default for its token kind —
// and reports whether that mode is compatible with the operand's token kind.
func resolveMode(modeTok, valueTok token.Token, explicit bool) (keywords.AddressingMode, bool) {
	var mode keywords.AddressingMode

	if explicit {
		m, known := keywords.AddressingModeToOpcode[modeTok.Lexeme]
		if !known {
			return 0, false
		}
		mode = m
	} else {
		switch valueTok.Kind {
		case token.REGISTER:
			mode = keywords.RegisterMode
		case token.VALUE, token.LABEL:
			mode = keywords.DirectMode
		default:
			return 0, false
		}
	}

	return mode, validModeForKind(mode, valueTok.Kind)
}

// validModeForKind checks an addressing mode against its value token's
// kind. REGISTER mode names a register directly; INDIRECT and DIRECT both
// name a memory address (indirect dereferences it once more at runtime),
// so both accept a literal address or a label; IMMEDIATE takes only a
// literal, never a label.
func validModeForKind(mode keywords.AddressingMode, kind token.Kind) bool {
	switch mode {
	case keywords.RegisterMode:
		return kind == token.REGISTER
	case keywords.IndirectMode, keywords.DirectMode:
		return kind == token.VALUE || kind == token.LABEL
	case keywords.ImmediateMode:
		return kind == token.VALUE
	default:
		return false
	}
}
