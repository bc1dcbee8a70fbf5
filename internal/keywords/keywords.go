/*
 * Chadsembly - Instruction set, addressing modes, and register keywords
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

// Package keywords holds the static lookup tables shared by every
// compilation stage and the VM: the opcode table, addressing-mode aliases,
// register names, and directive/default strings. They are built once, at
// package init, per the "pure lookup tables owned by the component" design
// note rather than re-derived per call.
package keywords

// Opcode identifies one of the 27 machine operations. Values are stable and
// match the image encoding.
type Opcode int

const (
	HLT Opcode = iota
	ADD
	SUB
	STA
	NOP
	LDA
	BRA
	BRZ
	BRP
	INP
	OUT
	OUTC
	OUTB
	AND
	OR
	NOT
	XOR
	LSL
	LSR
	ASL
	ASR
	CSL
	CSR
	CSLC
	CSRC
	CALL
	RET
)

// NumberOfInstructions is the count of distinct opcodes, used to size the
// opcode field of an encoded instruction.
const NumberOfInstructions = int(RET) + 1

// InstructionSet maps a normalized mnemonic to its opcode.
var InstructionSet = map[string]Opcode{
	"HLT": HLT, "ADD": ADD, "SUB": SUB, "STA": STA, "NOP": NOP,
	"LDA": LDA, "BRA": BRA, "BRZ": BRZ, "BRP": BRP, "INP": INP,
	"OUT": OUT, "OUTC": OUTC, "OUTB": OUTB, "AND": AND, "OR": OR,
	"NOT": NOT, "XOR": XOR, "LSL": LSL, "LSR": LSR, "ASL": ASL,
	"ASR": ASR, "CSL": CSL, "CSR": CSR, "CSLC": CSLC, "CSRC": CSRC,
	"CALL": CALL, "RET": RET,
}

// OpcodeNames maps an opcode back to its mnemonic, for diagnostics.
var OpcodeNames = func() map[Opcode]string {
	m := make(map[Opcode]string, len(InstructionSet))
	for name, op := range InstructionSet {
		m[op] = name
	}
	return m
}()

// NumberOfOperands gives the arity (0, 1, or 2) of each instruction.
var NumberOfOperands = map[string]int{
	"HLT": 0, "ADD": 2, "SUB": 2, "STA": 2, "NOP": 0,
	"LDA": 2, "BRA": 2, "BRZ": 2, "BRP": 2, "INP": 1,
	"OUT": 1, "OUTC": 1, "OUTB": 1, "AND": 2, "OR": 2,
	"NOT": 2, "XOR": 2, "LSL": 2, "LSR": 2, "ASL": 2,
	"ASR": 2, "CSL": 2, "CSR": 2, "CSLC": 2, "CSRC": 2,
	"CALL": 1, "RET": 0,
}

// DataFlowInstructions move data directly between operands; their source
// operand may never be addressed in immediate mode.
var DataFlowInstructions = map[string]bool{"STA": true, "INP": true}

// ExplicitSingleOperandInstructions require their operand to be stated; it
// is never inferred.
var ExplicitSingleOperandInstructions = map[string]bool{"CALL": true}

// BranchInstructions manipulate the program counter; their source operand
// must be a DIRECT-addressed branch or procedure label.
var BranchInstructions = map[string]bool{"BRA": true, "BRZ": true, "BRP": true}

// CallInstructions transfer control to a procedure.
var CallInstructions = map[string]bool{"CALL": true}

// InputInstructions read from the standard input stream.
var InputInstructions = map[string]bool{"INP": true}

// AssemblyDirective is the DAT variable-declaration keyword.
const AssemblyDirective = "DAT"

// AddressingMode identifies one of the four operand addressing schemes.
type AddressingMode int

const (
	RegisterMode AddressingMode = iota
	IndirectMode
	DirectMode
	ImmediateMode
)

// NumberOfAddressingModes sizes the addressing-mode field of an encoded
// instruction.
const NumberOfAddressingModes = int(ImmediateMode) + 1

// Canonical single-character addressing-mode lexemes.
const (
	RegisterAddressingMode  = "%"
	IndirectAddressingMode  = ">"
	DirectAddressingMode    = "@"
	ImmediateAddressingMode = "#"
)

// AddressingModeCharacters maps the single-character lexeme to its mode.
var AddressingModeCharacters = map[byte]AddressingMode{
	'%': RegisterMode,
	'>': IndirectMode,
	'@': DirectMode,
	'#': ImmediateMode,
}

// AddressingModeToOpcode maps a canonical lexeme to its encoded opcode.
var AddressingModeToOpcode = map[string]AddressingMode{
	RegisterAddressingMode:  RegisterMode,
	IndirectAddressingMode:  IndirectMode,
	DirectAddressingMode:    DirectMode,
	ImmediateAddressingMode: ImmediateMode,
}

// AddressingModeKeywordAliases maps the word form of an addressing mode to
// its canonical lexeme, so e.g. "REGISTER" lexes the same as "%".
var AddressingModeKeywordAliases = map[string]string{
	"REGISTER": RegisterAddressingMode,
	"INDIRECT": IndirectAddressingMode,
	"DIRECT":   DirectAddressingMode,
	"IMMEDIATE": ImmediateAddressingMode,
}

// General-purpose register aliases: NAME followed by one or more digits
// names general-purpose register <digits>.
var GeneralPurposeRegisterAliases = map[string]bool{
	"REGISTER": true, "REG": true, "R": true,
}

// Special-purpose register names.
const (
	Accumulator    = "ACC"
	ProgramCounter = "PC"
	ReturnRegister = "RR"
	FlagsRegister  = "FR"
)

// SpecialPurposeRegisters is the set of special register names.
var SpecialPurposeRegisters = map[string]bool{
	Accumulator: true, ProgramCounter: true, ReturnRegister: true, FlagsRegister: true,
}

// NumberOfSpecialPurposeRegisters sizes the fixed block of registers that
// sits above the general-purpose registers.
const NumberOfSpecialPurposeRegisters = 4

// SpecialPurposeRegistersOffset is the fixed offset of each special
// register above the top general-purpose register.
var SpecialPurposeRegistersOffset = map[string]int{
	Accumulator:    1,
	ProgramCounter: 2,
	ReturnRegister: 3,
	FlagsRegister:  4,
}

// Mnemonics of the one-operand instructions.
const (
	OutInstr  = "OUT"
	OutCInstr = "OUTC"
	OutBInstr = "OUTB"
	InpInstr  = "INP"
	CallInstr = "CALL"
)

// WhiteSpaceCharacters are skipped outside of tokens.
const WhiteSpaceCharacters = " \t\v"

// LineBreakCharacters terminate a statement and a source line.
const LineBreakCharacters = "\n\r\f"

// Syntax punctuation.
const (
	CommentPrefix           = ';'
	DirectivePrefix         = '!'
	TokenDelimiter          = '='
	InstructionSeparator    = ','
	LineBreakSymbol         = '/'
	LeftBraceCharacter      = '{'
	RightBraceCharacter     = '}'
)

// GlobalInstructionPoolIdentifier names the pool holding top-level code; no
// user label may collide with it.
const GlobalInstructionPoolIdentifier = ".MAIN"

// DefaultVariableValue is the initializer used when a DAT directive omits
// one.
const DefaultVariableValue = "0"
