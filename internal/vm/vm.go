/*
 * Chadsembly - Virtual machine
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

// Package vm implements the unified memory+register pool, the
// fetch-decode-execute loop, and the 27 opcodes of the executed image.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chadsembly/chadsembly/internal/bitstring"
	"github.com/chadsembly/chadsembly/internal/keywords"
	"github.com/chadsembly/chadsembly/internal/layout"
)

// Machine is the executing VM: a memory+register pool addressed by a
// single integer key space (memory cells at key ≥ 0, registers at
// key < 0), plus the I/O streams its opcodes read and write.
type Machine struct {
	cells map[int]string
	lay   layout.Layout
	clock time.Duration

	in  *bufio.Reader
	out io.Writer
}

// New returns a Machine ready to Load an image. clock is the delay
// between executed instructions.
func New(lay layout.Layout, clock time.Duration, in io.Reader, out io.Writer) *Machine {
	return &Machine{
		cells: make(map[int]string),
		lay:   lay,
		clock: clock,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Banner is a short, human-readable description of the machine's
// configuration, printed at startup.
func (m *Machine) Banner() string {
	return fmt.Sprintf("chadsembly vm — %d-bit cells, %d memory cells, %d general registers, %s clock",
		m.lay.W, m.lay.MemoryCells, m.lay.GeneralRegisters, m.clock)
}

// Load copies image into memory cells 0..len(image)-1. It fails if the
// image is larger than the machine's memory.
func (m *Machine) Load(image []string) error {
	if len(image) > m.lay.MemoryCells {
		return fmt.Errorf("runtime error: image of %d cells exceeds %d available memory cells", len(image), m.lay.MemoryCells)
	}
	for i, cell := range image {
		m.cells[i] = cell
	}
	return nil
}

func (m *Machine) specialRegisterKey(name string) int {
	return -(m.lay.GeneralRegisters + keywords.SpecialPurposeRegistersOffset[name])
}

func (m *Machine) pcKey() int  { return m.specialRegisterKey(keywords.ProgramCounter) }
func (m *Machine) rrKey() int  { return m.specialRegisterKey(keywords.ReturnRegister) }
func (m *Machine) frKey() int  { return m.specialRegisterKey(keywords.FlagsRegister) }
func (m *Machine) accKey() int { return m.specialRegisterKey(keywords.Accumulator) }

// Peek returns the signed value at key (a memory cell for key >= 0, a
// register for key < 0) without mutating machine state. For a monitor or
// debugger, not the fetch-decode-execute loop.
func (m *Machine) Peek(key int) int64 {
	return bitstring.ReadSigned(m.read(key))
}

// ProgramCounter returns the current value of the PC register.
func (m *Machine) ProgramCounter() int64 {
	return m.Peek(m.pcKey())
}

// Registers returns every special- and general-purpose register's current
// value keyed by name, for a monitor's "regs" command.
func (m *Machine) Registers() map[string]int64 {
	regs := map[string]int64{
		keywords.Accumulator:    m.Peek(m.accKey()),
		keywords.ProgramCounter: m.Peek(m.pcKey()),
		keywords.ReturnRegister: m.Peek(m.rrKey()),
		keywords.FlagsRegister:  m.Peek(m.frKey()),
	}
	for n := 1; n <= m.lay.GeneralRegisters; n++ {
		regs[fmt.Sprintf("R%d", n)] = m.Peek(-n)
	}
	return regs
}

// read returns the bit string at key, or a zero cell if it was never
// written — registers and uninitialized memory both start at zero.
func (m *Machine) read(key int) string {
	if bits, ok := m.cells[key]; ok {
		return bits
	}
	return bitstring.Signed(0, m.lay.W)
}

func (m *Machine) write(key int, bits string) {
	m.cells[key] = bits
}

// resolveAddress implements resolve-for-address: the category used by
// data-flow, branch, and call instructions to turn their source operand
// into a memory or register key.
func (m *Machine) resolveAddress(mode keywords.AddressingMode, value int64) int64 {
	switch mode {
	case keywords.IndirectMode:
		return bitstring.ReadSigned(m.read(int(value)))
	case keywords.RegisterMode:
		return -value
	default: // DirectMode, ImmediateMode
		return value
	}
}

// resolveValue implements resolve-for-value: the category used by every
// instruction except the address class and OUTB.
func (m *Machine) resolveValue(mode keywords.AddressingMode, value int64) int64 {
	switch mode {
	case keywords.DirectMode:
		return bitstring.ReadSigned(m.read(int(value)))
	case keywords.IndirectMode:
		return bitstring.ReadSigned(m.read(int(bitstring.ReadSigned(m.read(int(value))))))
	case keywords.RegisterMode:
		return bitstring.ReadSigned(m.read(int(-value)))
	default: // ImmediateMode
		return value
	}
}

// resolveBinary implements resolve-for-binary: OUTB's category, which
// prints the raw bit string rather than its integer value.
func (m *Machine) resolveBinary(mode keywords.AddressingMode, value int64) string {
	switch mode {
	case keywords.DirectMode:
		return m.read(int(value))
	case keywords.IndirectMode:
		return m.read(int(bitstring.ReadSigned(m.read(int(value)))))
	case keywords.RegisterMode:
		return m.read(int(-value))
	default: // ImmediateMode
		return bitstring.Signed(value, m.lay.W)
	}
}

func (m *Machine) flagsCarry() byte {
	bits := m.read(m.frKey())
	return bits[len(bits)-1]
}

func (m *Machine) writeFlagsCarry(carry byte) {
	m.write(m.frKey(), strings.Repeat("0", m.lay.W-1)+string(carry))
}

// operandContext is the decoded, not-yet-resolved source operand passed
// to each opcode handler, plus the always-a-register destination key.
type operandContext struct {
	mode   keywords.AddressingMode
	rawSrc int64
	dstKey int64
}

func (m *Machine) srcAsAddress(ctx operandContext) int64 { return m.resolveAddress(ctx.mode, ctx.rawSrc) }
func (m *Machine) srcAsValue(ctx operandContext) int64   { return m.resolveValue(ctx.mode, ctx.rawSrc) }
func (m *Machine) srcAsBinary(ctx operandContext) string { return m.resolveBinary(ctx.mode, ctx.rawSrc) }

func (m *Machine) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

// Step executes one fetch-decode-execute cycle. halted is true once the
// program counter has run past the end of memory or HLT executed.
func (m *Machine) Step() (halted bool, err error) {
	pc := bitstring.ReadUnsigned(m.read(m.pcKey()))
	if int(pc) >= m.lay.MemoryCells {
		return true, nil
	}

	if m.clock > 0 {
		time.Sleep(m.clock)
	}

	instr := m.read(int(pc))
	m.write(m.pcKey(), bitstring.Signed(pc+1, m.lay.W))

	opcode := keywords.Opcode(bitstring.ReadUnsigned(instr[:m.lay.M]))
	mode := keywords.AddressingMode(bitstring.ReadUnsigned(instr[m.lay.M : m.lay.M+m.lay.A]))
	src := bitstring.ReadSigned(instr[m.lay.M+m.lay.A : m.lay.M+m.lay.A+m.lay.O])
	dst := bitstring.ReadSigned(instr[m.lay.M+m.lay.A+m.lay.O:])

	handler, ok := dispatch[opcode]
	if !ok {
		return false, fmt.Errorf("runtime error: program counter pointed to a non-instruction (opcode %d)", opcode)
	}

	ctx := operandContext{mode: mode, rawSrc: src, dstKey: -dst}
	return handler(m, ctx)
}

// Run steps the machine until it halts or a runtime error occurs.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}
