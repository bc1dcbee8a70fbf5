/*
 * Chadsembly - Opcode implementations
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

package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chadsembly/chadsembly/internal/bitstring"
	"github.com/chadsembly/chadsembly/internal/keywords"
)

type handlerFunc func(m *Machine, ctx operandContext) (halted bool, err error)

// dispatch is the opcode lookup table, built once at package init rather
// than re-derived on every Step.
var dispatch = map[keywords.Opcode]handlerFunc{
	keywords.HLT:  opHLT,
	keywords.ADD:  opADD,
	keywords.SUB:  opSUB,
	keywords.STA:  opSTA,
	keywords.NOP:  opNOP,
	keywords.LDA:  opLDA,
	keywords.BRA:  opBRA,
	keywords.BRZ:  opBRZ,
	keywords.BRP:  opBRP,
	keywords.INP:  opINP,
	keywords.OUT:  opOUT,
	keywords.OUTC: opOUTC,
	keywords.OUTB: opOUTB,
	keywords.AND:  opAND,
	keywords.OR:   opOR,
	keywords.NOT:  opNOT,
	keywords.XOR:  opXOR,
	keywords.LSL:  opLSL,
	keywords.LSR:  opLSR,
	keywords.ASL:  opASL,
	keywords.ASR:  opASR,
	keywords.CSL:  opCSL,
	keywords.CSR:  opCSR,
	keywords.CSLC: opCSLC,
	keywords.CSRC: opCSRC,
	keywords.CALL: opCALL,
	keywords.RET:  opRET,
}

func opHLT(m *Machine, ctx operandContext) (bool, error) {
	return true, nil
}

func opNOP(m *Machine, ctx operandContext) (bool, error) {
	return false, nil
}

func opADD(m *Machine, ctx operandContext) (bool, error) {
	dst := bitstring.ReadSigned(m.read(int(ctx.dstKey)))
	m.write(int(ctx.dstKey), bitstring.Signed(dst+m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

func opSUB(m *Machine, ctx operandContext) (bool, error) {
	dst := bitstring.ReadSigned(m.read(int(ctx.dstKey)))
	m.write(int(ctx.dstKey), bitstring.Signed(dst-m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

// STA copies the raw destination register cell into the memory or
// register cell the source operand addresses.
func opSTA(m *Machine, ctx operandContext) (bool, error) {
	addr := m.srcAsAddress(ctx)
	m.write(int(addr), m.read(int(ctx.dstKey)))
	return false, nil
}

func opLDA(m *Machine, ctx operandContext) (bool, error) {
	m.write(int(ctx.dstKey), bitstring.Signed(m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

func opBRA(m *Machine, ctx operandContext) (bool, error) {
	m.write(m.pcKey(), bitstring.Signed(m.srcAsAddress(ctx), m.lay.W))
	return false, nil
}

func opBRZ(m *Machine, ctx operandContext) (bool, error) {
	if bitstring.ReadSigned(m.read(int(ctx.dstKey))) == 0 {
		m.write(m.pcKey(), bitstring.Signed(m.srcAsAddress(ctx), m.lay.W))
	}
	return false, nil
}

func opBRP(m *Machine, ctx operandContext) (bool, error) {
	if bitstring.ReadSigned(m.read(int(ctx.dstKey))) >= 0 {
		m.write(m.pcKey(), bitstring.Signed(m.srcAsAddress(ctx), m.lay.W))
	}
	return false, nil
}

func opINP(m *Machine, ctx operandContext) (bool, error) {
	addr := m.srcAsAddress(ctx)
	line, err := m.readLine()
	if err != nil {
		return false, fmt.Errorf("runtime error: INP failed to read standard input: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return false, fmt.Errorf("runtime error: INP expected an integer, got %q", strings.TrimSpace(line))
	}
	m.write(int(addr), bitstring.Signed(n, m.lay.W))
	return false, nil
}

func opOUT(m *Machine, ctx operandContext) (bool, error) {
	fmt.Fprintln(m.out, m.srcAsValue(ctx))
	return false, nil
}

func opOUTC(m *Machine, ctx operandContext) (bool, error) {
	fmt.Fprint(m.out, string(rune(m.srcAsValue(ctx))))
	return false, nil
}

func opOUTB(m *Machine, ctx operandContext) (bool, error) {
	fmt.Fprintln(m.out, m.srcAsBinary(ctx))
	return false, nil
}

func opAND(m *Machine, ctx operandContext) (bool, error) {
	dst := bitstring.ReadSigned(m.read(int(ctx.dstKey)))
	m.write(int(ctx.dstKey), bitstring.Signed(dst&m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

func opOR(m *Machine, ctx operandContext) (bool, error) {
	dst := bitstring.ReadSigned(m.read(int(ctx.dstKey)))
	m.write(int(ctx.dstKey), bitstring.Signed(dst|m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

func opXOR(m *Machine, ctx operandContext) (bool, error) {
	dst := bitstring.ReadSigned(m.read(int(ctx.dstKey)))
	m.write(int(ctx.dstKey), bitstring.Signed(dst^m.srcAsValue(ctx), m.lay.W))
	return false, nil
}

// NOT is unsigned, unlike the other bitwise opcodes: the destination
// becomes the W-bit unsigned complement of the source value.
func opNOT(m *Machine, ctx operandContext) (bool, error) {
	src := m.srcAsValue(ctx)
	m.write(int(ctx.dstKey), bitstring.Unsigned(^src, m.lay.W))
	return false, nil
}

func shiftCount(m *Machine, ctx operandContext) int64 {
	n := m.srcAsValue(ctx)
	if n < 0 {
		return 0
	}
	return n
}

func opLSL(m *Machine, ctx operandContext) (bool, error) {
	m.shiftWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.LogicalShiftLeft)
	return false, nil
}

func opLSR(m *Machine, ctx operandContext) (bool, error) {
	m.shiftWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.LogicalShiftRight)
	return false, nil
}

func opASL(m *Machine, ctx operandContext) (bool, error) {
	m.shiftWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.ArithmeticShiftLeft)
	return false, nil
}

func opASR(m *Machine, ctx operandContext) (bool, error) {
	m.shiftWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.ArithmeticShiftRight)
	return false, nil
}

func opCSL(m *Machine, ctx operandContext) (bool, error) {
	m.rotate(ctx.dstKey, shiftCount(m, ctx), bitstring.CircularShiftLeft)
	return false, nil
}

func opCSR(m *Machine, ctx operandContext) (bool, error) {
	m.rotate(ctx.dstKey, shiftCount(m, ctx), bitstring.CircularShiftRight)
	return false, nil
}

func opCSLC(m *Machine, ctx operandContext) (bool, error) {
	m.rotateWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.CircularShiftLeftWithCarry)
	return false, nil
}

func opCSRC(m *Machine, ctx operandContext) (bool, error) {
	m.rotateWithCarry(ctx.dstKey, shiftCount(m, ctx), bitstring.CircularShiftRightWithCarry)
	return false, nil
}

// shiftWithCarry applies shiftFn to the destination cell times times,
// writing the final evicted bit into the Flags register's low bit.
func (m *Machine) shiftWithCarry(dstKey int64, times int64, shiftFn func(string) (byte, string)) {
	bits := m.read(int(dstKey))
	carry := m.flagsCarry()
	for i := int64(0); i < times; i++ {
		carry, bits = shiftFn(bits)
	}
	m.write(int(dstKey), bits)
	m.writeFlagsCarry(carry)
}

// rotate applies a carry-less circular shift times times; CSL/CSR never
// touch the Flags register.
func (m *Machine) rotate(dstKey int64, times int64, shiftFn func(string) string) {
	bits := m.read(int(dstKey))
	for i := int64(0); i < times; i++ {
		bits = shiftFn(bits)
	}
	m.write(int(dstKey), bits)
}

// rotateWithCarry threads the Flags register's low bit through times
// rotations as the carry-in, writing the final carry-out back.
func (m *Machine) rotateWithCarry(dstKey int64, times int64, shiftFn func(string, byte) (byte, string)) {
	bits := m.read(int(dstKey))
	carry := m.flagsCarry()
	for i := int64(0); i < times; i++ {
		carry, bits = shiftFn(bits, carry)
	}
	m.write(int(dstKey), bits)
	m.writeFlagsCarry(carry)
}

func opCALL(m *Machine, ctx operandContext) (bool, error) {
	addr := m.srcAsAddress(ctx)
	m.write(m.rrKey(), m.read(m.pcKey()))
	m.write(m.pcKey(), bitstring.Signed(addr, m.lay.W))
	return false, nil
}

func opRET(m *Machine, ctx operandContext) (bool, error) {
	m.write(m.pcKey(), m.read(m.rrKey()))
	return false, nil
}
