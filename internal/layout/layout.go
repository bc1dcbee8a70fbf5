/*
 * Chadsembly - Instruction width layout
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

// Package layout computes the bit-field widths shared by the code
// generator and the VM: M (opcode), A (addressing mode), O (operand,
// signed), and W = M + A + 2*O (one cell).
package layout

import "github.com/chadsembly/chadsembly/internal/keywords"

// Layout is the set of widths and derived sizes one compiled image and its
// executing VM must agree on.
type Layout struct {
	M                int
	A                int
	O                int
	W                int
	MemoryCells      int
	GeneralRegisters int
	TotalRegisters   int
}

func ceilLog2(n int) int {
	bits := 0
	v := 1
	for v < n {
		v <<= 1
		bits++
	}
	return bits
}

// New derives a Layout from the configured minimum memory cell count and
// general-purpose register count. The memory cell count is rounded up to
// the next power of two of the operand magnitude, so every addressable
// operand targets a valid cell.
func New(configuredMemory, generalRegisters int) Layout {
	totalRegisters := generalRegisters + keywords.NumberOfSpecialPurposeRegisters

	maxAddressable := configuredMemory
	if totalRegisters > maxAddressable {
		maxAddressable = totalRegisters
	}

	m := ceilLog2(keywords.NumberOfInstructions)
	a := ceilLog2(keywords.NumberOfAddressingModes)
	o := ceilLog2(maxAddressable) + 1
	w := m + a + 2*o

	return Layout{
		M:                m,
		A:                a,
		O:                o,
		W:                w,
		MemoryCells:      1 << uint(o-1),
		GeneralRegisters: generalRegisters,
		TotalRegisters:   totalRegisters,
	}
}
