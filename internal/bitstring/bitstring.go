/*
 * Chadsembly - Fixed-width binary string encoding
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

// Package bitstring encodes and decodes fixed-width binary strings used as
// the uniform cell representation of a Chadsembly image, and implements the
// seven shift primitives the VM's shift opcodes are built from.
package bitstring

import (
	"strconv"
	"strings"
)

// ToBinary returns the unsigned magnitude of value in base 2, without
// padding.
func ToBinary(value int64) string {
	if value < 0 {
		value = -value
	}
	return strconv.FormatInt(value, 2)
}

// NumberOfBits returns the minimum number of bits needed to represent
// value's magnitude.
func NumberOfBits(value int64) int {
	return len(ToBinary(value))
}

// Pad left-pads s with padValue repeated n times. n <= 0 is a no-op.
func Pad(s string, n int, padValue byte) string {
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(padValue), n) + s
}

// Unsigned encodes value as an unsigned, bits-wide binary string, reducing
// value modulo 2^bits first. bits is clamped to a minimum of 1.
func Unsigned(value int64, bits int) string {
	if bits < 1 {
		bits = 1
	}
	mod := int64(1) << uint(bits)
	value = ((value % mod) + mod) % mod
	b := ToBinary(value)
	return Pad(b, bits-len(b), '0')
}

// Signed encodes value as a sign bit followed by bits-1 magnitude bits,
// reducing the magnitude modulo 2^(bits-1) first. bits is clamped to a
// minimum of 2.
func Signed(value int64, bits int) string {
	if bits < 2 {
		bits = 2
	}
	sign := byte('0')
	if value < 0 {
		sign = '1'
		value = -value
	}
	mod := int64(1) << uint(bits-1)
	magnitude := value % mod
	b := ToBinary(magnitude)
	return string(sign) + Pad(b, (bits-1)-len(b), '0')
}

// ReadUnsigned decodes an unsigned binary string to an integer.
func ReadUnsigned(s string) int64 {
	v, _ := strconv.ParseInt(s, 2, 64)
	return v
}

// ReadSigned decodes a sign-bit-prefixed binary string to an integer.
func ReadSigned(s string) int64 {
	sign := int64(1)
	if s[0] == '1' {
		sign = -1
	}
	v, _ := strconv.ParseInt(s[1:], 2, 64)
	return sign * v
}

// LogicalShiftLeft shifts s left, shifting '0' into the LSB; the evicted
// MSB is returned as the carry.
func LogicalShiftLeft(s string) (carry byte, out string) {
	return s[0], s[1:] + "0"
}

// LogicalShiftRight shifts s right, shifting '0' into the MSB; the evicted
// LSB is returned as the carry.
func LogicalShiftRight(s string) (carry byte, out string) {
	n := len(s)
	return s[n-1], "0" + s[:n-1]
}

// ArithmeticShiftLeft shifts s left, preserving the original MSB (the sign
// bit) on the right; the bit evicted into the carry is the original
// second-from-left bit.
func ArithmeticShiftLeft(s string) (carry byte, out string) {
	return s[1], s[1:] + string(s[0])
}

// ArithmeticShiftRight shifts s right, preserving the MSB (sign bit) on the
// left; the evicted LSB is returned as the carry.
func ArithmeticShiftRight(s string) (carry byte, out string) {
	n := len(s)
	return s[n-1], string(s[0]) + s[:n-1]
}

// CircularShiftLeft rotates s left; the MSB wraps around to the LSB. No
// carry is produced.
func CircularShiftLeft(s string) string {
	return s[1:] + string(s[0])
}

// CircularShiftRight rotates s right; the LSB wraps around to the MSB. No
// carry is produced.
func CircularShiftRight(s string) string {
	n := len(s)
	return string(s[n-1]) + s[:n-1]
}

// CircularShiftLeftWithCarry shifts s left, evicting the MSB as the new
// carry and filling the LSB from the supplied carry-in.
func CircularShiftLeftWithCarry(s string, carryIn byte) (carry byte, out string) {
	return s[0], s[1:] + string(carryIn)
}

// CircularShiftRightWithCarry shifts s right, evicting the LSB as the new
// carry and filling the MSB from the supplied carry-in.
func CircularShiftRightWithCarry(s string, carryIn byte) (carry byte, out string) {
	n := len(s)
	return s[n-1], string(carryIn) + s[:n-1]
}
