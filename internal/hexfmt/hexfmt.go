/*
 * pic12sim - Hex digit formatting helpers
 *
 * Copyright 2024, Richard Cornwell
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

// Package hexfmt formats bytes and words as hex digits. The HEX loader
// uses it for checksum error messages and for the data records that
// DumpProgram writes. It is not a disassembler: it knows nothing about
// instruction encodings.
package hexfmt

import "strings"

const digits = "0123456789ABCDEF"

// Byte renders a single byte as two upper-case hex digits.
func Byte(b byte) string {
	return string([]byte{digits[(b>>4)&0xf], digits[b&0xf]})
}

// Word renders a 14-bit program word as four hex digits.
func Word(w uint16) string {
	return string([]byte{
		digits[(w>>12)&0xf],
		digits[(w>>8)&0xf],
		digits[(w>>4)&0xf],
		digits[w&0xf],
	})
}

// Bytes renders a byte slice as space-separated hex pairs.
func Bytes(data []byte) string {
	var b strings.Builder
	for i, by := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Byte(by))
	}
	return b.String()
}
