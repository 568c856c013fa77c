/*
 * pic12sim - Instruction decoder
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

// Package instruction decodes 14-bit PIC12F629/675 instruction words into
// a tagged-union representation, one struct with a narrow set of operand
// fields rather than 35 distinct Go types.
package instruction

import "fmt"

// Op identifies which of the 35 instructions a decoded word represents.
type Op int

const (
	ADDWF Op = iota
	ANDWF
	CLRF
	CLRW
	COMF
	DECF
	DECFSZ
	INCF
	INCFSZ
	IORWF
	MOVF
	MOVWF
	NOP
	RLF
	RRF
	SUBWF
	SWAPF
	XORWF

	BCF
	BSF
	BTFSC
	BTFSS

	ADDLW
	ANDLW
	CALL
	CLRWDT
	GOTO
	IORLW
	MOVLW
	RETFIE
	RETLW
	RETURN
	SLEEP
	SUBLW
	XORLW
)

var opNames = map[Op]string{
	ADDWF: "ADDWF", ANDWF: "ANDWF", CLRF: "CLRF", CLRW: "CLRW",
	COMF: "COMF", DECF: "DECF", DECFSZ: "DECFSZ", INCF: "INCF",
	INCFSZ: "INCFSZ", IORWF: "IORWF", MOVF: "MOVF", MOVWF: "MOVWF",
	NOP: "NOP", RLF: "RLF", RRF: "RRF", SUBWF: "SUBWF", SWAPF: "SWAPF",
	XORWF: "XORWF", BCF: "BCF", BSF: "BSF", BTFSC: "BTFSC", BTFSS: "BTFSS",
	ADDLW: "ADDLW", ANDLW: "ANDLW", CALL: "CALL", CLRWDT: "CLRWDT",
	GOTO: "GOTO", IORLW: "IORLW", MOVLW: "MOVLW", RETFIE: "RETFIE",
	RETLW: "RETLW", RETURN: "RETURN", SLEEP: "SLEEP", SUBLW: "SUBLW",
	XORLW: "XORLW",
}

// String renders the mnemonic, for log/error messages.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Instruction is the decoded form of a 14-bit word: an opcode tag plus
// the narrow operand fields relevant to its family. Byte-oriented ops
// use F and D; bit-oriented ops use F and B; literal/control ops use K.
type Instruction struct {
	Op Op
	F  byte   // 7-bit file register address
	D  byte   // destination select: 0 = W, 1 = f
	B  byte   // 3-bit bit index
	K  uint16 // 8-bit literal or 11-bit address
}

// DecodeError reports a 14-bit word that does not match any of the 35
// recognized instruction encodings.
type DecodeError struct {
	Word uint16
	PC   uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("instruction: cannot decode word %#04x at PC %#04x", e.Word, e.PC)
}

// Decode maps a 14-bit instruction word to its tagged-union form. pc is
// carried only for DecodeError's payload; it plays no role in decoding.
func Decode(word uint16, pc uint16) (Instruction, error) {
	word &= 0x3fff

	switch word {
	case 0x0064:
		return Instruction{Op: CLRWDT}, nil
	case 0x0009:
		return Instruction{Op: RETFIE}, nil
	case 0x0008:
		return Instruction{Op: RETURN}, nil
	case 0x0063:
		return Instruction{Op: SLEEP}, nil
	}

	switch (word >> 11) & 0x7 {
	case 0b100:
		return Instruction{Op: CALL, K: word & 0x7ff}, nil
	case 0b101:
		return Instruction{Op: GOTO, K: word & 0x7ff}, nil
	}

	opcode6 := byte((word >> 8) & 0x3f)

	if opcode6&0x30 == 0x00 {
		d := byte((word >> 7) & 0x01)
		f := byte(word & 0x7f)
		switch opcode6 {
		case 0x07:
			return Instruction{Op: ADDWF, F: f, D: d}, nil
		case 0x05:
			return Instruction{Op: ANDWF, F: f, D: d}, nil
		case 0x01:
			if d == 1 {
				return Instruction{Op: CLRF, F: f}, nil
			}
			if f == 0 {
				return Instruction{Op: CLRW}, nil
			}
		case 0x09:
			return Instruction{Op: COMF, F: f, D: d}, nil
		case 0x03:
			return Instruction{Op: DECF, F: f, D: d}, nil
		case 0x0b:
			return Instruction{Op: DECFSZ, F: f, D: d}, nil
		case 0x0a:
			return Instruction{Op: INCF, F: f, D: d}, nil
		case 0x0f:
			return Instruction{Op: INCFSZ, F: f, D: d}, nil
		case 0x04:
			return Instruction{Op: IORWF, F: f, D: d}, nil
		case 0x08:
			return Instruction{Op: MOVF, F: f, D: d}, nil
		case 0x00:
			if d == 1 {
				return Instruction{Op: MOVWF, F: f}, nil
			}
			if f == 0 {
				return Instruction{Op: NOP}, nil
			}
		case 0x0d:
			return Instruction{Op: RLF, F: f, D: d}, nil
		case 0x0c:
			return Instruction{Op: RRF, F: f, D: d}, nil
		case 0x02:
			return Instruction{Op: SUBWF, F: f, D: d}, nil
		case 0x0e:
			return Instruction{Op: SWAPF, F: f, D: d}, nil
		case 0x06:
			return Instruction{Op: XORWF, F: f, D: d}, nil
		}
		return Instruction{}, &DecodeError{Word: word, PC: pc}
	}

	if opcode6&0x30 == 0x10 {
		b := byte((word >> 7) & 0x07)
		f := byte(word & 0x7f)
		switch (word >> 10) & 0x03 {
		case 0x00:
			return Instruction{Op: BCF, F: f, B: b}, nil
		case 0x01:
			return Instruction{Op: BSF, F: f, B: b}, nil
		case 0x02:
			return Instruction{Op: BTFSC, F: f, B: b}, nil
		case 0x03:
			return Instruction{Op: BTFSS, F: f, B: b}, nil
		}
	}

	k := word & 0xff
	switch opcode6 {
	case 0x3e:
		return Instruction{Op: ADDLW, K: k}, nil
	case 0x39:
		return Instruction{Op: ANDLW, K: k}, nil
	case 0x38:
		return Instruction{Op: IORLW, K: k}, nil
	case 0x3c:
		return Instruction{Op: SUBLW, K: k}, nil
	case 0x3a:
		return Instruction{Op: XORLW, K: k}, nil
	}
	if opcode6 >= 0x30 && opcode6 <= 0x33 {
		return Instruction{Op: MOVLW, K: k}, nil
	}
	if opcode6 >= 0x34 && opcode6 <= 0x37 {
		return Instruction{Op: RETLW, K: k}, nil
	}

	return Instruction{}, &DecodeError{Word: word, PC: pc}
}

// IsSkip reports whether op is one of the four skip-on-condition
// instructions, whose cycle count depends on whether the skip is taken.
func IsSkip(op Op) bool {
	switch op {
	case BTFSC, BTFSS, DECFSZ, INCFSZ:
		return true
	}
	return false
}

// BaseCycles returns the cycle count for op discounting any skip taken:
// 1 for most instructions, 2 for the unconditional control-transfer
// instructions. Skip instructions report 1 here; the executor adds the
// extra cycle when the skip is actually taken.
func BaseCycles(op Op) int {
	switch op {
	case CALL, GOTO, RETFIE, RETLW, RETURN:
		return 2
	}
	return 1
}
