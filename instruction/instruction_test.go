package instruction

/*
 * pic12sim - Instruction decoder tests
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

import "testing"

// encode is the test-only inverse of Decode, used to build the
// round-trip property check below. It is not exported: production code
// never needs to re-assemble a word from a decoded instruction.
func encode(ins Instruction) uint16 {
	switch ins.Op {
	case CLRWDT:
		return 0x0064
	case RETFIE:
		return 0x0009
	case RETURN:
		return 0x0008
	case SLEEP:
		return 0x0063
	case CALL:
		return 0x2000 | (ins.K & 0x7ff)
	case GOTO:
		return 0x2800 | (ins.K & 0x7ff)
	case CLRW:
		return 0x0100
	case NOP:
		return 0x0000
	}

	byteOp := map[Op]byte{
		ADDWF: 0x07, ANDWF: 0x05, CLRF: 0x01, COMF: 0x09, DECF: 0x03,
		DECFSZ: 0x0b, INCF: 0x0a, INCFSZ: 0x0f, IORWF: 0x04, MOVF: 0x08,
		MOVWF: 0x00, RLF: 0x0d, RRF: 0x0c, SUBWF: 0x02, SWAPF: 0x0e,
		XORWF: 0x06,
	}
	if code, ok := byteOp[ins.Op]; ok {
		d := uint16(0)
		if ins.Op == MOVWF || ins.Op == CLRF {
			d = 1
		} else {
			d = uint16(ins.D)
		}
		return (uint16(code) << 8) | (d << 7) | uint16(ins.F&0x7f)
	}

	bitOp := map[Op]uint16{BCF: 0x00, BSF: 0x01, BTFSC: 0x02, BTFSS: 0x03}
	if code, ok := bitOp[ins.Op]; ok {
		return 0x1000 | (code << 10) | (uint16(ins.B&0x7) << 7) | uint16(ins.F&0x7f)
	}

	litOp := map[Op]byte{ADDLW: 0x3e, ANDLW: 0x39, IORLW: 0x38, SUBLW: 0x3c, XORLW: 0x3a}
	if code, ok := litOp[ins.Op]; ok {
		return (uint16(code) << 8) | (ins.K & 0xff)
	}
	if ins.Op == MOVLW {
		return (0x30 << 8) | (ins.K & 0xff)
	}
	if ins.Op == RETLW {
		return (0x34 << 8) | (ins.K & 0xff)
	}
	panic("encode: unhandled op")
}

func mustDecode(t *testing.T, word uint16) Instruction {
	t.Helper()
	ins, err := Decode(word, 0)
	if err != nil {
		t.Fatalf("Decode(%#04x): unexpected error: %v", word, err)
	}
	return ins
}

func TestDecodeExactMatchControlOps(t *testing.T) {
	cases := []struct {
		word uint16
		op   Op
	}{
		{0x0064, CLRWDT},
		{0x0009, RETFIE},
		{0x0008, RETURN},
		{0x0063, SLEEP},
	}
	for _, c := range cases {
		ins := mustDecode(t, c.word)
		if ins.Op != c.op {
			t.Errorf("Decode(%#04x) got op %v, want %v", c.word, ins.Op, c.op)
		}
	}
}

func TestDecodeCallGoto(t *testing.T) {
	ins := mustDecode(t, 0x2100)
	if ins.Op != CALL || ins.K != 0x100 {
		t.Errorf("CALL decode got: %v K=%#x expected K=0x100", ins.Op, ins.K)
	}
	ins = mustDecode(t, 0x2900)
	if ins.Op != GOTO || ins.K != 0x100 {
		t.Errorf("GOTO decode got: %v K=%#x expected K=0x100", ins.Op, ins.K)
	}
}

func TestDecodeClrwAndNopSubencodings(t *testing.T) {
	ins := mustDecode(t, 0x0100)
	if ins.Op != CLRW {
		t.Errorf("0x0100 got: %v expected CLRW", ins.Op)
	}
	ins = mustDecode(t, 0x0000)
	if ins.Op != NOP {
		t.Errorf("0x0000 got: %v expected NOP", ins.Op)
	}
}

func TestDecodeByteOrientedDestination(t *testing.T) {
	ins := mustDecode(t, 0x0720) // ADDWF 0x20, W
	if ins.Op != ADDWF || ins.F != 0x20 || ins.D != 0 {
		t.Errorf("got: %+v expected ADDWF f=0x20 d=0", ins)
	}
	ins = mustDecode(t, 0x07a0) // ADDWF 0x20, F
	if ins.Op != ADDWF || ins.F != 0x20 || ins.D != 1 {
		t.Errorf("got: %+v expected ADDWF f=0x20 d=1", ins)
	}
}

func TestDecodeBitOriented(t *testing.T) {
	ins := mustDecode(t, 0x1385) // BCF 0x05, 7
	if ins.Op != BCF || ins.F != 0x05 || ins.B != 7 {
		t.Errorf("got: %+v expected BCF f=0x05 b=7", ins)
	}
}

func TestDecodeLiteralOpcodeDontCareBits(t *testing.T) {
	for opcode := byte(0x30); opcode <= 0x33; opcode++ {
		word := (uint16(opcode) << 8) | 0x55
		ins := mustDecode(t, word)
		if ins.Op != MOVLW || ins.K != 0x55 {
			t.Errorf("MOVLW opcode %#02x: got %+v", opcode, ins)
		}
	}
	for opcode := byte(0x34); opcode <= 0x37; opcode++ {
		word := (uint16(opcode) << 8) | 0x2a
		ins := mustDecode(t, word)
		if ins.Op != RETLW || ins.K != 0x2a {
			t.Errorf("RETLW opcode %#02x: got %+v", opcode, ins)
		}
	}
}

func TestDecodeUnknownWordReturnsDecodeError(t *testing.T) {
	// 0x3d is one of the gaps left in the literal/control opcode space
	// (0x3b and 0x3f are the other two). The only other decode failures
	// are the MOVWF and CLRF groups with d=0 and a nonzero f.
	word := uint16(0x3d00)
	_, err := Decode(word, 0x0042)
	if err == nil {
		t.Fatalf("expected a DecodeError for unassigned opcode %#04x", word)
	}
	var decErr *DecodeError
	if de, ok := err.(*DecodeError); ok {
		decErr = de
	} else {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decErr.Word != word || decErr.PC != 0x0042 {
		t.Errorf("DecodeError got word=%#04x pc=%#04x, want word=%#04x pc=0x0042", decErr.Word, decErr.PC, word)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	samples := []Instruction{
		{Op: ADDWF, F: 0x20, D: 0},
		{Op: ADDWF, F: 0x20, D: 1},
		{Op: ANDWF, F: 0x7f, D: 1},
		{Op: CLRF, F: 0x10},
		{Op: CLRW},
		{Op: COMF, F: 0x01, D: 0},
		{Op: DECF, F: 0x02, D: 1},
		{Op: DECFSZ, F: 0x03, D: 0},
		{Op: INCF, F: 0x04, D: 1},
		{Op: INCFSZ, F: 0x05, D: 0},
		{Op: IORWF, F: 0x06, D: 1},
		{Op: MOVF, F: 0x07, D: 0},
		{Op: MOVWF, F: 0x08},
		{Op: NOP},
		{Op: RLF, F: 0x09, D: 1},
		{Op: RRF, F: 0x0a, D: 0},
		{Op: SUBWF, F: 0x0b, D: 1},
		{Op: SWAPF, F: 0x0c, D: 0},
		{Op: XORWF, F: 0x0d, D: 1},
		{Op: BCF, F: 0x05, B: 0},
		{Op: BSF, F: 0x05, B: 7},
		{Op: BTFSC, F: 0x05, B: 3},
		{Op: BTFSS, F: 0x05, B: 4},
		{Op: ADDLW, K: 0x12},
		{Op: ANDLW, K: 0x34},
		{Op: CALL, K: 0x3ff},
		{Op: CLRWDT},
		{Op: GOTO, K: 0x7ff},
		{Op: IORLW, K: 0x56},
		{Op: MOVLW, K: 0xff},
		{Op: RETFIE},
		{Op: RETLW, K: 0x01},
		{Op: RETURN},
		{Op: SLEEP},
		{Op: SUBLW, K: 0x78},
		{Op: XORLW, K: 0x9a},
	}
	for _, want := range samples {
		word := encode(want)
		got := mustDecode(t, word)
		if got != want {
			t.Errorf("round-trip mismatch for %v: encoded %#04x decoded as %+v", want, word, got)
		}
	}
}

func TestIsSkip(t *testing.T) {
	for _, op := range []Op{BTFSC, BTFSS, DECFSZ, INCFSZ} {
		if !IsSkip(op) {
			t.Errorf("IsSkip(%v) = false, want true", op)
		}
	}
	if IsSkip(ADDWF) {
		t.Errorf("IsSkip(ADDWF) = true, want false")
	}
}

func TestBaseCycles(t *testing.T) {
	for _, op := range []Op{CALL, GOTO, RETFIE, RETLW, RETURN} {
		if BaseCycles(op) != 2 {
			t.Errorf("BaseCycles(%v) = %d, want 2", op, BaseCycles(op))
		}
	}
	if BaseCycles(NOP) != 1 {
		t.Errorf("BaseCycles(NOP) = %d, want 1", BaseCycles(NOP))
	}
}
