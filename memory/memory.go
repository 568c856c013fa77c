/*
 * pic12sim - Program memory, banked data memory, hardware stack, EEPROM
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

// Package memory holds the PIC12F629/675's program memory, banked data
// memory, hardware return stack, and data EEPROM.
package memory

const (
	// ProgramWords is the size of program memory in 14-bit words.
	ProgramWords = 1024
	// DataBytes is the size of the flat data-memory backing store.
	DataBytes = 128
	// EEPROMBytes is the size of data EEPROM.
	EEPROMBytes = 128
	// StackDepth is the number of hardware return-stack entries.
	StackDepth = 8

	wordMask = 0x3fff // 14 bits
	pcMask   = 0x1fff // 13 bits
)

// Program is the 1024x14-bit instruction word array. It survives Reset.
type Program struct {
	words [ProgramWords]uint16
}

// Read returns the word at addr, masked to 14 bits. Addresses outside
// the 10-bit address space wrap (the real part has no more memory to
// address there either).
func (p *Program) Read(addr uint16) uint16 {
	return p.words[addr&(ProgramWords-1)]
}

// Write stores word (masked to 14 bits) at addr.
func (p *Program) Write(addr uint16, word uint16) {
	p.words[addr&(ProgramWords-1)] = word & wordMask
}

// Load replaces the entire program image. Words beyond len(words) are
// set to 0.
func (p *Program) Load(words []uint16) {
	for i := range p.words {
		if i < len(words) {
			p.words[i] = words[i] & wordMask
		} else {
			p.words[i] = 0
		}
	}
}

// Words returns a copy of the full program image, for observation
// tooling.
func (p *Program) Words() [ProgramWords]uint16 {
	return p.words
}

// Data is the 128-byte flat backing store for banked SFR/GPR data
// memory. Addresses below 0x0C are common to both banks; addresses at
// or above 0x0C are bank-specific, with bank 1 physically offset by
// 0x80 inside the flat store.
type Data struct {
	bytes [DataBytes]byte
}

// Resolve folds a (bank, addr) pair into a physical index in the flat
// store, per the bank-specific mirroring rule in the data model.
func Resolve(bank int, addr byte) byte {
	if bank != 0 && addr >= 0x0c {
		return (addr | 0x80) & 0x7f
	}
	return addr & 0x7f
}

// Read returns the byte at (bank, addr).
func (d *Data) Read(bank int, addr byte) byte {
	return d.bytes[Resolve(bank, addr)]
}

// Write stores val at (bank, addr).
func (d *Data) Write(bank int, addr byte, val byte) {
	d.bytes[Resolve(bank, addr)] = val
}

// Reset zeroes data memory. Called on device reset; not called on
// construction of a Program or EEPROM, which survive reset.
func (d *Data) Reset() {
	for i := range d.bytes {
		d.bytes[i] = 0
	}
}

// Stack is the hardware return-address stack. Push beyond StackDepth
// discards the oldest entry (FIFO); Pop on an empty stack returns 0.
type Stack struct {
	frames [StackDepth]uint16
	sp     int
}

// Push stores addr (masked to 13 bits) on top of the stack. If the
// stack is already full, the oldest entry is discarded.
func (s *Stack) Push(addr uint16) {
	addr &= pcMask
	if s.sp == StackDepth {
		copy(s.frames[:], s.frames[1:])
		s.frames[StackDepth-1] = addr
		return
	}
	s.frames[s.sp] = addr
	s.sp++
}

// Pop removes and returns the top of the stack, or 0 if empty.
func (s *Stack) Pop() uint16 {
	if s.sp == 0 {
		return 0
	}
	s.sp--
	return s.frames[s.sp]
}

// Depth reports the number of entries currently on the stack.
func (s *Stack) Depth() int {
	return s.sp
}

// Frames returns a snapshot of the occupied stack entries, bottom
// first, for observation tooling.
func (s *Stack) Frames() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.frames[:s.sp])
	return out
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.sp = 0
	for i := range s.frames {
		s.frames[i] = 0
	}
}

// EEPROM is the 128-byte data EEPROM. It is independent of CPU reset.
type EEPROM struct {
	bytes [EEPROMBytes]byte
}

// Read returns the byte at addr.
func (e *EEPROM) Read(addr byte) byte {
	return e.bytes[addr&(EEPROMBytes-1)]
}

// Write stores val at addr.
func (e *EEPROM) Write(addr byte, val byte) {
	e.bytes[addr&(EEPROMBytes-1)] = val
}

// Load replaces the EEPROM contents, for HEX-file loading.
func (e *EEPROM) Load(data [EEPROMBytes]byte) {
	e.bytes = data
}

// Bytes returns a copy of the EEPROM contents, for observation tooling.
func (e *EEPROM) Bytes() [EEPROMBytes]byte {
	return e.bytes
}
