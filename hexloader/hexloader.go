/*
 * pic12sim - Intel HEX loader
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

// Package hexloader parses Intel HEX program images into a byte-exact
// program/EEPROM/config-word image, ready for a CPU's program memory
// and EEPROM to load.
package hexloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/pic12sim/internal/hexfmt"
)

// Record types recognized in an Intel HEX line. Only these six are
// valid; any other type byte is a HexParseError.
const (
	recData                   = 0x00
	recEndOfFile              = 0x01
	recExtendedSegmentAddress = 0x02
	recStartSegmentAddress    = 0x03
	recExtendedLinearAddress  = 0x04
	recStartLinearAddress     = 0x05
)

const (
	eepromBase = 0x2100
	eepromEnd  = 0x2180
	configAddr = 0x2007
)

// Image is the result of loading an Intel HEX (or raw word) program:
// the program memory byte range actually covered by the file,
// converted to 14-bit words, the EEPROM image, and the configuration
// word if the file carried one.
type Image struct {
	Program       []uint16
	EEPROM        [128]byte
	ConfigWord    uint16
	HasConfigWord bool
}

// HexParseError reports a malformed HEX line, identified by its
// 1-based source line number.
type HexParseError struct {
	Line int
	Msg  string
}

func (e *HexParseError) Error() string {
	return fmt.Sprintf("hex line %d: %s", e.Line, e.Msg)
}

// IoError reports a file open/read failure encountered while loading a
// HEX file, distinct from a malformed-content HexParseError.
type IoError struct {
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("hexloader: %s", e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// LoadFile reads and parses an Intel HEX file.
func LoadFile(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Err: err}
	}
	defer file.Close()

	return Load(file)
}

// Load parses Intel HEX text read from r.
func Load(r io.Reader) (*Image, error) {
	programBytes := map[int]byte{}
	eepromBytes := map[int]byte{}
	maxProgAddr := -1

	var config uint16
	var hasConfig bool
	var extendedAddress uint32

	scanner := bufio.NewScanner(r)
	lineNum := 0
scanLines:
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, &HexParseError{Line: lineNum, Msg: err.Error()}
		}

		switch rec.recordType {
		case recData:
			abs := extendedAddress + uint32(rec.address)
			switch {
			case abs >= eepromBase && abs < eepromEnd:
				off := int(abs - eepromBase)
				for i, b := range rec.data {
					eepromBytes[off+i] = b
				}
			case abs == configAddr:
				if len(rec.data) >= 2 {
					config = uint16(rec.data[0]) | uint16(rec.data[1])<<8
					hasConfig = true
				}
			default:
				addr := int(abs)
				for i, b := range rec.data {
					programBytes[addr+i] = b
					if addr+i > maxProgAddr {
						maxProgAddr = addr + i
					}
				}
			}

		case recEndOfFile:
			break scanLines

		case recExtendedLinearAddress:
			if len(rec.data) >= 2 {
				extendedAddress = (uint32(rec.data[0])<<8 | uint32(rec.data[1])) << 16
			}

		case recExtendedSegmentAddress:
			if len(rec.data) >= 2 {
				extendedAddress = (uint32(rec.data[0])<<8 | uint32(rec.data[1])) << 4
			}

		case recStartSegmentAddress, recStartLinearAddress:
			// Accepted, carries no state the simulator needs.

		default:
			return nil, &HexParseError{Line: lineNum, Msg: fmt.Sprintf("unknown record type: 0x%02x", rec.recordType)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &IoError{Err: err}
	}

	img := &Image{ConfigWord: config, HasConfigWord: hasConfig}
	for i, b := range eepromBytes {
		if i >= 0 && i < len(img.EEPROM) {
			img.EEPROM[i] = b
		}
	}
	img.Program = packWords(programBytes, maxProgAddr)
	return img, nil
}

// packWords converts the sparse byte map covering [0, maxAddr] into a
// 14-bit word slice. Bytes never written within that range default to
// 0xFF; a trailing odd byte (no high-byte partner within range) yields
// a word with a zero high byte.
func packWords(bytes map[int]byte, maxAddr int) []uint16 {
	if maxAddr < 0 {
		return nil
	}
	words := make([]uint16, maxAddr/2+1)
	for i := range words {
		lowAddr := i * 2
		low, haveLow := bytes[lowAddr]
		if !haveLow {
			low = 0xff
		}
		highAddr := lowAddr + 1
		if highAddr > maxAddr {
			words[i] = uint16(low)
			continue
		}
		high, haveHigh := bytes[highAddr]
		if !haveHigh {
			high = 0xff
		}
		words[i] = (uint16(low) | uint16(high)<<8) & 0x3fff
	}
	return words
}

type hexRecord struct {
	byteCount  byte
	address    uint16
	recordType byte
	data       []byte
}

// parseRecord parses a single trimmed HEX line (without the trailing
// newline), validating structure and checksum.
func parseRecord(line string) (hexRecord, error) {
	if !strings.HasPrefix(line, ":") {
		return hexRecord{}, fmt.Errorf("missing leading ':'")
	}
	digits := line[1:]
	if len(digits)%2 != 0 {
		return hexRecord{}, fmt.Errorf("odd number of hex digits")
	}

	raw := make([]byte, len(digits)/2)
	for i := range raw {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return hexRecord{}, fmt.Errorf("invalid hex byte %q", digits[i*2:i*2+2])
		}
		raw[i] = byte(v)
	}
	if len(raw) < 5 {
		return hexRecord{}, fmt.Errorf("line too short")
	}

	byteCount := raw[0]
	address := uint16(raw[1])<<8 | uint16(raw[2])
	recordType := raw[3]

	dataEnd := 4 + int(byteCount)
	if len(raw) != dataEnd+1 {
		return hexRecord{}, fmt.Errorf("byte count mismatch: header says %d, line has %d", byteCount, len(raw)-5)
	}

	sum := byte(0)
	for _, b := range raw[:dataEnd] {
		sum += b
	}
	want := byte(0) - sum
	got := raw[dataEnd]
	if want != got {
		return hexRecord{}, fmt.Errorf("checksum mismatch: expected %s got %s", hexfmt.Byte(want), hexfmt.Byte(got))
	}

	return hexRecord{
		byteCount:  byteCount,
		address:    address,
		recordType: recordType,
		data:       raw[4:dataEnd],
	}, nil
}

// dumpBytesPerLine is the data-record payload size DumpProgram emits,
// matching the 16-byte-per-line convention of most Intel HEX tooling.
const dumpBytesPerLine = 16

// DumpProgram re-renders a loaded program image as Intel HEX data
// records (plus a trailing EOF record), little-endian byte pairs per
// word exactly as Load expects them back. Feeding the output back
// through Load reproduces the original words, which is what the
// round-trip property test in spec.md §8 exercises.
func DumpProgram(words []uint16) string {
	bytes := make([]byte, 0, len(words)*2)
	for _, w := range words {
		bytes = append(bytes, byte(w), byte(w>>8))
	}

	var b strings.Builder
	for addr := 0; addr < len(bytes); addr += dumpBytesPerLine {
		end := addr + dumpBytesPerLine
		if end > len(bytes) {
			end = len(bytes)
		}
		writeDataRecord(&b, uint16(addr), bytes[addr:end])
		b.WriteByte('\n')
	}
	b.WriteString(":00000001FF\n")
	return b.String()
}

// writeDataRecord writes one `:LLAAAATT<DD...>CC` line for a type-00
// data record covering addr..addr+len(data).
func writeDataRecord(b *strings.Builder, addr uint16, data []byte) {
	raw := make([]byte, 0, 4+len(data))
	raw = append(raw, byte(len(data)), byte(addr>>8), byte(addr), recData)
	raw = append(raw, data...)

	sum := byte(0)
	for _, by := range raw {
		sum += by
	}
	checksum := byte(0) - sum

	b.WriteByte(':')
	for _, by := range raw {
		b.WriteString(hexfmt.Byte(by))
	}
	b.WriteString(hexfmt.Byte(checksum))
}
