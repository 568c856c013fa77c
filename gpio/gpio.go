/*
 * pic12sim - GPIO port shadow state and pin-state resolution
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

// Package gpio models the PIC12F629/675's 6-bit bidirectional GPIO port:
// direction (TRISIO), weak pull-ups (WPU), externally-driven pin state,
// and peripheral overrides, plus the per-pin resolution priority that
// turns that shadow state into an observable pin value.
package gpio

// PinState is the three-valued observable state of a single pin.
type PinState int

const (
	Low PinState = iota
	High
	HighZ
)

const (
	pinMask  = 0x3f // bits 0-5; bits 6,7 are always zero
	gp3      = 1 << 3
	trisMask = 0x3f
	wpuMask  = 0x37
)

// GPIO holds the port latch, direction, weak pull-up, externally-driven,
// and peripheral-override shadow bytes for the 6-pin port.
type GPIO struct {
	latch          byte
	tris           byte
	wpu            byte
	external       byte
	overrideEnable byte
	overrideValue  byte
}

// Reset restores GPIO to its power-on shadow state: all pins input
// (TRISIO = 0x3f), no pull-ups, no overrides, and the external-pin byte
// floating high (the floating-pulled-high model spec.md calls for).
func (g *GPIO) Reset() {
	g.latch = 0
	g.tris = trisMask
	g.wpu = 0
	g.external = pinMask
	g.overrideEnable = 0
	g.overrideValue = 0
}

// WriteLatch stores val in the port latch (Bank 0 write path).
func (g *GPIO) WriteLatch(val byte) {
	g.latch = val & pinMask
}

// WriteTris stores val in TRISIO, forcing GP3 to input and zeroing bits
// 6 and 7.
func (g *GPIO) WriteTris(val byte) {
	g.tris = (val & trisMask) | gp3
}

// WriteWPU stores val in WPU, masked to 0x37.
func (g *GPIO) WriteWPU(val byte) {
	g.wpu = val & wpuMask
}

// Latch returns the raw port latch byte.
func (g *GPIO) Latch() byte { return g.latch }

// Tris returns the raw TRISIO byte.
func (g *GPIO) Tris() byte { return g.tris }

// WPU returns the raw WPU byte.
func (g *GPIO) WPU() byte { return g.wpu }

// SetExternalPin sets or clears the externally-driven state of a single
// pin, for stimulation tooling.
func (g *GPIO) SetExternalPin(pin int, high bool) {
	bit := byte(1) << uint(pin)
	if high {
		g.external |= bit
	} else {
		g.external &^= bit
	}
}

// SetExternalPins replaces the whole externally-driven byte at once.
func (g *GPIO) SetExternalPins(val byte) {
	g.external = val & pinMask
}

// SetOverride enables or disables a peripheral's override of a pin and,
// when enabled, sets the value the peripheral is driving.
func (g *GPIO) SetOverride(pin int, enable bool, value bool) {
	bit := byte(1) << uint(pin)
	if enable {
		g.overrideEnable |= bit
	} else {
		g.overrideEnable &^= bit
	}
	if value {
		g.overrideValue |= bit
	} else {
		g.overrideValue &^= bit
	}
}

// resolvedBit computes the priority-resolved bit for a single pin:
// peripheral override, then (for inputs) the externally-driven byte,
// then (for outputs) the port latch.
func (g *GPIO) resolvedBit(pin int) bool {
	bit := byte(1) << uint(pin)
	if g.overrideEnable&bit != 0 {
		return g.overrideValue&bit != 0
	}
	if g.tris&bit != 0 {
		return g.external&bit != 0
	}
	return g.latch&bit != 0
}

// ResolvedByte returns the resolved 6-bit value a program read of GPIO
// observes (SFR read-side dispatch), not the raw port latch.
func (g *GPIO) ResolvedByte() byte {
	var out byte
	for pin := 0; pin < 6; pin++ {
		if g.resolvedBit(pin) {
			out |= 1 << uint(pin)
		}
	}
	return out
}

// Pin returns the three-valued observable state of a single pin, for
// introspection tooling: HighZ for an input pin with no peripheral
// override, High/Low otherwise.
func (g *GPIO) Pin(pin int) PinState {
	bit := byte(1) << uint(pin)
	if g.overrideEnable&bit != 0 {
		if g.overrideValue&bit != 0 {
			return High
		}
		return Low
	}
	if g.tris&bit != 0 {
		return HighZ
	}
	if g.latch&bit != 0 {
		return High
	}
	return Low
}
