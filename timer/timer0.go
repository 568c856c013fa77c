/*
 * pic12sim - Timer0: 8-bit counter with shared prescaler
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

// Package timer implements Timer0, Timer1, and the watchdog timer, each
// ticked once per CPU cycle by the simulator's outer loop.
package timer

// Timer0 is the 8-bit counter with a prescaler shared with the
// watchdog timer.
type Timer0 struct {
	Count     byte
	prescaler uint16 // accumulator
	divisor   uint16 // 2, 4, ..., 256
	psaToWDT  bool   // prescaler assigned to WDT instead of Timer0
	external  bool   // clock source is external (ticking is a no-op)
	edgeHigh  bool   // T0SE: rising (true) or falling edge select, parsed but inert
}

// Reset restores Timer0 to its power-on configuration: internal clock,
// prescaler assigned to Timer0 at 1:2.
func (t *Timer0) Reset() {
	t.Count = 0
	t.prescaler = 0
	t.divisor = 2
	t.psaToWDT = false
	t.external = false
	t.edgeHigh = true
}

// Configure applies the Timer0-relevant fields of an OPTION_REG write:
// t0cs selects an external clock, t0se selects the edge (parsed but
// inert, per the spec's open question on external clocking), psa
// assigns the shared prescaler to the WDT instead of Timer0, and ps is
// the 3-bit prescaler-rate field (0 => 1:2 ... 7 => 1:256).
func (t *Timer0) Configure(t0cs, t0se, psa bool, ps byte) {
	t.external = t0cs
	t.edgeHigh = t0se
	t.psaToWDT = psa
	t.divisor = 2 << uint(ps&0x7)
}

// WriteCount handles a write to the TMR0 SFR: it stores the new count
// and clears the prescaler accumulator (the divisor is untouched).
func (t *Timer0) WriteCount(v byte) {
	t.Count = v
	t.prescaler = 0
}

// PSA reports whether the shared prescaler is currently assigned to the
// WDT rather than Timer0.
func (t *Timer0) PSA() bool { return t.psaToWDT }

// Tick advances Timer0 by one cycle and reports whether the 8-bit
// counter wrapped from 0xFF to 0x00.
func (t *Timer0) Tick() (overflow bool) {
	if t.external {
		return false
	}
	if t.psaToWDT {
		return t.increment()
	}
	t.prescaler++
	if t.prescaler >= t.divisor {
		t.prescaler = 0
		return t.increment()
	}
	return false
}

func (t *Timer0) increment() bool {
	t.Count++
	return t.Count == 0
}
