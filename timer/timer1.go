/*
 * pic12sim - Timer1: 16-bit counter with its own prescaler
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

package timer

// Timer1 is the 16-bit counter with its own 1/2/4/8 prescaler.
type Timer1 struct {
	count     uint16
	enabled   bool
	external  bool // clock source is external, parsed but inert
	divisor   uint16
	prescaler uint16
}

// Reset restores Timer1 to its power-on configuration: disabled,
// internal clock, 1:1 prescaler, counter at zero.
func (t *Timer1) Reset() {
	t.count = 0
	t.enabled = false
	t.external = false
	t.divisor = 1
	t.prescaler = 0
}

// Configure applies a T1CON write: tmr1on enables the timer, tmr1cs
// selects an external clock (parsed but inert), and t1ckps is the 2-bit
// prescaler-rate field (0 => 1:1 ... 3 => 1:8).
func (t *Timer1) Configure(tmr1on, tmr1cs bool, t1ckps byte) {
	t.enabled = tmr1on
	t.external = tmr1cs
	t.divisor = 1 << uint(t1ckps&0x3)
}

// WriteLow sets the low byte of the 16-bit counter.
func (t *Timer1) WriteLow(v byte) {
	t.count = (t.count & 0xff00) | uint16(v)
}

// WriteHigh sets the high byte of the 16-bit counter.
func (t *Timer1) WriteHigh(v byte) {
	t.count = (t.count & 0x00ff) | (uint16(v) << 8)
}

// Low returns the low byte of the 16-bit counter.
func (t *Timer1) Low() byte { return byte(t.count) }

// High returns the high byte of the 16-bit counter.
func (t *Timer1) High() byte { return byte(t.count >> 8) }

// Count returns the full 16-bit counter value, for observation tooling.
func (t *Timer1) Count() uint16 { return t.count }

// Tick advances Timer1 by one cycle, when enabled and internally
// clocked, and reports whether the 16-bit counter wrapped.
func (t *Timer1) Tick() (overflow bool) {
	if !t.enabled || t.external {
		return false
	}
	t.prescaler++
	if t.prescaler < t.divisor {
		return false
	}
	t.prescaler = 0
	t.count++
	return t.count == 0
}
