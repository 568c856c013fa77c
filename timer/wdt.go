/*
 * pic12sim - Watchdog timer
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

// NominalPeriod is the WDT's base timeout in cycles at 1:1 prescaler,
// representing roughly 18ms at the 1MHz instruction rate of a 4MHz
// oscillator.
const NominalPeriod = 18000

// WDT is the free-running watchdog counter. It always ticks when
// enabled; when the shared Timer0/WDT prescaler is assigned to it, its
// effective period scales by the prescaler rate.
type WDT struct {
	accumulator uint32
	enabled     bool
	divisor     uint32 // effective prescaler rate assigned to the WDT (1 when PSA assigns it to Timer0 instead)
}

// Reset clears the WDT accumulator and restores its divisor to 1 (the
// shared prescaler not assigned to the WDT). The enable state is not
// reset: it is set through SetEnabled from a construction-time default
// (real silicon derives it from a fuse in the configuration word; this
// engine never reads a loaded configuration word to set it).
func (w *WDT) Reset() {
	w.accumulator = 0
	w.divisor = 1
}

// SetEnabled sets whether the WDT runs at all, a construction-time
// default analogous to the configuration word's WDT-enable fuse.
func (w *WDT) SetEnabled(enabled bool) {
	w.enabled = enabled
}

// Enabled reports whether the WDT is currently running.
func (w *WDT) Enabled() bool { return w.enabled }

// Configure sets the prescaler divisor effective for the WDT when the
// shared Timer0/WDT prescaler is assigned to it (psaToWDT), derived from
// the OPTION_REG PS bits.
func (w *WDT) Configure(psaToWDT bool, ps byte) {
	if psaToWDT {
		w.divisor = uint32(1) << uint(ps&0x7)
	} else {
		w.divisor = 1
	}
}

// Period returns the current effective timeout in cycles, for
// observation tooling.
func (w *WDT) Period() uint32 {
	return NominalPeriod * w.divisor
}

// Counter returns the raw accumulator value, for observation tooling.
func (w *WDT) Counter() uint32 {
	return w.accumulator
}

// Clear resets the accumulator, as CLRWDT does.
func (w *WDT) Clear() {
	w.accumulator = 0
}

// Tick advances the WDT by one cycle and reports whether it reached its
// timeout.
func (w *WDT) Tick() (timeout bool) {
	if !w.enabled {
		return false
	}
	w.accumulator++
	if w.accumulator >= w.Period() {
		w.accumulator = 0
		return true
	}
	return false
}
