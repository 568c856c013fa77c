/*
 * pic12sim - Interrupt controller
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

// Package interrupt implements the single-vector interrupt controller:
// a pure priority check over INTCON/PIE1/PIR1, plus the in-ISR latch
// that guards against re-entry.
package interrupt

// Vector is the fixed interrupt entry point; the PIC12F629/675 has no
// vector table, only this one address.
const Vector uint16 = 0x0004

// INTCON bit positions.
const (
	GIE  = 1 << 7
	PEIE = 1 << 6
	T0IE = 1 << 5
	INTE = 1 << 4
	GPIE = 1 << 3
	T0IF = 1 << 2
	INTF = 1 << 1
	GPIF = 1 << 0
)

// PIE1/PIR1 bit positions.
const (
	EEIE   = 1 << 7
	CMIE   = 1 << 3
	ADIE   = 1 << 6
	TMR1IE = 1 << 0

	EEIF   = 1 << 7
	ADIF   = 1 << 6
	CMIF   = 1 << 3
	TMR1IF = 1 << 0
)

// Pending evaluates the interrupt priority check over the three
// control/flag registers. It is a pure function: it does not read or
// mutate any latch, so callers must separately honor the in-ISR
// re-entry guard via Controller.
func Pending(intcon, pie1, pir1 byte) (should bool, vector uint16) {
	if intcon&GIE == 0 {
		return false, 0
	}
	if intcon&T0IE != 0 && intcon&T0IF != 0 {
		return true, Vector
	}
	if intcon&INTE != 0 && intcon&INTF != 0 {
		return true, Vector
	}
	if intcon&GPIE != 0 && intcon&GPIF != 0 {
		return true, Vector
	}
	if intcon&PEIE != 0 {
		if pie1&TMR1IE != 0 && pir1&TMR1IF != 0 {
			return true, Vector
		}
		if pie1&CMIE != 0 && pir1&CMIF != 0 {
			return true, Vector
		}
		if pie1&ADIE != 0 && pir1&ADIF != 0 {
			return true, Vector
		}
		if pie1&EEIE != 0 && pir1&EEIF != 0 {
			return true, Vector
		}
	}
	return false, 0
}

// Controller holds the single piece of interrupt-related state that is
// not a register: the in-ISR re-entry guard. Everything else is read
// directly from the CPU's SFRs by Pending.
type Controller struct {
	InISR bool
}

// Service reports whether an interrupt may be taken right now: a
// source is pending per Pending, and the controller is not already
// servicing one. Callers that get true are expected to push the
// return address, clear GIE, set PC to vector, and call Enter.
func (c *Controller) Service(intcon, pie1, pir1 byte) (should bool, vector uint16) {
	if c.InISR {
		return false, 0
	}
	return Pending(intcon, pie1, pir1)
}

// Enter latches the re-entry guard once a step has committed to taking
// an interrupt.
func (c *Controller) Enter() {
	c.InISR = true
}

// Return clears the re-entry guard, mirroring RETFIE on real silicon.
func (c *Controller) Return() {
	c.InISR = false
}
