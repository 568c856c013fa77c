/*
 * pic12sim - Special Function Register addresses
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

package cpu

// Register addresses, common across both banks unless noted.
const (
	INDF     = 0x00
	TMR0     = 0x01
	PCL      = 0x02
	STATUS   = 0x03
	FSR      = 0x04
	GPIOReg  = 0x05 // Bank 0: GPIO: Bank 1: TRISIO (same physical offset)
	PCLATH   = 0x0a
	INTCON   = 0x0b
	PIR1     = 0x0c
	TMR1L    = 0x0e
	TMR1H    = 0x0f
	T1CON    = 0x10
	CMCON    = 0x19
	OptionReg = 0x81
	TRISIO   = 0x85
	PIE1     = 0x8c
	PCON     = 0x8e
	OSCCAL   = 0x90
	WPU      = 0x95
	IOC      = 0x96
)

// STATUS register bit positions.
const (
	StatusIRP = 7
	StatusRP1 = 6
	StatusRP0 = 5
	StatusTO  = 4
	StatusPD  = 3
	StatusZ   = 2
	StatusDC  = 1
	StatusC   = 0
)
