/*
 * pic12sim - CPU core: registers, banking, dispatch
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

// Package cpu models the PIC12F629/675 CPU core: the W register, the
// program counter, STATUS/banking, and the register read/write
// dispatcher that routes SFR accesses to the owning peripheral. It
// owns memory, GPIO, the timers, the WDT, and the interrupt controller
// exclusively.
package cpu

import (
	"log/slog"

	"github.com/rcornwell/pic12sim/gpio"
	"github.com/rcornwell/pic12sim/interrupt"
	"github.com/rcornwell/pic12sim/memory"
	"github.com/rcornwell/pic12sim/timer"
	"github.com/rcornwell/pic12sim/util/logger"
)

// CPU holds all processor and peripheral state reachable from
// instruction execution.
type CPU struct {
	W        byte
	PC       uint16
	Cycles   uint64
	Sleeping bool

	Program memory.Program
	Data    memory.Data
	Stack   memory.Stack
	EEPROM  memory.EEPROM

	GPIO      gpio.GPIO
	Timer0    timer.Timer0
	Timer1    timer.Timer1
	WDT       timer.WDT
	Interrupt interrupt.Controller

	log *slog.Logger
}

// New constructs a CPU with the given watchdog enable default (the
// configuration-word WDT-enable fuse equivalent) and logger. A nil
// logger falls back to a discard logger.
func New(wdtEnabled bool, log *slog.Logger) *CPU {
	if log == nil {
		log = logger.Discard()
	}
	c := &CPU{log: log}
	c.WDT.SetEnabled(wdtEnabled)
	c.Reset()
	return c
}

// Reset restores power-on-reset state. Program memory and EEPROM are
// untouched, matching real silicon.
func (c *CPU) Reset() {
	c.W = 0
	c.PC = 0
	c.Cycles = 0
	c.Sleeping = false

	c.Data.Reset()
	c.Stack.Reset()
	c.GPIO.Reset()
	c.Timer0.Reset()
	c.Timer1.Reset()
	c.WDT.Reset()
	c.Interrupt = interrupt.Controller{}

	c.WriteRegister(STATUS, 1<<StatusTO|1<<StatusPD)
	c.WriteRegister(PCLATH, 0)
	c.WriteRegister(INTCON, 0)
	c.WriteRegister(PIE1, 0)
	c.WriteRegister(PIR1, 0)

	c.log.Debug("cpu reset")
}

func (c *CPU) bank() int {
	if c.Data.Read(0, STATUS)&(1<<StatusRP0) != 0 {
		return 1
	}
	return 0
}

// ReadRegister dispatches a data-memory read through banking and the
// owning-component shadow state, per the SFR table in the register map.
func (c *CPU) ReadRegister(addr byte) byte {
	bank := c.bank()
	switch addr {
	case INDF:
		fsr := c.Data.Read(bank, FSR)
		if fsr == INDF {
			return 0
		}
		return c.ReadRegister(fsr)
	case TMR0:
		return c.Timer0.Count
	case PCL:
		return byte(c.PC & 0xff)
	case GPIOReg:
		if bank == 0 {
			return c.GPIO.ResolvedByte()
		}
		return c.GPIO.Tris()
	case WPU:
		return c.GPIO.WPU()
	case TMR1L:
		return c.Timer1.Low()
	case TMR1H:
		return c.Timer1.High()
	default:
		return c.Data.Read(bank, addr)
	}
}

// WriteRegister dispatches a data-memory write through banking and the
// owning-component shadow state.
func (c *CPU) WriteRegister(addr byte, value byte) {
	bank := c.bank()
	switch addr {
	case INDF:
		fsr := c.Data.Read(bank, FSR)
		if fsr == INDF {
			return
		}
		c.WriteRegister(fsr, value)
	case TMR0:
		c.Timer0.WriteCount(value)
	case PCL:
		pclath := c.Data.Read(bank, PCLATH)
		c.PC = (uint16(pclath) << 8) | uint16(value)
	case GPIOReg:
		if bank == 0 {
			c.GPIO.WriteLatch(value)
		} else {
			c.GPIO.WriteTris(value)
		}
		c.Data.Write(bank, addr, value)
	case WPU:
		c.GPIO.WriteWPU(value)
		c.Data.Write(bank, addr, value)
	case TMR1L:
		c.Timer1.WriteLow(value)
	case TMR1H:
		c.Timer1.WriteHigh(value)
	case T1CON:
		c.Timer1.Configure(value&0x01 != 0, value&0x02 != 0, (value>>4)&0x03)
		c.Data.Write(bank, addr, value)
	case OptionReg:
		c.Timer0.Configure(value&0x20 != 0, value&0x10 != 0, value&0x08 != 0, value&0x07)
		c.WDT.Configure(value&0x08 != 0, value&0x07)
		c.Data.Write(bank, addr, value)
	default:
		c.Data.Write(bank, addr, value)
	}
}

// StatusBit reports whether the given STATUS bit is set.
func (c *CPU) StatusBit(bit uint) bool {
	return c.Data.Read(0, STATUS)&(1<<bit) != 0
}

// SetStatusBit sets or clears the given STATUS bit.
func (c *CPU) SetStatusBit(bit uint, set bool) {
	status := c.Data.Read(0, STATUS)
	if set {
		status |= 1 << bit
	} else {
		status &^= 1 << bit
	}
	c.WriteRegister(STATUS, status)
}

// SetPC assigns the program counter, masked to the 13-bit address
// space.
func (c *CPU) SetPC(addr uint16) {
	c.PC = addr & 0x1fff
}

// IncrementPC advances PC by one word, wrapping within the 13-bit
// address space.
func (c *CPU) IncrementPC() {
	c.PC = (c.PC + 1) & 0x1fff
}

// PushPC saves the current PC on the hardware return stack.
func (c *CPU) PushPC() {
	c.Stack.Push(c.PC)
}

// PopPC pops the hardware return stack.
func (c *CPU) PopPC() uint16 {
	return c.Stack.Pop()
}

// EnterSleep sets the sleeping flag and clears STATUS.TO and STATUS.PD,
// per the SLEEP instruction's contract.
func (c *CPU) EnterSleep() {
	c.Sleeping = true
	c.SetStatusBit(StatusTO, false)
	c.SetStatusBit(StatusPD, false)
}

// Wake clears the sleeping flag and updates STATUS.TO/STATUS.PD
// according to whether the wake was caused by an interrupt (TO=1,
// PD=0) or by a WDT timeout (TO=0, PD=1).
func (c *CPU) Wake(byInterrupt bool) {
	c.Sleeping = false
	if byInterrupt {
		c.SetStatusBit(StatusTO, true)
		c.SetStatusBit(StatusPD, false)
	} else {
		c.SetStatusBit(StatusTO, false)
		c.SetStatusBit(StatusPD, true)
	}
}

// ClearWDT implements CLRWDT's register side effects: resets the
// watchdog accumulator and asserts STATUS.TO and STATUS.PD.
func (c *CPU) ClearWDT() {
	c.WDT.Clear()
	c.SetStatusBit(StatusTO, true)
	c.SetStatusBit(StatusPD, true)
}

// Fetch reads the program word at the current PC.
func (c *CPU) Fetch() uint16 {
	return c.Program.Read(c.PC)
}
