/*
 * pic12sim - Instruction executor
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

// Package executor applies a decoded instruction to a CPU, returning
// the number of cycles consumed.
package executor

import (
	"github.com/rcornwell/pic12sim/cpu"
	"github.com/rcornwell/pic12sim/instruction"
)

// Execute applies ins to c and returns the number of cycles consumed
// (instruction.BaseCycles, plus one more for a taken skip).
func Execute(c *cpu.CPU, ins instruction.Instruction) int {
	switch ins.Op {
	case instruction.ADDWF:
		return addwf(c, ins.F, ins.D)
	case instruction.ANDWF:
		return andwf(c, ins.F, ins.D)
	case instruction.CLRF:
		return clrf(c, ins.F)
	case instruction.CLRW:
		return clrw(c)
	case instruction.COMF:
		return comf(c, ins.F, ins.D)
	case instruction.DECF:
		return decf(c, ins.F, ins.D)
	case instruction.DECFSZ:
		return decfsz(c, ins.F, ins.D)
	case instruction.INCF:
		return incf(c, ins.F, ins.D)
	case instruction.INCFSZ:
		return incfsz(c, ins.F, ins.D)
	case instruction.IORWF:
		return iorwf(c, ins.F, ins.D)
	case instruction.MOVF:
		return movf(c, ins.F, ins.D)
	case instruction.MOVWF:
		return movwf(c, ins.F)
	case instruction.NOP:
		return 1
	case instruction.RLF:
		return rlf(c, ins.F, ins.D)
	case instruction.RRF:
		return rrf(c, ins.F, ins.D)
	case instruction.SUBWF:
		return subwf(c, ins.F, ins.D)
	case instruction.SWAPF:
		return swapf(c, ins.F, ins.D)
	case instruction.XORWF:
		return xorwf(c, ins.F, ins.D)

	case instruction.BCF:
		return bcf(c, ins.F, ins.B)
	case instruction.BSF:
		return bsf(c, ins.F, ins.B)
	case instruction.BTFSC:
		return btfsc(c, ins.F, ins.B)
	case instruction.BTFSS:
		return btfss(c, ins.F, ins.B)

	case instruction.ADDLW:
		return addlw(c, byte(ins.K))
	case instruction.ANDLW:
		return andlw(c, byte(ins.K))
	case instruction.CALL:
		return call(c, ins.K)
	case instruction.CLRWDT:
		c.ClearWDT()
		return 1
	case instruction.GOTO:
		return goTo(c, ins.K)
	case instruction.IORLW:
		return iorlw(c, byte(ins.K))
	case instruction.MOVLW:
		c.W = byte(ins.K)
		return 1
	case instruction.RETFIE:
		return retfie(c)
	case instruction.RETLW:
		return retlw(c, byte(ins.K))
	case instruction.RETURN:
		c.SetPC(c.PopPC())
		return 2
	case instruction.SLEEP:
		c.EnterSleep()
		return 1
	case instruction.SUBLW:
		return sublw(c, byte(ins.K))
	case instruction.XORLW:
		return xorlw(c, byte(ins.K))
	}
	panic("executor: unhandled op")
}

func writeDest(c *cpu.CPU, f, d, result byte) {
	if d == 0 {
		c.W = result
	} else {
		c.WriteRegister(f, result)
	}
}

func updateZero(c *cpu.CPU, result byte) {
	c.SetStatusBit(cpu.StatusZ, result == 0)
}

func updateCarry(c *cpu.CPU, carry bool) {
	c.SetStatusBit(cpu.StatusC, carry)
}

func updateDigitCarry(c *cpu.CPU, dc bool) {
	c.SetStatusBit(cpu.StatusDC, dc)
}

func addwf(c *cpu.CPU, f, d byte) int {
	w := c.W
	val := c.ReadRegister(f)
	result := w + val
	updateCarry(c, uint16(w)+uint16(val) > 0xff)
	updateDigitCarry(c, (w&0x0f)+(val&0x0f) > 0x0f)
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func andwf(c *cpu.CPU, f, d byte) int {
	result := c.W & c.ReadRegister(f)
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func clrf(c *cpu.CPU, f byte) int {
	c.WriteRegister(f, 0)
	updateZero(c, 0)
	return 1
}

func clrw(c *cpu.CPU) int {
	c.W = 0
	updateZero(c, 0)
	return 1
}

func comf(c *cpu.CPU, f, d byte) int {
	result := ^c.ReadRegister(f)
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func decf(c *cpu.CPU, f, d byte) int {
	result := c.ReadRegister(f) - 1
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func decfsz(c *cpu.CPU, f, d byte) int {
	result := c.ReadRegister(f) - 1
	writeDest(c, f, d, result)
	if result == 0 {
		c.IncrementPC()
		return 2
	}
	return 1
}

func incf(c *cpu.CPU, f, d byte) int {
	result := c.ReadRegister(f) + 1
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func incfsz(c *cpu.CPU, f, d byte) int {
	result := c.ReadRegister(f) + 1
	writeDest(c, f, d, result)
	if result == 0 {
		c.IncrementPC()
		return 2
	}
	return 1
}

func iorwf(c *cpu.CPU, f, d byte) int {
	result := c.W | c.ReadRegister(f)
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func movf(c *cpu.CPU, f, d byte) int {
	val := c.ReadRegister(f)
	updateZero(c, val)
	writeDest(c, f, d, val)
	return 1
}

func movwf(c *cpu.CPU, f byte) int {
	c.WriteRegister(f, c.W)
	return 1
}

func rlf(c *cpu.CPU, f, d byte) int {
	val := c.ReadRegister(f)
	oldCarry := byte(0)
	if c.StatusBit(cpu.StatusC) {
		oldCarry = 1
	}
	result := (val << 1) | oldCarry
	updateCarry(c, val&0x80 != 0)
	writeDest(c, f, d, result)
	return 1
}

func rrf(c *cpu.CPU, f, d byte) int {
	val := c.ReadRegister(f)
	oldCarry := byte(0)
	if c.StatusBit(cpu.StatusC) {
		oldCarry = 0x80
	}
	result := (val >> 1) | oldCarry
	updateCarry(c, val&0x01 != 0)
	writeDest(c, f, d, result)
	return 1
}

func subwf(c *cpu.CPU, f, d byte) int {
	w := c.W
	val := c.ReadRegister(f)
	result := val - w
	updateCarry(c, val >= w)
	updateDigitCarry(c, (val&0x0f) >= (w&0x0f))
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func swapf(c *cpu.CPU, f, d byte) int {
	val := c.ReadRegister(f)
	result := (val << 4) | (val >> 4)
	writeDest(c, f, d, result)
	return 1
}

func xorwf(c *cpu.CPU, f, d byte) int {
	result := c.W ^ c.ReadRegister(f)
	updateZero(c, result)
	writeDest(c, f, d, result)
	return 1
}

func bcf(c *cpu.CPU, f, b byte) int {
	val := c.ReadRegister(f)
	c.WriteRegister(f, val&^(1<<b))
	return 1
}

func bsf(c *cpu.CPU, f, b byte) int {
	val := c.ReadRegister(f)
	c.WriteRegister(f, val|(1<<b))
	return 1
}

func btfsc(c *cpu.CPU, f, b byte) int {
	if c.ReadRegister(f)&(1<<b) == 0 {
		c.IncrementPC()
		return 2
	}
	return 1
}

func btfss(c *cpu.CPU, f, b byte) int {
	if c.ReadRegister(f)&(1<<b) != 0 {
		c.IncrementPC()
		return 2
	}
	return 1
}

func addlw(c *cpu.CPU, k byte) int {
	w := c.W
	result := w + k
	updateCarry(c, uint16(w)+uint16(k) > 0xff)
	updateDigitCarry(c, (w&0x0f)+(k&0x0f) > 0x0f)
	updateZero(c, result)
	c.W = result
	return 1
}

func andlw(c *cpu.CPU, k byte) int {
	result := c.W & k
	updateZero(c, result)
	c.W = result
	return 1
}

func call(c *cpu.CPU, k uint16) int {
	c.PushPC()
	pclath := c.ReadRegister(cpu.PCLATH)
	c.SetPC(((uint16(pclath) & 0x18) << 8) | k)
	return 2
}

func goTo(c *cpu.CPU, k uint16) int {
	pclath := c.ReadRegister(cpu.PCLATH)
	c.SetPC(((uint16(pclath) & 0x18) << 8) | k)
	return 2
}

func iorlw(c *cpu.CPU, k byte) int {
	result := c.W | k
	updateZero(c, result)
	c.W = result
	return 1
}

func retfie(c *cpu.CPU) int {
	c.SetPC(c.PopPC())
	intcon := c.ReadRegister(cpu.INTCON)
	c.WriteRegister(cpu.INTCON, intcon|0x80)
	c.Interrupt.Return()
	return 2
}

func retlw(c *cpu.CPU, k byte) int {
	c.W = k
	c.SetPC(c.PopPC())
	return 2
}

func sublw(c *cpu.CPU, k byte) int {
	w := c.W
	result := k - w
	updateCarry(c, k >= w)
	updateDigitCarry(c, (k&0x0f) >= (w&0x0f))
	updateZero(c, result)
	c.W = result
	return 1
}

func xorlw(c *cpu.CPU, k byte) int {
	result := c.W ^ k
	updateZero(c, result)
	c.W = result
	return 1
}
