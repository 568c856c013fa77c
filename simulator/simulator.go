/*
 * pic12sim - Simulator outer loop
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

// Package simulator owns a CPU and drives it one instruction at a time:
// Step performs the fetch-decode-execute-tick sequence described by the
// component design, Run loops Step until a breakpoint, error, or pause.
// There is no goroutine or channel anywhere in this package: the teacher's
// core.core pumps a CPU through a goroutine and a master channel because
// S/370 has genuinely concurrent channel and telnet collaborators; this
// engine has none, so Step/Run are plain synchronous method calls.
package simulator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rcornwell/pic12sim/config"
	"github.com/rcornwell/pic12sim/cpu"
	"github.com/rcornwell/pic12sim/executor"
	"github.com/rcornwell/pic12sim/gpio"
	"github.com/rcornwell/pic12sim/hexloader"
	"github.com/rcornwell/pic12sim/instruction"
	"github.com/rcornwell/pic12sim/interrupt"
	"github.com/rcornwell/pic12sim/util/logger"
)

// State is the Simulator's run state, reported by State().
type State int

const (
	StateRunning State = iota
	StatePaused
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateHalted:
		return "Halted"
	}
	return "Unknown"
}

// HaltedError reports a Step call on a halted Simulator.
type HaltedError struct{}

func (e *HaltedError) Error() string { return "simulator: halted" }

// Stats accumulates the instruction and cycle counts a Simulator has
// executed since construction or the last Reset.
type Stats struct {
	Instructions uint64
	Cycles       uint64
}

// Simulator drives a *cpu.CPU through the per-step sequence and tracks
// breakpoints, run state, and statistics. It owns the CPU exclusively;
// callers reach peripheral/register state only through Simulator's own
// observation methods or, for direct register-level tests, cpu.CPU.
type Simulator struct {
	cpu *cpu.CPU

	breakpoints map[uint16]struct{}
	stats       Stats
	state       State

	configWord uint16
	hasConfig  bool

	log *slog.Logger
}

// New constructs a Simulator configured by opts (see package config).
func New(opts ...config.Option) *Simulator {
	settings := config.Apply(opts)
	log := settings.Logger
	if log == nil {
		log = logger.Discard()
	}

	s := &Simulator{
		breakpoints: map[uint16]struct{}{},
		log:         log,
	}
	s.cpu = cpu.New(settings.WDTEnabled, log)
	for _, addr := range settings.Breakpoints {
		s.breakpoints[addr] = struct{}{}
	}
	return s
}

// Reset restores the CPU to power-on-reset state (program memory and
// EEPROM survive) and clears run state and statistics, but leaves
// breakpoints untouched.
func (s *Simulator) Reset() {
	s.cpu.Reset()
	s.state = StateRunning
	s.stats = Stats{}
	s.log.Info("simulator reset")
}

// LoadProgram replaces the entire program memory image.
func (s *Simulator) LoadProgram(words []uint16) {
	s.cpu.Program.Load(words)
	s.log.Info("program loaded", "words", len(words))
}

// LoadHexFile parses an Intel HEX file from disk and loads its
// program/EEPROM/config-word regions.
func (s *Simulator) LoadHexFile(path string) error {
	img, err := hexloader.LoadFile(path)
	if err != nil {
		return err
	}
	s.loadImage(img)
	return nil
}

// LoadHexString parses Intel HEX text and loads its program/EEPROM/
// config-word regions.
func (s *Simulator) LoadHexString(text string) error {
	img, err := hexloader.Load(strings.NewReader(text))
	if err != nil {
		return err
	}
	s.loadImage(img)
	return nil
}

func (s *Simulator) loadImage(img *hexloader.Image) {
	s.cpu.Program.Load(img.Program)
	s.cpu.EEPROM.Load(img.EEPROM)
	if img.HasConfigWord {
		s.configWord = img.ConfigWord
		s.hasConfig = true
	}
	s.log.Info("hex image loaded", "words", len(img.Program), "has_config", img.HasConfigWord)
}

// ConfigWord returns the configuration word from the most recently
// loaded HEX file and whether one was present. Config-word-driven clock
// selection is outside this engine's scope (spec Non-goals); the word
// is carried only for front-ends that want to display it.
func (s *Simulator) ConfigWord() (word uint16, ok bool) {
	return s.configWord, s.hasConfig
}

// Step advances the simulation by exactly one simulated instruction
// (plus any induced peripheral ticks), per the component design's
// 8-step sequence. It returns the number of cycles consumed.
func (s *Simulator) Step() (int, error) {
	if s.state == StateHalted {
		return 0, &HaltedError{}
	}
	c := s.cpu

	// 1. Sleep branch.
	if c.Sleeping {
		if c.WDT.Tick() {
			c.Wake(false)
			s.log.Debug("wake", "by_interrupt", false)
			s.account(1)
			return 1, nil
		}
		intcon := c.ReadRegister(cpu.INTCON)
		pie1 := c.ReadRegister(cpu.PIE1)
		pir1 := c.ReadRegister(cpu.PIR1)
		if should, _ := interrupt.Pending(intcon, pie1, pir1); should {
			c.Wake(true)
			s.log.Debug("wake", "by_interrupt", true)
			// Fall through to the normal interrupt-check/fetch/execute
			// path below using the now-awake CPU.
		} else {
			s.account(1)
			return 1, nil
		}
	}

	// 2. Interrupt check. Taking an interrupt redirects PC to the fixed
	// vector and pushes the return address, like a CALL forced in ahead
	// of the fetch; the instruction now at PC still fetches, decodes, and
	// executes in this same step, with 2 cycles added on top of its own
	// cost for the vectoring.
	intcon := c.ReadRegister(cpu.INTCON)
	pie1 := c.ReadRegister(cpu.PIE1)
	pir1 := c.ReadRegister(cpu.PIR1)
	interruptCycles := 0
	if should, vector := c.Interrupt.Service(intcon, pie1, pir1); should {
		c.PushPC()
		c.WriteRegister(cpu.INTCON, intcon&^interrupt.GIE)
		c.SetPC(vector)
		c.Interrupt.Enter()
		s.log.Debug("interrupt serviced", "vector", vector)
		interruptCycles = 2
	}

	// 3. Fetch.
	word := c.Fetch()

	// 4. Decode.
	ins, err := instruction.Decode(word, c.PC)
	if err != nil {
		s.log.Error("decode error", "pc", c.PC, "word", word)
		return 0, err
	}

	// 5. Increment PC.
	c.IncrementPC()

	// 6. Execute.
	cycles := executor.Execute(c, ins)
	if ins.Op == instruction.SLEEP {
		s.log.Debug("sleep entered", "pc", c.PC)
	}

	// 7-8. Tick peripherals for the instruction's cycles (plus any
	// interrupt-vectoring overhead) and account.
	return s.tickAndAccount(cycles + interruptCycles)
}

// tickAndAccount advances every cycle-ticked peripheral by n cycles,
// applying a full device reset and stopping early if the WDT times out
// while awake, then folds the ticks actually consumed into the running
// statistics.
func (s *Simulator) tickAndAccount(n int) (int, error) {
	c := s.cpu
	ticked := 0
	for i := 0; i < n; i++ {
		ticked++
		if c.Timer0.Tick() {
			c.WriteRegister(cpu.INTCON, c.ReadRegister(cpu.INTCON)|interrupt.T0IF)
		}
		if c.Timer1.Tick() {
			c.WriteRegister(cpu.PIR1, c.ReadRegister(cpu.PIR1)|interrupt.TMR1IF)
		}
		if c.WDT.Tick() {
			s.log.Warn("WDT timeout, device reset")
			c.Reset()
			s.account(ticked)
			return ticked, nil
		}
	}
	s.account(ticked)
	return ticked, nil
}

func (s *Simulator) account(cycles int) {
	s.stats.Instructions++
	s.stats.Cycles += uint64(cycles)
	s.cpu.Cycles += uint64(cycles)
}

// Run executes Step in a loop until a breakpoint is reached (state
// becomes Paused), a decode error occurs, or the Simulator is paused
// or halted between steps.
func (s *Simulator) Run() error {
	for {
		if s.state != StateRunning {
			return nil
		}
		if _, hit := s.breakpoints[s.cpu.PC]; hit {
			s.state = StatePaused
			s.log.Debug("breakpoint hit", "pc", s.cpu.PC)
			return nil
		}
		if _, err := s.Step(); err != nil {
			return fmt.Errorf("simulator: run: %w", err)
		}
	}
}

// RunNInstructions runs at most n instructions, stopping early on a
// breakpoint, pause, halt, or error.
func (s *Simulator) RunNInstructions(n int) error {
	for i := 0; i < n; i++ {
		if s.state != StateRunning {
			return nil
		}
		if _, hit := s.breakpoints[s.cpu.PC]; hit {
			s.state = StatePaused
			return nil
		}
		if _, err := s.Step(); err != nil {
			return fmt.Errorf("simulator: run: %w", err)
		}
	}
	return nil
}

// RunNCycles runs until at least n cycles have been consumed (since the
// call began), stopping early on a breakpoint, pause, halt, or error.
func (s *Simulator) RunNCycles(n int) error {
	start := s.stats.Cycles
	for s.stats.Cycles-start < uint64(n) {
		if s.state != StateRunning {
			return nil
		}
		if _, hit := s.breakpoints[s.cpu.PC]; hit {
			s.state = StatePaused
			return nil
		}
		if _, err := s.Step(); err != nil {
			return fmt.Errorf("simulator: run: %w", err)
		}
	}
	return nil
}

// Pause requests that Run stop at the next step boundary.
func (s *Simulator) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

// Halt stops the Simulator until Reset: further Step calls return
// HaltedError, and Run, RunNInstructions and RunNCycles return nil
// without stepping.
func (s *Simulator) Halt() {
	s.state = StateHalted
}

// State reports the current run state.
func (s *Simulator) State() State {
	return s.state
}

// AddBreakpoint arms a breakpoint at addr.
func (s *Simulator) AddBreakpoint(addr uint16) {
	s.breakpoints[addr] = struct{}{}
}

// RemoveBreakpoint disarms the breakpoint at addr, if any.
func (s *Simulator) RemoveBreakpoint(addr uint16) {
	delete(s.breakpoints, addr)
}

// ClearBreakpoints disarms every breakpoint.
func (s *Simulator) ClearBreakpoints() {
	s.breakpoints = map[uint16]struct{}{}
}

// ListBreakpoints returns the armed breakpoint addresses in no
// particular order.
func (s *Simulator) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(s.breakpoints))
	for addr := range s.breakpoints {
		out = append(out, addr)
	}
	return out
}

// --- Observation ---

// ReadRegister reads a data-memory/SFR address through the CPU's
// banking and shadow-state dispatch.
func (s *Simulator) ReadRegister(addr byte) byte { return s.cpu.ReadRegister(addr) }

// ReadW returns the W working register.
func (s *Simulator) ReadW() byte { return s.cpu.W }

// GetPC returns the program counter.
func (s *Simulator) GetPC() uint16 { return s.cpu.PC }

// SetPC overwrites the program counter, masked to the 13-bit address
// space.
func (s *Simulator) SetPC(addr uint16) { s.cpu.SetPC(addr) }

// ReadMemory reads a raw data-memory byte at (bank, addr), bypassing
// SFR shadow-state dispatch (a direct peek at the backing store, for
// tooling that wants to inspect general-purpose registers).
func (s *Simulator) ReadMemory(bank int, addr byte) byte {
	return s.cpu.Data.Read(bank, addr)
}

// ReadProgram reads the program word at addr.
func (s *Simulator) ReadProgram(addr uint16) uint16 { return s.cpu.Program.Read(addr) }

// StackFrames returns a snapshot of the hardware return stack, bottom
// first.
func (s *Simulator) StackFrames() []uint16 { return s.cpu.Stack.Frames() }

// StackDepth reports the number of entries currently on the stack.
func (s *Simulator) StackDepth() int { return s.cpu.Stack.Depth() }

// Stats returns the accumulated instruction and cycle counters.
func (s *Simulator) Stats() Stats { return s.stats }

// Sleeping reports whether the CPU is in SLEEP.
func (s *Simulator) Sleeping() bool { return s.cpu.Sleeping }

// InISR reports whether the interrupt controller's re-entry latch is
// set.
func (s *Simulator) InISR() bool { return s.cpu.Interrupt.InISR }

// WDTCounter returns the watchdog timer's current accumulator value.
func (s *Simulator) WDTCounter() uint32 { return s.cpu.WDT.Counter() }

// WDTPeriod returns the watchdog timer's configured timeout period, in
// cycles.
func (s *Simulator) WDTPeriod() uint32 { return s.cpu.WDT.Period() }

// GPIODirection returns the raw TRISIO byte (1 = input).
func (s *Simulator) GPIODirection() byte { return s.cpu.GPIO.Tris() }

// GPIOLatch returns the raw port latch byte.
func (s *Simulator) GPIOLatch() byte { return s.cpu.GPIO.Latch() }

// GPIOPullups returns the raw WPU byte.
func (s *Simulator) GPIOPullups() byte { return s.cpu.GPIO.WPU() }

// GPIOPin returns the resolved three-valued state of pin.
func (s *Simulator) GPIOPin(pin int) gpio.PinState { return s.cpu.GPIO.Pin(pin) }

// --- Stimulation ---

// SetExternalPin sets or clears the externally-driven state of pin.
func (s *Simulator) SetExternalPin(pin int, high bool) { s.cpu.GPIO.SetExternalPin(pin, high) }

// SetExternalPins replaces the whole externally-driven byte at once.
func (s *Simulator) SetExternalPins(val byte) { s.cpu.GPIO.SetExternalPins(val) }

// SetPeripheralOverride enables or disables a peripheral's drive of
// pin, and when enabled, sets the value it drives.
func (s *Simulator) SetPeripheralOverride(pin int, enable bool, value bool) {
	s.cpu.GPIO.SetOverride(pin, enable, value)
}
