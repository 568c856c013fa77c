/*
 * pic12sim - Simulator construction options
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

// Package config supplies functional-option construction knobs for a
// simulator.Simulator. There is no configuration file format here (the
// PIC engine has no device topology to describe): this is the
// teacher's config/configparser.Option model collapsed down to the
// construction-time parameters this engine actually has.
package config

import "log/slog"

// DefaultClockHz is the PIC12F629/675's default internal oscillator
// frequency; four oscillator cycles make one instruction cycle.
const DefaultClockHz = 4_000_000

// Settings collects every construction-time knob a Simulator accepts.
// Callers never build one directly; Apply it through Option values.
type Settings struct {
	Logger      *slog.Logger
	ClockHz     int
	Breakpoints []uint16
	WDTEnabled  bool
}

// Option mutates Settings during simulator.New.
type Option func(*Settings)

// Defaults returns the Settings a bare simulator.New() with no options
// would use.
func Defaults() Settings {
	return Settings{
		ClockHz:    DefaultClockHz,
		WDTEnabled: true,
	}
}

// Apply folds opts onto a copy of Defaults() and returns the result.
func Apply(opts []Option) Settings {
	s := Defaults()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger attaches a logger for simulator diagnostics (program load,
// resets, decode errors, sleep/wake). A nil logger is equivalent to
// omitting this option.
func WithLogger(log *slog.Logger) Option {
	return func(s *Settings) {
		s.Logger = log
	}
}

// WithClockHz records the oscillator frequency the caller intends to
// simulate at. The engine itself is clock-rate-agnostic (it counts
// cycles, not wall-clock time); this is carried for front-ends that
// want to pace real-time playback or report instructions-per-second.
func WithClockHz(hz int) Option {
	return func(s *Settings) {
		s.ClockHz = hz
	}
}

// WithBreakpoints seeds the simulator's breakpoint set at construction
// time, equivalent to calling AddBreakpoint for each address after
// New.
func WithBreakpoints(addrs ...uint16) Option {
	return func(s *Settings) {
		s.Breakpoints = append(s.Breakpoints, addrs...)
	}
}

// WithWDTEnabled overrides the watchdog timer's power-on enable state
// (the configuration-word WDT fuse equivalent; config-word clock
// selection itself is out of scope).
func WithWDTEnabled(enabled bool) Option {
	return func(s *Settings) {
		s.WDTEnabled = enabled
	}
}
