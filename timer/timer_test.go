package timer

/*
 * pic12sim - Timer0/Timer1/WDT tests
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

import "testing"

func TestTimer0OverflowBoundary(t *testing.T) {
	for _, ps := range []byte{0, 3, 7} {
		var t0 Timer0
		t0.Reset()
		t0.Configure(false, true, false, ps)
		t0.WriteCount(0)

		n := 2 << uint(ps)
		want := 256 * n
		overflowed := false
		cycles := 0
		for cycles = 1; cycles <= want; cycles++ {
			if t0.Tick() {
				overflowed = true
				break
			}
		}
		if !overflowed || cycles != want {
			t.Errorf("ps=%d: overflow at cycle %d, want %d (overflowed=%v)", ps, cycles, want, overflowed)
		}
	}
}

func TestTimer0ExternalClockDoesNothing(t *testing.T) {
	var t0 Timer0
	t0.Reset()
	t0.Configure(true, false, false, 0)
	for i := 0; i < 10000; i++ {
		if t0.Tick() {
			t.Fatalf("external-clocked Timer0 must never tick internally")
		}
	}
	if t0.Count != 0 {
		t.Errorf("external-clocked Timer0 count got: %d expected: 0", t0.Count)
	}
}

func TestTimer0WriteClearsPrescaler(t *testing.T) {
	var t0 Timer0
	t0.Reset()
	t0.Configure(false, false, false, 2) // 1:8
	t0.Tick()
	t0.Tick()
	t0.WriteCount(5)
	// prescaler accumulator was reset; 7 more ticks must not reach the
	// divisor of 8 yet.
	for i := 0; i < 7; i++ {
		if t0.Tick() {
			t.Fatalf("unexpected overflow after write-cleared prescaler at tick %d", i)
		}
	}
	if t0.Count != 5 {
		t.Errorf("count got: %d expected: 5", t0.Count)
	}
}

func TestTimer0PSAToWDTIgnoresPrescaler(t *testing.T) {
	var t0 Timer0
	t0.Reset()
	t0.Configure(false, true, true, 7) // PSA assigned to WDT: increments every cycle
	t0.WriteCount(0)
	if !t0.PSA() {
		t.Fatalf("PSA should report true")
	}
	for i := 0; i < 255; i++ {
		if t0.Tick() {
			t.Fatalf("unexpected early overflow at cycle %d", i)
		}
	}
	if !t0.Tick() {
		t.Fatalf("expected overflow at cycle 256 when PSA assigned to WDT")
	}
}

func TestTimer1OverflowBoundary(t *testing.T) {
	for _, ps := range []byte{0, 2, 3} {
		var t1 Timer1
		t1.Reset()
		t1.Configure(true, false, ps)

		n := 1 << uint(ps)
		want := 65536 * n
		overflowed := false
		cycles := 0
		for cycles = 1; cycles <= want; cycles++ {
			if t1.Tick() {
				overflowed = true
				break
			}
		}
		if !overflowed || cycles != want {
			t.Errorf("ps=%d: overflow at cycle %d, want %d (overflowed=%v)", ps, cycles, want, overflowed)
		}
		if t1.Count() != 0 {
			t.Errorf("ps=%d: count after wrap got: %d expected: 0", ps, t1.Count())
		}
	}
}

func TestTimer1DisabledDoesNotTick(t *testing.T) {
	var t1 Timer1
	t1.Reset()
	for i := 0; i < 100; i++ {
		if t1.Tick() {
			t.Fatalf("disabled Timer1 must not tick")
		}
	}
}

func TestTimer1LowHighWrite(t *testing.T) {
	var t1 Timer1
	t1.Reset()
	t1.WriteHigh(0xff)
	t1.WriteLow(0xfe)
	if t1.Count() != 0xfffe {
		t.Errorf("count got: %#04x expected: 0xfffe", t1.Count())
	}
}

func TestWDTTimeoutBoundary(t *testing.T) {
	for _, ps := range []byte{0, 1, 4} {
		var w WDT
		w.SetEnabled(true)
		w.Reset()
		w.Configure(true, ps)

		n := uint32(1) << uint(ps)
		want := NominalPeriod * n
		var cycles uint32
		timedOut := false
		for cycles = 1; cycles <= want; cycles++ {
			if w.Tick() {
				timedOut = true
				break
			}
		}
		if !timedOut || cycles != want {
			t.Errorf("ps=%d: timeout at cycle %d, want %d (timedOut=%v)", ps, cycles, want, timedOut)
		}
	}
}

func TestWDTClearResetsAccumulator(t *testing.T) {
	var w WDT
	w.SetEnabled(true)
	w.Reset()
	w.Configure(false, 0)
	for i := 0; i < 100; i++ {
		w.Tick()
	}
	w.Clear()
	if w.Counter() != 0 {
		t.Errorf("counter after Clear got: %d expected: 0", w.Counter())
	}
}

func TestWDTDisabledNeverTimesOut(t *testing.T) {
	var w WDT
	w.Reset()
	w.Configure(false, 0)
	for i := 0; i < NominalPeriod*2; i++ {
		if w.Tick() {
			t.Fatalf("disabled WDT must never time out")
		}
	}
}
