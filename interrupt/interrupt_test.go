package interrupt

/*
 * pic12sim - Interrupt controller tests
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

func TestPendingGIEClearBlocksEverything(t *testing.T) {
	should, _ := Pending(T0IE|T0IF, 0xff, 0xff)
	if should {
		t.Errorf("GIE=0 must block all interrupts")
	}
}

func TestPendingINTCONSources(t *testing.T) {
	cases := []struct {
		name   string
		intcon byte
	}{
		{"T0IE+T0IF", GIE | T0IE | T0IF},
		{"INTE+INTF", GIE | INTE | INTF},
		{"GPIE+GPIF", GIE | GPIE | GPIF},
	}
	for _, c := range cases {
		should, vector := Pending(c.intcon, 0, 0)
		if !should {
			t.Errorf("%s: expected pending, got none", c.name)
		}
		if vector != Vector {
			t.Errorf("%s: vector got: %#04x expected: %#04x", c.name, vector, Vector)
		}
	}
}

func TestPendingEnabledWithoutFlagDoesNotFire(t *testing.T) {
	should, _ := Pending(GIE|T0IE, 0, 0)
	if should {
		t.Errorf("enable without flag must not fire")
	}
}

func TestPendingFlagWithoutEnableDoesNotFire(t *testing.T) {
	should, _ := Pending(GIE|T0IF, 0, 0)
	if should {
		t.Errorf("flag without enable must not fire")
	}
}

func TestPendingPeripheralSourcesRequirePEIE(t *testing.T) {
	should, _ := Pending(GIE, TMR1IE, TMR1IF)
	if should {
		t.Errorf("peripheral source must not fire without PEIE")
	}
	should, vector := Pending(GIE|PEIE, TMR1IE, TMR1IF)
	if !should || vector != Vector {
		t.Errorf("TMR1IE+TMR1IF with PEIE must fire, got should=%v vector=%#04x", should, vector)
	}
}

func TestPendingAllPeripheralSources(t *testing.T) {
	cases := []struct {
		name       string
		pie1, pir1 byte
	}{
		{"TMR1", TMR1IE, TMR1IF},
		{"CM", CMIE, CMIF},
		{"AD", ADIE, ADIF},
		{"EE", EEIE, EEIF},
	}
	for _, c := range cases {
		should, _ := Pending(GIE|PEIE, c.pie1, c.pir1)
		if !should {
			t.Errorf("%s: expected pending with PEIE set", c.name)
		}
	}
}

func TestPendingINTCONSourcesIgnorePEIE(t *testing.T) {
	should, _ := Pending(GIE|T0IE|T0IF, 0, 0)
	if !should {
		t.Errorf("INTCON sources must fire regardless of PEIE")
	}
}

func TestControllerReentryGuard(t *testing.T) {
	var c Controller
	should, _ := c.Service(GIE|T0IE|T0IF, 0, 0)
	if !should {
		t.Fatalf("expected first interrupt to be serviceable")
	}
	c.Enter()
	should, _ = c.Service(GIE|T0IE|T0IF, 0, 0)
	if should {
		t.Errorf("in-ISR latch must block re-entry even with GIE set and a source pending")
	}
	c.Return()
	should, _ = c.Service(GIE|T0IE|T0IF, 0, 0)
	if !should {
		t.Errorf("after Return, a pending source must be serviceable again")
	}
}

func TestControllerNotInISRInitially(t *testing.T) {
	var c Controller
	if c.InISR {
		t.Errorf("new Controller must not start in-ISR")
	}
}
