package main

import (
	"sync"
	"time"

	"github.com/totalspectrum/tinyscript"
)

// registerDemoBuiltins installs the sample host functions the original
// C distributions wire up around the interpreter core: dsqr from
// main.c's REPL demo, and the getcnt/pinout/pinin/waitcnt quartet from
// fibo.c's Propeller pin-toggling example. This binary has no GPIO
// pins or hardware cycle counter, so pinout/pinin simulate a small bit
// register in process memory and getcnt/waitcnt ride on the monotonic
// clock instead.
func registerDemoBuiltins(in *tinyscript.Interp) error {
	if _, st := in.DefineBuiltin("dsqr", 2, func(x, y, _, _ tinyscript.Value) tinyscript.Value {
		return x*x + y*y
	}); st != tinyscript.StatusOK {
		return st.Err()
	}

	pins := &pinState{start: time.Now()}

	if _, st := in.DefineBuiltin("getcnt", 0, func(_, _, _, _ tinyscript.Value) tinyscript.Value {
		return pins.cnt()
	}); st != tinyscript.StatusOK {
		return st.Err()
	}
	if _, st := in.DefineBuiltin("waitcnt", 1, func(when, _, _, _ tinyscript.Value) tinyscript.Value {
		pins.waitUntil(when)
		return when
	}); st != tinyscript.StatusOK {
		return st.Err()
	}
	if _, st := in.DefineBuiltin("pinout", 2, func(pin, onoff, _, _ tinyscript.Value) tinyscript.Value {
		pins.setPin(pin, onoff != 0)
		return onoff
	}); st != tinyscript.StatusOK {
		return st.Err()
	}
	if _, st := in.DefineBuiltin("pinin", 1, func(pin, _, _, _ tinyscript.Value) tinyscript.Value {
		if pins.getPin(pin) {
			return 1
		}
		return 0
	}); st != tinyscript.StatusOK {
		return st.Err()
	}
	return nil
}

// pinState simulates fibo.c's DIRA/OUTA/INA register trio as a single
// bitmask, counting elapsed nanoseconds since start as a stand-in for
// the Propeller's free-running CNT register.
type pinState struct {
	start time.Time

	mu   sync.Mutex
	mask uint64
}

func (p *pinState) cnt() tinyscript.Value {
	return tinyscript.Value(time.Since(p.start).Nanoseconds())
}

func (p *pinState) waitUntil(when tinyscript.Value) {
	target := p.start.Add(time.Duration(when))
	if d := time.Until(target); d > 0 {
		time.Sleep(d)
	}
}

func (p *pinState) setPin(pin tinyscript.Value, on bool) {
	if pin < 0 || pin >= 64 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	bit := uint64(1) << uint(pin)
	if on {
		p.mask |= bit
	} else {
		p.mask &^= bit
	}
}

func (p *pinState) getPin(pin tinyscript.Value) bool {
	if pin < 0 || pin >= 64 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mask&(uint64(1)<<uint(pin)) != 0
}
