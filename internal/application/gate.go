package application

import (
	"sync"
	"time"
)

// GateState is the observable state of a ScanGate.
type GateState int

const (
	GateIdle GateState = iota
	GateProcessing
	GateCooldown
)

func (s GateState) String() string {
	switch s {
	case GateProcessing:
		return "processing"
	case GateCooldown:
		return "cooldown"
	default:
		return "idle"
	}
}

// ScanGate admits at most one scan at a time and rejects repeats of the
// last accepted code until its cooldown expires.
//
// Every accepted scan arms a fresh cooldown timer, replacing the previous
// one. Timers carry the generation they were armed for; a timer that fires
// after being superseded does nothing.
type ScanGate struct {
	cooldown time.Duration

	mu         sync.Mutex
	processing bool
	lastCode   string
	generation uint64
	cooldownT  *time.Timer
	settleT    *time.Timer
}

func NewScanGate(cooldown time.Duration) *ScanGate {
	return &ScanGate{cooldown: cooldown}
}

// Admit reports whether code may start a lookup. A rejected scan leaves
// the gate untouched.
func (g *ScanGate) Admit(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.processing || (g.lastCode != "" && g.lastCode == code) {
		return false
	}

	g.processing = true
	g.lastCode = code
	g.generation++
	g.stopTimersLocked()
	gen := g.generation
	g.cooldownT = time.AfterFunc(g.cooldown, func() { g.expire(gen) })
	return true
}

// Release ends the in-flight scan after delay, moving the gate to cooldown:
// other codes are admitted again while the same code stays blocked until the
// cooldown timer fires. A zero delay releases immediately.
func (g *ScanGate) Release(delay time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.processing {
		return
	}
	if delay <= 0 {
		g.processing = false
		return
	}
	if g.settleT != nil {
		g.settleT.Stop()
	}
	gen := g.generation
	g.settleT = time.AfterFunc(delay, func() { g.settle(gen) })
}

// Reset returns the gate to idle at once and cancels pending timers.
func (g *ScanGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.stopTimersLocked()
	g.processing = false
	g.lastCode = ""
}

func (g *ScanGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.processing:
		return GateProcessing
	case g.lastCode != "":
		return GateCooldown
	default:
		return GateIdle
	}
}

// Stop cancels pending timers; used on shutdown.
func (g *ScanGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.stopTimersLocked()
}

// expire is the cooldown timer: recovery is unconditional, even if the scan
// is still marked in flight.
func (g *ScanGate) expire(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return
	}
	g.processing = false
	g.lastCode = ""
	g.cooldownT = nil
}

func (g *ScanGate) settle(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return
	}
	g.processing = false
	g.settleT = nil
}

func (g *ScanGate) stopTimersLocked() {
	if g.cooldownT != nil {
		g.cooldownT.Stop()
		g.cooldownT = nil
	}
	if g.settleT != nil {
		g.settleT.Stop()
		g.settleT = nil
	}
}
