package application

import (
	"testing"
	"time"
)

func eventually(t *testing.T, within time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", within)
}

func TestGateDropsRepeatOfSameCode(t *testing.T) {
	g := NewScanGate(time.Minute)
	defer g.Stop()

	if !g.Admit("A") {
		t.Fatal("first scan must be admitted")
	}
	g.Release(0)
	if g.Admit("A") {
		t.Fatal("repeat within cooldown must be dropped")
	}
	if got := g.State(); got != GateCooldown {
		t.Fatalf("state = %s, want cooldown", got)
	}
	if !g.Admit("B") {
		t.Fatal("a different code must be admitted once the first is released")
	}
}

func TestGateSerializesInFlightScans(t *testing.T) {
	g := NewScanGate(time.Minute)
	defer g.Stop()

	if !g.Admit("A") {
		t.Fatal("first scan must be admitted")
	}
	if g.Admit("B") {
		t.Fatal("different code admitted while processing")
	}
	if g.Admit("A") {
		t.Fatal("same code admitted while processing")
	}
	if got := g.State(); got != GateProcessing {
		t.Fatalf("state = %s, want processing", got)
	}
}

func TestGateRecoversAfterCooldown(t *testing.T) {
	g := NewScanGate(30 * time.Millisecond)
	defer g.Stop()

	g.Admit("A")
	g.Release(0)
	eventually(t, time.Second, func() bool { return g.State() == GateIdle })
	if !g.Admit("A") {
		t.Fatal("same code must be accepted again after cooldown")
	}
}

func TestGateCooldownRecoveryIsUnconditional(t *testing.T) {
	g := NewScanGate(30 * time.Millisecond)
	defer g.Stop()

	g.Admit("A") // never released, e.g. a lookup that hung
	eventually(t, time.Second, func() bool { return g.State() == GateIdle })
	if !g.Admit("B") {
		t.Fatal("gate stuck after cooldown expiry")
	}
}

func TestGateReplacesPendingTimer(t *testing.T) {
	g := NewScanGate(200 * time.Millisecond)
	defer g.Stop()

	g.Admit("A")
	g.Release(0)
	time.Sleep(120 * time.Millisecond)
	if !g.Admit("B") {
		t.Fatal("B must be admitted during A's cooldown")
	}
	// A's original timer would have fired at 200ms.
	time.Sleep(130 * time.Millisecond)
	if got := g.State(); got != GateProcessing {
		t.Fatalf("state = %s, stale timer reset the gate", got)
	}
	if g.Admit("C") {
		t.Fatal("C admitted while B is still in flight")
	}
}

func TestGateSettleDelay(t *testing.T) {
	g := NewScanGate(time.Minute)
	defer g.Stop()

	g.Admit("A")
	g.Release(40 * time.Millisecond)
	if g.Admit("B") {
		t.Fatal("B admitted before the settle delay elapsed")
	}
	eventually(t, time.Second, func() bool { return g.State() == GateCooldown })
	if g.Admit("A") {
		t.Fatal("A admitted again during cooldown")
	}
	if !g.Admit("B") {
		t.Fatal("B must be admitted after settling")
	}
}

func TestGateReset(t *testing.T) {
	g := NewScanGate(time.Minute)
	defer g.Stop()

	g.Admit("A")
	g.Reset()
	if got := g.State(); got != GateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
	if !g.Admit("A") {
		t.Fatal("explicit reset must re-arm acceptance of the same code")
	}
}
