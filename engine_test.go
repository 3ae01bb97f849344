// engine_test.go - CPU Engine Facade tests: address resolution, the BIOS
// dispatcher hook, and the Halt/Stop/Done lifecycle.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"testing"
	"time"
)

func TestEngineGetAddress(t *testing.T) {
	e := NewEngine(1 << 20)
	got := e.GetAddress(0x0000, 0x7C00)
	if got != 0x7C00 {
		t.Errorf("GetAddress(0,0x7C00): got 0x%05X, want 0x7C00", got)
	}
	got = e.GetAddress(0x1000, 0x0010)
	if got != 0x10010 {
		t.Errorf("GetAddress(0x1000,0x10): got 0x%05X, want 0x10010", got)
	}
}

func TestEngineLoadAtOutOfRangeFails(t *testing.T) {
	e := NewEngine(1024)
	if err := e.LoadAt(2000, []byte{1, 2, 3}); err == nil {
		t.Fatalf("LoadAt past the end of memory: got nil error, want a bounds error")
	}
}

func TestEngineInterruptHookOverridesDefault(t *testing.T) {
	e := NewEngine(1 << 20)
	var seen byte
	e.SetInterruptHandler(func(vector byte) bool {
		seen = vector
		e.Halt()
		return true
	})

	// CD 10 = INT 10h, then halt reached via the hook rather than the
	// engine's default IVT push+jump.
	e.LoadAt(0, []byte{0xCD, 0x10})
	e.Start(0x0000, 0x0000)

	select {
	case <-e.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("engine did not halt within 2s")
	}

	if seen != 0x10 {
		t.Errorf("interrupt hook saw vector 0x%02X, want 0x10", seen)
	}
}

func TestEngineHaltStopsRunLoop(t *testing.T) {
	e := NewEngine(1 << 20)
	// EB FE = JMP -2 (infinite self-loop).
	e.LoadAt(0, []byte{0xEB, 0xFE})
	e.Start(0x0000, 0x0000)

	time.Sleep(10 * time.Millisecond)
	if !e.IsRunning() {
		t.Fatalf("engine not running after Start")
	}

	e.Halt()
	select {
	case <-e.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("engine did not stop within 2s of Halt")
	}
	if e.IsRunning() {
		t.Errorf("engine still reports running after Halt")
	}
}
