// machine_test.go - Machine Facade tests: boot-sector loading, warm
// reboot, and dispatcher wiring.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestImage writes a minimal bootable floppy image to a temp file and
// returns its path. The boot sector halts the guest immediately via
// INT 18h so tests don't need a real bootloader program.
func writeTestImage(t *testing.T) string {
	t.Helper()
	data := make([]byte, 1474560)
	// INT 18h (CD 18), then an infinite jump-to-self as a backstop.
	data[0] = 0xCD
	data[1] = 0x18
	data[2] = 0xEB
	data[3] = 0xFE
	data[0x1FE] = 0x55
	data[0x1FF] = 0xAA

	path := filepath.Join(t.TempDir(), "boot.img")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func TestNewMachineLoadsBootSectorAt0x7C00(t *testing.T) {
	path := writeTestImage(t)
	screen := NewTextScreen()
	queue := NewKeyQueue(8)
	debug := NewDebugSink(8)

	m, err := NewMachine(path, 1<<20, screen, queue, debug)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	addr := m.engine.GetAddress(0x0000, 0x7C00)
	got := m.engine.ReadBytes(addr, 4)
	want := []byte{0xCD, 0x18, 0xEB, 0xFE}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d at 0x7C00: got 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestNewMachineRejectsMissingImage(t *testing.T) {
	screen := NewTextScreen()
	queue := NewKeyQueue(8)
	debug := NewDebugSink(8)

	_, err := NewMachine(filepath.Join(t.TempDir(), "missing.img"), 1<<20, screen, queue, debug)
	if err == nil {
		t.Fatalf("NewMachine with a missing image: got nil error, want a configuration error")
	}
}

func TestMachineHaltsOnInt18(t *testing.T) {
	path := writeTestImage(t)
	screen := NewTextScreen()
	queue := NewKeyQueue(8)
	debug := NewDebugSink(8)

	m, err := NewMachine(path, 1<<20, screen, queue, debug)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := m.Start(ctx, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.engine.IsRunning() {
		t.Errorf("engine still running after INT 18h halt")
	}
}

func TestMachineWarmReboot(t *testing.T) {
	path := writeTestImage(t)
	screen := NewTextScreen()
	queue := NewKeyQueue(8)
	debug := NewDebugSink(8)

	m, err := NewMachine(path, 1<<20, screen, queue, debug)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	// Corrupt the loaded boot sector in guest memory, then reboot and
	// confirm it was reloaded from the image rather than left corrupted.
	addr := m.engine.GetAddress(0x0000, 0x7C00)
	m.engine.WriteBytes(addr, []byte{0x90, 0x90, 0x90, 0x90})

	m.reboot()
	m.engine.Stop() // join the goroutine reboot() launched before inspecting CPU state

	got := m.engine.ReadBytes(addr, 2)
	if got[0] != 0xCD || got[1] != 0x18 {
		t.Errorf("boot sector after warm reboot: got %#v, want {0xCD,0x18}", got)
	}
	if m.engine.CS() != 0x0000 {
		t.Errorf("CS after warm reboot: got 0x%04X, want 0x0000", m.engine.CS())
	}
}
