// machine.go - Machine Facade: owns the Engine and the Disk Image, loads
// sector 0 to 0x7C00, wires the BIOS dispatcher and the UI/keyboard
// collaborators, and exposes Start/Stop plus the warm-reboot path used by
// INT 19h.
//
// A single struct gluing the CPU, its bus, and its peripherals together
// with no global state, constructed once per run and torn down with
// errgroup rather than a process-wide singleton.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	bootSegment     = 0x0000
	bootOffset      = 0x7C00
	biosDataSegment = 0x0040 // conventional BDA segment, not populated here
)

// Machine is the top-level object a CLI run constructs: one disk image,
// one CPU engine, one text screen, one key queue, wired together for the
// duration of a single boot - there is never a second Machine instance
// reused across reboots; INT 19h reloads sector 0 into the same Engine
// instead.
type Machine struct {
	engine   *Engine
	disk     *DiskImage
	video    BiosVideo
	keyboard *KeyQueue
	debug    *DebugSink
	dispatch *BiosDispatcher

	debugCPU *DebugX86

	stopCh chan struct{}
}

// NewMachine constructs a Machine over the given disk image path and guest
// memory size, loading the boot sector and wiring the BIOS dispatcher. A
// load failure or an image too small to boot is a configuration error,
// returned directly rather than panicking.
func NewMachine(imagePath string, memSize uint32, video BiosVideo, keyboard *KeyQueue, debug *DebugSink) (*Machine, error) {
	disk, err := LoadDiskImage(imagePath)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(memSize)
	m := &Machine{
		engine:   engine,
		disk:     disk,
		video:    video,
		keyboard: keyboard,
		debug:    debug,
		debugCPU: NewDebugX86(engine.CPU(), engine),
		stopCh:   make(chan struct{}),
	}

	if err := m.loadBootSector(); err != nil {
		return nil, err
	}

	ctx := &bioContext{
		engine:   m.engine,
		disk:     m.disk,
		video:    m.video,
		keyboard: m.keyboard,
		debug:    m.debug,
		stop:     m.stopCh,
		reboot:   m.reboot,
	}
	m.dispatch = NewBiosDispatcher(ctx)
	m.engine.SetInterruptHandler(m.dispatch.Dispatch)

	return m, nil
}

// SetBreakConditions installs -break expressions to trace against every
// dispatched interrupt.
func (m *Machine) SetBreakConditions(conds []*BreakCondition) {
	m.dispatch.SetBreakConditions(m.debugCPU, conds)
}

// loadBootSector copies the image's first 512 bytes to guest physical
// address 0x7C00, the fixed real-mode boot location every x86 BIOS uses.
func (m *Machine) loadBootSector() error {
	sector := m.disk.BootSector()
	addr := m.engine.GetAddress(bootSegment, bootOffset)
	if err := m.engine.LoadAt(addr, sector); err != nil {
		return fmt.Errorf("loading boot sector: %w", err)
	}
	return nil
}

// reboot implements INT 19h's warm-restart contract: reload sector 0 and
// jump to it again, entirely inside the existing Engine/Machine - there is
// no process-level reset and no second Machine instance.
func (m *Machine) reboot() {
	m.engine.Reset()
	if err := m.loadBootSector(); err != nil {
		m.debug.Linef("warm reboot failed: %v", err)
		return
	}
	m.engine.Start(bootSegment, bootOffset)
}

// Start launches the guest at 0000:7C00 and blocks until the run ends -
// either the guest halts itself (INT 18h, or running off the end of
// memory) or ctx is cancelled. It coordinates the guest-execution
// goroutine and the keyboard-host goroutine with an errgroup so either
// one's exit tears down the other.
func (m *Machine) Start(ctx context.Context, keyboardHost *KeyboardHost) error {
	g, gctx := errgroup.WithContext(ctx)

	if keyboardHost != nil {
		keyboardHost.Start()
		g.Go(func() error {
			<-gctx.Done()
			keyboardHost.Stop()
			return nil
		})
	}

	g.Go(func() error {
		m.engine.Start(bootSegment, bootOffset)
		select {
		case <-gctx.Done():
			m.engine.Stop()
		case <-m.engine.Done():
		}
		close(m.stopCh)
		return nil
	})

	return g.Wait()
}

// Stop requests guest shutdown; safe to call once per Machine.
func (m *Machine) Stop() {
	m.engine.Stop()
}

// Engine exposes the underlying Engine Facade, for the CLI's exit-code
// and debug-console wiring.
func (m *Machine) Engine() *Engine { return m.engine }

// Debug exposes the debug sink, for the CLI's drain loop.
func (m *Machine) Debug() *DebugSink { return m.debug }

// DebugCPU exposes the debug adapter, for a future interactive console.
func (m *Machine) DebugCPU() *DebugX86 { return m.debugCPU }
