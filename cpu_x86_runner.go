// cpu_x86_runner.go - CPU Engine Facade: wraps CPU_X86 and GuestMemory into
// the register/flag/address/interrupt-hook surface the BIOS layer consumes.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"sync"
	"time"
)

// Engine is the CPU Engine Facade: it owns the x86 decode/execute core
// and its flat guest memory, and exposes exactly the surface the BIOS
// dispatcher and Machine façade need - register/segment/flag views,
// getAddress, bulk memory access, interrupt-hook registration, and a
// goroutine-backed Start/Stop pair for running the fetch/decode loop in
// the background while the host UI keeps its own goroutine free.
type Engine struct {
	cpu *CPU_X86
	mem *GuestMemory

	PerfEnabled      bool
	InstructionCount uint64
	perfStartTime    time.Time
	lastPerfReport   time.Time

	execMu     sync.Mutex
	execDone   chan struct{}
	execActive bool
}

// NewEngine constructs an Engine over a freshly allocated guest memory
// block of the requested size.
func NewEngine(memSize uint32) *Engine {
	mem := NewGuestMemory(memSize)
	cpu := NewCPU_X86(mem)
	return &Engine{cpu: cpu, mem: mem}
}

// Memory returns the guest memory block, for the disk/image loader and
// debug memory inspection.
func (e *Engine) Memory() *GuestMemory { return e.mem }

// CPU returns the underlying decode/execute core, for the debug adapter.
func (e *Engine) CPU() *CPU_X86 { return e.cpu }

// GetAddress resolves a real-mode segment:offset pair to a flat guest
// address (seg*16+off).
func (e *Engine) GetAddress(seg, off uint16) uint32 {
	return e.cpu.GetAddress(seg, off)
}

// ReadBytes/WriteBytes give BIOS handlers bulk access to guest memory
// without going through the CPU's byte-at-a-time bus interface.
func (e *Engine) ReadBytes(addr uint32, length int) []byte    { return e.mem.ReadBytes(addr, length) }
func (e *Engine) WriteBytes(addr uint32, data []byte)         { e.mem.WriteBytes(addr, data) }

// SetInterruptHandler installs the BIOS dispatcher as the engine's
// software-interrupt hook.
func (e *Engine) SetInterruptHandler(handler func(vector byte) bool) {
	e.cpu.SetInterruptHandler(handler)
}

// LoadAt copies data into guest memory at addr, failing if it would run
// past the end of the address space - used for the one-shot boot-sector
// load, where silent wraparound would hide a configuration error.
func (e *Engine) LoadAt(addr uint32, data []byte) error {
	if err := e.mem.WriteBytesChecked(addr, data); err != nil {
		return fmt.Errorf("loading image at 0x%05X: %w", addr, err)
	}
	return nil
}

// Start begins guest execution at the given real-mode entry (CS:IP),
// running the CPU's fetch/decode/execute loop on its own goroutine until
// halted or stopped.
func (e *Engine) Start(cs, ip uint16) {
	e.cpu.CS = cs
	e.cpu.SetIP(ip)
	e.StartExecution()
}

// StartExecution launches the guest execution goroutine if it isn't
// already running.
func (e *Engine) StartExecution() {
	e.execMu.Lock()
	defer e.execMu.Unlock()
	if e.execActive {
		return
	}
	e.execActive = true
	e.cpu.SetRunning(true)
	e.cpu.Halted = false
	e.execDone = make(chan struct{})
	go func() {
		defer func() {
			e.execMu.Lock()
			e.execActive = false
			close(e.execDone)
			e.execMu.Unlock()
		}()
		e.runLoop()
	}()
}

func (e *Engine) runLoop() {
	if e.PerfEnabled {
		e.perfStartTime = time.Now()
		e.lastPerfReport = e.perfStartTime
		e.InstructionCount = 0
	}
	for e.cpu.Running() && !e.cpu.Halted {
		e.cpu.Step()
		if e.PerfEnabled {
			e.InstructionCount++
			if e.InstructionCount&0xFFFFF == 0 {
				now := time.Now()
				if now.Sub(e.lastPerfReport) >= time.Second {
					elapsed := now.Sub(e.perfStartTime).Seconds()
					mips := (float64(e.InstructionCount) / elapsed) / 1_000_000
					fmt.Printf("x86: %.2f MIPS (%.0f instructions in %.1fs)\n", mips, float64(e.InstructionCount), elapsed)
					e.lastPerfReport = now
				}
			}
		}
	}
}

// Step executes a single instruction (used by the debug console).
func (e *Engine) Step() int { return e.cpu.Step() }

// IsRunning reports whether the guest execution goroutine is active.
func (e *Engine) IsRunning() bool { return e.cpu.Running() && !e.cpu.Halted }

// Done returns a channel closed when the current execution goroutine
// exits, or an already-closed channel if none is running - used by
// Machine.Start to wait for the guest to halt on its own without polling.
func (e *Engine) Done() <-chan struct{} {
	e.execMu.Lock()
	defer e.execMu.Unlock()
	if !e.execActive {
		done := make(chan struct{})
		close(done)
		return done
	}
	return e.execDone
}

// Stop halts the CPU and blocks until the execution goroutine, if any,
// has exited.
func (e *Engine) Stop() {
	e.execMu.Lock()
	if !e.execActive {
		e.cpu.SetRunning(false)
		e.cpu.Halted = true
		e.execMu.Unlock()
		return
	}
	e.cpu.SetRunning(false)
	e.cpu.Halted = true
	done := e.execDone
	e.execMu.Unlock()
	<-done
}

// Reset reinitialises the CPU, preserving guest memory contents.
func (e *Engine) Reset() { e.cpu.Reset() }

// Halt stops the fetch/decode loop at the next instruction boundary
// without clearing the running flag the way Stop does - used by INT 18h
// ("no ROM BASIC") to end the guest without a second goroutine hop.
func (e *Engine) Halt() { e.cpu.Halted = true }

// -----------------------------------------------------------------------------
// Register/flag passthroughs consumed by the BIOS service handlers.
// -----------------------------------------------------------------------------

func (e *Engine) AX() uint16     { return e.cpu.AX() }
func (e *Engine) SetAX(v uint16) { e.cpu.SetAX(v) }
func (e *Engine) AL() byte       { return e.cpu.AL() }
func (e *Engine) SetAL(v byte)   { e.cpu.SetAL(v) }
func (e *Engine) AH() byte       { return e.cpu.AH() }
func (e *Engine) SetAH(v byte)   { e.cpu.SetAH(v) }

func (e *Engine) BX() uint16     { return e.cpu.BX() }
func (e *Engine) SetBX(v uint16) { e.cpu.SetBX(v) }
func (e *Engine) BH() byte       { return e.cpu.BH() }
func (e *Engine) SetBH(v byte)   { e.cpu.SetBH(v) }
func (e *Engine) BL() byte       { return e.cpu.BL() }
func (e *Engine) SetBL(v byte)   { e.cpu.SetBL(v) }

func (e *Engine) CX() uint16     { return e.cpu.CX() }
func (e *Engine) SetCX(v uint16) { e.cpu.SetCX(v) }
func (e *Engine) CH() byte       { return e.cpu.CH() }
func (e *Engine) SetCH(v byte)   { e.cpu.SetCH(v) }
func (e *Engine) CL() byte       { return e.cpu.CL() }
func (e *Engine) SetCL(v byte)   { e.cpu.SetCL(v) }

func (e *Engine) DX() uint16     { return e.cpu.DX() }
func (e *Engine) SetDX(v uint16) { e.cpu.SetDX(v) }
func (e *Engine) DH() byte       { return e.cpu.DH() }
func (e *Engine) SetDH(v byte)   { e.cpu.SetDH(v) }
func (e *Engine) DL() byte       { return e.cpu.DL() }
func (e *Engine) SetDL(v byte)   { e.cpu.SetDL(v) }

func (e *Engine) SI() uint16     { return e.cpu.SI() }
func (e *Engine) SetSI(v uint16) { e.cpu.SetSI(v) }
func (e *Engine) DI() uint16     { return e.cpu.DI() }
func (e *Engine) SetDI(v uint16) { e.cpu.SetDI(v) }
func (e *Engine) BP() uint16     { return e.cpu.BP() }
func (e *Engine) SetBP(v uint16) { e.cpu.SetBP(v) }

func (e *Engine) CS() uint16     { return e.cpu.CS }
func (e *Engine) SetCS(v uint16) { e.cpu.CS = v }
func (e *Engine) DS() uint16     { return e.cpu.DS }
func (e *Engine) SetDS(v uint16) { e.cpu.DS = v }
func (e *Engine) ES() uint16     { return e.cpu.ES }
func (e *Engine) SetES(v uint16) { e.cpu.ES = v }
func (e *Engine) SS() uint16     { return e.cpu.SS }
func (e *Engine) SetSS(v uint16) { e.cpu.SS = v }

// CF/SetCF expose the carry flag, the primary BIOS success/failure signal.
func (e *Engine) CF() bool     { return e.cpu.CF() }
func (e *Engine) SetCF(v bool) { e.cpu.setFlag(x86FlagCF, v) }

// ZF/SetZF expose the zero flag, used by INT 16h's AH=01h/11h peek-key
// contract (ZF=0 when a key is available).
func (e *Engine) ZF() bool     { return e.cpu.ZF() }
func (e *Engine) SetZF(v bool) { e.cpu.setFlag(x86FlagZF, v) }
