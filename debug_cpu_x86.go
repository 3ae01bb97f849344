// debug_cpu_x86.go - X86 debug adapter exposing CPU state to the debug console

package main

import (
	"strings"
	"sync"
)

// DebugX86 adapts a running Engine to the DebuggableCPU interface used by
// the debug console: register snapshots, single-stepping, address
// breakpoints and disassembly.
type DebugX86 struct {
	cpu    *CPU_X86
	engine *Engine

	bpMu        sync.RWMutex
	breakpoints map[uint64]bool
	bpChan      chan<- BreakpointEvent
	cpuID       int
}

func NewDebugX86(cpu *CPU_X86, engine *Engine) *DebugX86 {
	return &DebugX86{
		cpu:         cpu,
		engine:      engine,
		breakpoints: make(map[uint64]bool),
	}
}

func (d *DebugX86) CPUName() string   { return "X86" }
func (d *DebugX86) AddressWidth() int { return 32 }

func (d *DebugX86) GetRegisters() []RegisterInfo {
	c := d.cpu
	return []RegisterInfo{
		{Name: "EAX", BitWidth: 32, Value: uint64(c.EAX), Group: "general"},
		{Name: "EBX", BitWidth: 32, Value: uint64(c.EBX), Group: "general"},
		{Name: "ECX", BitWidth: 32, Value: uint64(c.ECX), Group: "general"},
		{Name: "EDX", BitWidth: 32, Value: uint64(c.EDX), Group: "general"},
		{Name: "ESI", BitWidth: 32, Value: uint64(c.ESI), Group: "general"},
		{Name: "EDI", BitWidth: 32, Value: uint64(c.EDI), Group: "general"},
		{Name: "EBP", BitWidth: 32, Value: uint64(c.EBP), Group: "general"},
		{Name: "ESP", BitWidth: 32, Value: uint64(c.ESP), Group: "general"},
		{Name: "EIP", BitWidth: 32, Value: uint64(c.EIP), Group: "general"},
		{Name: "EFLAGS", BitWidth: 32, Value: uint64(c.Flags), Group: "flags"},
		{Name: "CS", BitWidth: 16, Value: uint64(c.CS), Group: "segment"},
		{Name: "DS", BitWidth: 16, Value: uint64(c.DS), Group: "segment"},
		{Name: "ES", BitWidth: 16, Value: uint64(c.ES), Group: "segment"},
		{Name: "SS", BitWidth: 16, Value: uint64(c.SS), Group: "segment"},
		{Name: "FS", BitWidth: 16, Value: uint64(c.FS), Group: "segment"},
		{Name: "GS", BitWidth: 16, Value: uint64(c.GS), Group: "segment"},
	}
}

// RegisterSnapshot returns every general/segment register as a
// lowercase-keyed map, the shape BreakCondition.Eval expects, plus the
// conventional 8/16-bit sub-register aliases (ah, al, ax, ...).
func (d *DebugX86) RegisterSnapshot() map[string]uint64 {
	c := d.cpu
	return map[string]uint64{
		"eax": uint64(c.EAX), "ebx": uint64(c.EBX), "ecx": uint64(c.ECX), "edx": uint64(c.EDX),
		"esi": uint64(c.ESI), "edi": uint64(c.EDI), "ebp": uint64(c.EBP), "esp": uint64(c.ESP),
		"eip": uint64(c.EIP), "flags": uint64(c.Flags),
		"cs": uint64(c.CS), "ds": uint64(c.DS), "es": uint64(c.ES),
		"ss": uint64(c.SS), "fs": uint64(c.FS), "gs": uint64(c.GS),
		"ax": uint64(c.AX()), "bx": uint64(c.BX()), "cx": uint64(c.CX()), "dx": uint64(c.DX()),
		"ah": uint64(c.AH()), "al": uint64(c.AL()), "bh": uint64(c.BH()), "bl": uint64(c.BL()),
		"ch": uint64(c.CH()), "cl": uint64(c.CL()), "dh": uint64(c.DH()), "dl": uint64(c.DL()),
	}
}

func (d *DebugX86) GetRegister(name string) (uint64, bool) {
	c := d.cpu
	switch strings.ToUpper(name) {
	case "EAX":
		return uint64(c.EAX), true
	case "EBX":
		return uint64(c.EBX), true
	case "ECX":
		return uint64(c.ECX), true
	case "EDX":
		return uint64(c.EDX), true
	case "ESI":
		return uint64(c.ESI), true
	case "EDI":
		return uint64(c.EDI), true
	case "EBP":
		return uint64(c.EBP), true
	case "ESP":
		return uint64(c.ESP), true
	case "EIP":
		return uint64(c.EIP), true
	case "FLAGS", "EFLAGS":
		return uint64(c.Flags), true
	case "CS":
		return uint64(c.CS), true
	case "DS":
		return uint64(c.DS), true
	case "ES":
		return uint64(c.ES), true
	case "SS":
		return uint64(c.SS), true
	case "FS":
		return uint64(c.FS), true
	case "GS":
		return uint64(c.GS), true
	}
	return 0, false
}

func (d *DebugX86) SetRegister(name string, value uint64) bool {
	c := d.cpu
	switch strings.ToUpper(name) {
	case "EAX":
		c.EAX = uint32(value)
	case "EBX":
		c.EBX = uint32(value)
	case "ECX":
		c.ECX = uint32(value)
	case "EDX":
		c.EDX = uint32(value)
	case "ESI":
		c.ESI = uint32(value)
	case "EDI":
		c.EDI = uint32(value)
	case "EBP":
		c.EBP = uint32(value)
	case "ESP":
		c.ESP = uint32(value)
	case "EIP":
		c.EIP = uint32(value)
	case "FLAGS", "EFLAGS":
		c.Flags = uint32(value)
	case "CS":
		c.CS = uint16(value)
	case "DS":
		c.DS = uint16(value)
	case "ES":
		c.ES = uint16(value)
	case "SS":
		c.SS = uint16(value)
	case "FS":
		c.FS = uint16(value)
	case "GS":
		c.GS = uint16(value)
	default:
		return false
	}
	return true
}

func (d *DebugX86) GetPC() uint64     { return uint64(d.cpu.EIP) }
func (d *DebugX86) SetPC(addr uint64) { d.cpu.EIP = uint32(addr) }

func (d *DebugX86) IsRunning() bool {
	return d.cpu.Running()
}

func (d *DebugX86) Freeze() {
	d.engine.Stop()
}

func (d *DebugX86) Resume() {
	d.engine.StartExecution()
}

func (d *DebugX86) Step() int {
	return d.cpu.Step()
}

func (d *DebugX86) Disassemble(addr uint64, count int) []DisassembledLine {
	pc := uint64(d.cpu.EIP)
	lines := disassembleX86(d.ReadMemory, addr, count)
	for i := range lines {
		if lines[i].Address == pc {
			lines[i].IsPC = true
		}
	}
	return lines
}

func (d *DebugX86) SetBreakpoint(addr uint64) bool {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	d.breakpoints[addr] = true
	return true
}

func (d *DebugX86) ClearBreakpoint(addr uint64) bool {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	if _, ok := d.breakpoints[addr]; ok {
		delete(d.breakpoints, addr)
		return true
	}
	return false
}

func (d *DebugX86) ClearAllBreakpoints() {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	d.breakpoints = make(map[uint64]bool)
}

func (d *DebugX86) ListBreakpoints() []uint64 {
	d.bpMu.RLock()
	defer d.bpMu.RUnlock()
	result := make([]uint64, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		result = append(result, addr)
	}
	return result
}

func (d *DebugX86) HasBreakpoint(addr uint64) bool {
	d.bpMu.RLock()
	defer d.bpMu.RUnlock()
	return d.breakpoints[addr]
}

func (d *DebugX86) ReadMemory(addr uint64, size int) []byte {
	return d.cpu.bus.(*GuestMemory).ReadBytes(uint32(addr), size)
}

func (d *DebugX86) WriteMemory(addr uint64, data []byte) {
	d.cpu.bus.(*GuestMemory).WriteBytes(uint32(addr), data)
}

func (d *DebugX86) SetBreakpointChannel(ch chan<- BreakpointEvent, cpuID int) {
	d.bpChan = ch
	d.cpuID = cpuID
}

// reportBreak publishes a breakpoint event on the attached channel, used
// by Machine when an interrupt-vector break condition fires.
func (d *DebugX86) reportBreak(addr uint64) {
	if d.bpChan == nil {
		return
	}
	select {
	case d.bpChan <- BreakpointEvent{CPUID: d.cpuID, Address: addr}:
	default:
	}
}
