// bios_dispatcher.go - BIOS Service Dispatcher
//
// A single callback registered with the Engine as its interrupt hook;
// inspects the vector and routes to the matching per-vector handler.
// Returns false for anything it doesn't recognise, so the engine falls
// back to its normal IVT push+jump.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// BiosVideo is the subset of display state the INT 10h handlers mutate:
// cursor position/shape, active page, video mode, and the character+
// attribute cell grid itself. Implemented by TextScreen.
type BiosVideo interface {
	SetMode(mode byte)
	Mode() byte
	SetCursorShape(start, end byte)
	CursorShape() (start, end byte)
	SetCursor(page int, row, col int)
	Cursor(page int) (row, col int)
	SetActivePage(page int)
	ActivePage() int
	ScrollUp(lines int, attr byte, top, left, bottom, right int)
	ScrollDown(lines int, attr byte, top, left, bottom, right int)
	ReadCell(page, row, col int) (ch, attr byte)
	WriteCell(page, row, col int, ch, attr byte)
	Teletype(page int, ch byte, attr byte, useAttr bool)
	WriteString(page, row, col int, s []byte, attr byte, useAttr, advanceCursor bool)
	PrintScreen()
	Dimensions() (cols, rows int)
}

// BiosKeyboard is the subset of keyboard state the INT 16h handlers
// consume: a bounded, blocking/peekable scancode+ASCII queue and the
// current shift-state bitmap. Implemented by KeyboardHost.
type BiosKeyboard interface {
	WaitKey(stop <-chan struct{}) (scan, ascii byte, stopped bool)
	PeekKey() (scan, ascii byte, ok bool)
	ShiftFlags() byte
}

// bioContext is the explicit context value every handler closure receives:
// the Engine (registers/flags/memory), the DiskImage (for INT 13h), and the
// UI collaborators (video/keyboard), plus a reboot hook for INT 19h's warm
// restart. This avoids a back-pointer cycle between Machine and the
// dispatcher.
type bioContext struct {
	engine   *Engine
	disk     *DiskImage
	video    BiosVideo
	keyboard BiosKeyboard
	debug    *DebugSink
	stop     <-chan struct{}
	reboot   func()
}

// BiosDispatcher is the Machine's interrupt hook: one table entry per
// recognised vector, each entry itself a table of AH sub-function
// handlers.
type BiosDispatcher struct {
	ctx      *bioContext
	handlers map[byte]func(ctx *bioContext)

	debugCPU *DebugX86
	breaks   []*BreakCondition
}

// NewBiosDispatcher builds the vector table and binds it to ctx.
func NewBiosDispatcher(ctx *bioContext) *BiosDispatcher {
	d := &BiosDispatcher{ctx: ctx}
	d.handlers = map[byte]func(ctx *bioContext){
		0x05: handleInt05PrintScreen,
		0x10: handleInt10Video,
		0x11: handleInt11Equipment,
		0x12: handleInt12MemorySize,
		0x13: handleInt13Disk,
		0x14: handleInt14Serial,
		0x15: handleInt15System,
		0x16: handleInt16Keyboard,
		0x17: handleInt17Printer,
		0x18: handleInt18RomBasic,
		0x19: handleInt19Bootstrap,
		0x1A: handleInt1ARTC,
	}
	return d
}

// biosVectorNames names the service each recognised vector provides, used
// by the disassembler to annotate INT instructions in debug console
// listings rather than leaving the reader to look up 0xCD 0x13 by hand.
var biosVectorNames = map[byte]string{
	0x05: "print screen",
	0x10: "video services",
	0x11: "equipment list",
	0x12: "base memory size",
	0x13: "disk services",
	0x14: "serial port services",
	0x15: "system services",
	0x16: "keyboard services",
	0x17: "printer services",
	0x18: "no ROM BASIC",
	0x19: "bootstrap loader",
	0x1A: "real-time clock services",
}

// biosVectorName looks up the service name for vector, or "" if it isn't
// one of the recognised vectors this dispatcher services.
func biosVectorName(vector byte) string {
	return biosVectorNames[vector]
}

// SetBreakConditions installs the -break expressions evaluated before every
// dispatched interrupt, along with the register-snapshot source they run
// against.
func (d *BiosDispatcher) SetBreakConditions(cpu *DebugX86, conds []*BreakCondition) {
	d.debugCPU = cpu
	d.breaks = conds
}

// checkBreaks evaluates every installed break condition against the current
// register state and dumps a snapshot to the debug sink on a match - a
// trace point, not an interactive halt.
func (d *BiosDispatcher) checkBreaks(vector byte) {
	if len(d.breaks) == 0 || d.debugCPU == nil || d.ctx.debug == nil {
		return
	}
	regs := d.debugCPU.RegisterSnapshot()
	for _, cond := range d.breaks {
		hit, err := cond.Eval(vector, regs)
		if err != nil {
			d.ctx.debug.Linef("break %q: %v", cond, err)
			continue
		}
		if hit {
			d.ctx.debug.Linef("break %q hit at int %02Xh: ax=%s bx=%s cx=%s dx=%s cs:ip=%s",
				cond, hexByte(vector), hexWord(uint16(regs["ax"])), hexWord(uint16(regs["bx"])),
				hexWord(uint16(regs["cx"])), hexWord(uint16(regs["dx"])), hexSegOff(uint16(regs["cs"]), uint16(regs["eip"])))
		}
	}
}

// Dispatch is installed via Engine.SetInterruptHandler. It returns true
// when the vector was serviced (recognised), false otherwise - the engine
// then surfaces the interrupt as unhandled.
func (d *BiosDispatcher) Dispatch(vector byte) bool {
	handler, ok := d.handlers[vector]
	if !ok {
		return false
	}
	d.checkBreaks(vector)
	handler(d.ctx)
	return true
}
