// bios_video.go - INT 10h video services
//
// Subfunctions mutate ctx.video (a TextScreen in the running program,
// a fake in tests); the dispatch-by-AH table keeps each subfunction a
// short, independent closure rather than one long switch.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

var int10Table subFuncTable

func init() {
	int10Table = subFuncTable{
		0x00: int10SetMode,
		0x01: int10SetCursorShape,
		0x02: int10SetCursorPos,
		0x03: int10GetCursorPos,
		0x05: int10SelectPage,
		0x06: int10ScrollUp,
		0x07: int10ScrollDown,
		0x08: int10ReadCharAttr,
		0x09: int10WriteCharAttr,
		0x0A: int10WriteCharOnly,
		0x0E: int10Teletype,
		0x0F: int10GetMode,
		0x12: int10EGAInfo,
		0x13: int10WriteString,
		0x4F: int10VesaStub,
	}
}

func handleInt10Video(ctx *bioContext) {
	int10Table.dispatch(ctx)
}

func int10SetMode(ctx *bioContext) {
	ctx.video.SetMode(ctx.engine.AL())
	biosOK(ctx.engine)
}

func int10SetCursorShape(ctx *bioContext) {
	ctx.video.SetCursorShape(ctx.engine.CH(), ctx.engine.CL())
	biosOK(ctx.engine)
}

func int10SetCursorPos(ctx *bioContext) {
	e := ctx.engine
	ctx.video.SetCursor(int(e.BH()), int(e.DH()), int(e.DL()))
	biosOK(e)
}

func int10GetCursorPos(ctx *bioContext) {
	e := ctx.engine
	row, col := ctx.video.Cursor(int(e.BH()))
	start, end := ctx.video.CursorShape()
	e.SetDH(byte(row))
	e.SetDL(byte(col))
	e.SetCH(start)
	e.SetCL(end)
	biosOK(e)
}

func int10SelectPage(ctx *bioContext) {
	ctx.video.SetActivePage(int(ctx.engine.AL()))
	biosOK(ctx.engine)
}

func int10ScrollUp(ctx *bioContext) {
	e := ctx.engine
	ctx.video.ScrollUp(int(e.AL()), e.BH(), int(e.CH()), int(e.CL()), int(e.DH()), int(e.DL()))
	biosOK(e)
}

func int10ScrollDown(ctx *bioContext) {
	e := ctx.engine
	ctx.video.ScrollDown(int(e.AL()), e.BH(), int(e.CH()), int(e.CL()), int(e.DH()), int(e.DL()))
	biosOK(e)
}

func int10ReadCharAttr(ctx *bioContext) {
	e := ctx.engine
	row, col := ctx.video.Cursor(int(e.BH()))
	ch, attr := ctx.video.ReadCell(int(e.BH()), row, col)
	e.SetAL(ch)
	e.SetAH(attr)
	biosOK(e)
}

func int10WriteCharAttr(ctx *bioContext) {
	int10WriteRepeated(ctx, true)
}

func int10WriteCharOnly(ctx *bioContext) {
	int10WriteRepeated(ctx, false)
}

func int10WriteRepeated(ctx *bioContext, useAttr bool) {
	e := ctx.engine
	page := int(e.BH())
	row, col := ctx.video.Cursor(page)
	count := int(e.CX())
	for i := 0; i < count; i++ {
		attr := e.BL()
		if !useAttr {
			_, attr = ctx.video.ReadCell(page, row, col+i)
		}
		ctx.video.WriteCell(page, row, col+i, e.AL(), attr)
	}
	biosOK(e)
}

func int10Teletype(ctx *bioContext) {
	e := ctx.engine
	page := int(e.BH())
	ctx.video.Teletype(page, e.AL(), e.BL(), false)
	biosOK(e)
}

func int10GetMode(ctx *bioContext) {
	e := ctx.engine
	cols, _ := ctx.video.Dimensions()
	e.SetAL(ctx.video.Mode())
	e.SetAH(byte(cols))
	e.SetBH(byte(ctx.video.ActivePage()))
	biosOK(e)
}

func int10EGAInfo(ctx *bioContext) {
	e := ctx.engine
	if e.BL() != 0x10 {
		biosUnsupported(e)
		return
	}
	// Sane defaults for "get EGA info": colour display, 64KiB EGA memory
	// installed, feature bits clear.
	e.SetBH(0x00)
	e.SetBL(0x03)
	e.SetCX(0x0000)
	biosOK(e)
}

func int10WriteString(ctx *bioContext) {
	e := ctx.engine
	page := int(e.BH())
	addr := e.GetAddress(e.ES(), e.BP())
	s := e.ReadBytes(addr, int(e.CX()))
	row, col := int(e.DH()), int(e.DL())
	ctx.video.WriteString(page, row, col, s, e.BL(), true, true)
	biosOK(e)
}

// int10VesaStub answers AH=4Fh (VESA/VBE) with "function not supported"
// for every sub-call, instead of crashing: a guest that probes for a
// linear framebuffer mode before falling back to text mode gets a clean
// refusal rather than undefined behaviour. VBE's own convention is
// backwards from every other INT 10h subfunction: AL carries the "call
// recognised" marker (4Fh) and AH carries the status code, so biosFail
// (which writes AH) is used directly rather than through biosUnsupported.
func int10VesaStub(ctx *bioContext) {
	e := ctx.engine
	e.SetAL(0x4F)
	biosFail(e, 0x01) // AH=01h: function call failed
}
