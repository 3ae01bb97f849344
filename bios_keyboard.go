// bios_keyboard.go - INT 16h keyboard services
//
// AH=00h/10h block the guest thread on the bounded key queue; everything
// else is non-blocking.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

func handleInt16Keyboard(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x00, 0x10:
		int16ReadKey(ctx)
	case 0x01, 0x11:
		int16PeekKey(ctx)
	case 0x02:
		int16ShiftFlags(ctx)
	default:
		biosUnsupported(e)
	}
}

// int16ReadKey blocks until the UI delivers a key or the stop sentinel
// fires. On cancellation it returns AH=0/AL=0 and lets the Engine's own
// stop flag end the run.
func int16ReadKey(ctx *bioContext) {
	e := ctx.engine
	scan, ascii, stopped := ctx.keyboard.WaitKey(ctx.stop)
	if stopped {
		e.SetAH(0)
		e.SetAL(0)
		biosOK(e)
		return
	}
	e.SetAH(scan)
	e.SetAL(ascii)
	biosOK(e)
}

// int16PeekKey implements AH=01h/11h: ZF=0 when a key is available (with
// AX already loaded), ZF=1 when the queue is empty.
func int16PeekKey(ctx *bioContext) {
	e := ctx.engine
	scan, ascii, ok := ctx.keyboard.PeekKey()
	if !ok {
		e.SetZF(true)
		biosOK(e)
		return
	}
	e.SetAH(scan)
	e.SetAL(ascii)
	e.SetZF(false)
	biosOK(e)
}

func int16ShiftFlags(ctx *bioContext) {
	e := ctx.engine
	e.SetAL(ctx.keyboard.ShiftFlags())
	biosOK(e)
}
