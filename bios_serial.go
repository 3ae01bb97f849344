// bios_serial.go - INT 14h serial and INT 17h printer stubs
//
// Neither device exists in this emulator; both vectors report "no
// device" status bits and discard writes, optionally echoing them to the
// debug sink for visibility.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

func handleInt14Serial(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x00: // initialize port
		e.SetAH(0x80) // timeout, no port present
	case 0x01: // send char
		if ctx.debug != nil {
			ctx.debug.Linef("int14h: serial write %s", hexByte(e.AL()))
		}
		e.SetAH(0x80)
	case 0x02: // receive char
		e.SetAH(0x80)
		e.SetAL(0)
	case 0x03: // status
		e.SetAH(0x00)
		e.SetAX(0x0000)
	default:
		e.SetAH(0x80)
	}
	biosOK(e)
}

func handleInt17Printer(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x00: // send char
		if ctx.debug != nil {
			ctx.debug.Linef("int17h: printer write %q", e.AL())
		}
		e.SetAH(0x00)
	case 0x01: // initialize
		e.SetAH(0x00)
	case 0x02: // status
		e.SetAH(0x00)
	default:
		e.SetAH(0x00)
	}
	biosOK(e)
}
