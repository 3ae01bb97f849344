// bios_system.go - INT 15h system services
//
// Covers A20 gate control, extended memory size, and the E820-style
// memory map iteration. Real protected-mode paging support is out of
// scope; these subfunctions only report state back to the guest, they
// never actually gate A20 or enter protected mode.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

const (
	int15A20StatusDisabled = 0x00
	int15A20StatusEnabled  = 0x01

	e820TypeUsable = 1
)

func handleInt15System(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x24:
		int15A20Gate(ctx)
	case 0x88:
		int15ExtMemSize(ctx)
	case 0x8A:
		int15ExtMemSize32(ctx)
	case 0xE8:
		int15E8xx(ctx)
	default:
		biosUnsupported(e)
	}
}

func int15A20Gate(ctx *bioContext) {
	e := ctx.engine
	switch e.AL() {
	case 0x00, 0x01: // disable / enable
		e.SetAH(0)
		biosOK(e)
	case 0x02: // query status
		e.SetAH(0)
		e.SetAL(int15A20StatusEnabled)
		biosOK(e)
	case 0x03: // query support
		e.SetAH(0)
		e.SetBX(0x0003) // supported via keyboard controller and port 0x92
		biosOK(e)
	default:
		biosUnsupported(e)
	}
}

// int15ExtMemSize implements AH=88h: extended memory above 1 MiB, in
// KiB, capped at 0xFFFF per the legacy AH=88h contract (callers wanting
// more use AH=E8h/AX=E801h or the AH=E8h/AL=01h map below).
func int15ExtMemSize(ctx *bioContext) {
	e := ctx.engine
	kb := extendedMemoryKB(ctx.engine.Memory().Size())
	if kb > 0xFFFF {
		kb = 0xFFFF
	}
	e.SetAX(uint16(kb))
	biosOK(e)
}

func int15ExtMemSize32(ctx *bioContext) {
	int15ExtMemSize(ctx)
}

func extendedMemoryKB(totalBytes uint32) uint32 {
	const oneMiB = 1 << 20
	if totalBytes <= oneMiB {
		return 0
	}
	return (totalBytes - oneMiB) / 1024
}

// int15E8xx implements AH=E8h; only AL=01h (the memory-map query,
// "E820") is modelled. A static single-region table describing all
// configured RAM as one "usable" entry is returned one entry per call,
// driven by the continuation value in EBX.
func int15E8xx(ctx *bioContext) {
	e := ctx.engine
	if e.AL() != 0x01 {
		biosFail(e, biosErrFunctionNotSupported)
		return
	}

	cont := e.BX()
	switch cont {
	case 1:
		// Second call, continuing the one-entry table: no more entries.
		e.SetBX(0)
		biosOK(e)
		return
	case 0:
		// First call: fall through to return the sole usable-RAM entry.
	default:
		// Any other continuation value names no entry this table ever handed out.
		biosFail(e, biosErrInvalidCommand)
		return
	}

	entry := make([]byte, 20)
	// base address (8 bytes, little-endian) = 0
	// length (8 bytes) = total guest memory
	length := uint64(ctx.engine.Memory().Size())
	for i := 0; i < 8; i++ {
		entry[8+i] = byte(length >> (8 * i))
	}
	entry[16] = e820TypeUsable

	dst := e.GetAddress(e.ES(), e.DI())
	e.WriteBytes(dst, entry)

	e.SetCX(20)
	e.SetBX(1) // nonzero continuation: one more call will end the list
	biosOK(e)
}
