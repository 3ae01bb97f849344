// bios_misc.go - INT 05h print-screen, 18h ROM-BASIC, 19h bootstrap,
// 1Ah real-time clock.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "time"

func handleInt05PrintScreen(ctx *bioContext) {
	ctx.video.PrintScreen()
	biosOKZeroAH(ctx.engine)
}

// handleInt18RomBasic emulates the classic "no ROM BASIC" failure: real
// BIOSes fell into INT 18h when no bootable disk was found and there was
// no BASIC ROM to fall back to. This emulator has nothing further to run
// either, so it halts the guest with a diagnostic rather than looping.
func handleInt18RomBasic(ctx *bioContext) {
	if ctx.debug != nil {
		ctx.debug.Linef("int18h: no ROM BASIC - halting")
	}
	ctx.engine.Halt()
	biosOKZeroAH(ctx.engine)
}

// handleInt19Bootstrap performs a warm reboot: reload sector 0 to 0x7C00
// and jump there, via the Machine-provided reload hook rather than any
// process-level reset.
func handleInt19Bootstrap(ctx *bioContext) {
	if ctx.reboot != nil {
		ctx.reboot()
	}
	biosOKZeroAH(ctx.engine)
}

const (
	rtcTicksPerSecond = 18.2065 // 54.9254 ms per tick, the legacy INT 1Ah tick rate
)

func handleInt1ARTC(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x00:
		int1AReadTickCount(ctx)
	case 0x02:
		int1AReadTime(ctx)
	case 0x04:
		int1AReadDate(ctx)
	default:
		biosUnsupported(e)
	}
}

func int1AReadTickCount(ctx *bioContext) {
	e := ctx.engine
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(midnight).Seconds()
	ticks := uint32(elapsed * rtcTicksPerSecond)

	e.SetCX(uint16(ticks >> 16))
	e.SetDX(uint16(ticks))
	e.SetAL(0) // no midnight rollover tracked across calls
	biosOK(e)
}

func toBCD(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

func int1AReadTime(ctx *bioContext) {
	e := ctx.engine
	now := time.Now()
	e.SetCH(toBCD(now.Hour()))
	e.SetCL(toBCD(now.Minute()))
	e.SetDH(toBCD(now.Second()))
	e.SetDL(0) // daylight-savings flag, unused
	biosOK(e)
}

func int1AReadDate(ctx *bioContext) {
	e := ctx.engine
	now := time.Now()
	e.SetCH(toBCD(now.Year() / 100))
	e.SetCL(toBCD(now.Year() % 100))
	e.SetDH(toBCD(int(now.Month())))
	e.SetDL(toBCD(now.Day()))
	biosOK(e)
}
