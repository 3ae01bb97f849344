// bios_equipment.go - INT 11h equipment list and INT 12h base memory size
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// Equipment list bits: diskette drive present (bit 0),
// 80x25 colour text (bits 4-5 = 10b), one serial port, one parallel
// port, no math coprocessor.
const (
	equipFloppyPresent  = 1 << 0
	equip80x25ColorText = 0b10 << 4
	equipOneSerialPort  = 1 << 9
	equipOneParallel    = 1 << 14

	baseMemoryKB = 640
)

func handleInt11Equipment(ctx *bioContext) {
	e := ctx.engine
	e.SetAX(equipFloppyPresent | equip80x25ColorText | equipOneSerialPort | equipOneParallel)
	biosOK(e)
}

func handleInt12MemorySize(ctx *bioContext) {
	e := ctx.engine
	e.SetAX(baseMemoryKB)
	biosOK(e)
}
