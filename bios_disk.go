// bios_disk.go - INT 13h disk services
//
// All operations target drive 0: this system emulates one
// boot floppy, not a multi-drive controller. Grounded on
// andreas-jonsson-virtualxt's disk.go for the CHS-LBA arithmetic and the
// AH=41h/42h extended-read contract.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

const (
	int13BootDrive = 0x00

	// int13ReadSectorsLegacyZero is the legacy BIOS convention this repo
	// adopts: AL=0 on AH=02h means
	// "256 sectors", not "zero sectors" / a rejection.
	int13ReadSectorsLegacyZero = 256
)

func handleInt13Disk(ctx *bioContext) {
	e := ctx.engine
	switch e.AH() {
	case 0x00:
		int13Reset(ctx)
	case 0x02:
		int13ReadCHS(ctx)
	case 0x41:
		int13CheckExtensions(ctx)
	case 0x42:
		int13ExtendedRead(ctx)
	default:
		biosUnsupported(e)
	}
}

// int13Reset is a no-op that leaves memory unchanged - no controller
// state exists to reset.
func int13Reset(ctx *bioContext) {
	biosOKZeroAH(ctx.engine)
}

func int13WrongDrive(ctx *bioContext) bool {
	if ctx.engine.DL() != int13BootDrive {
		e := ctx.engine
		biosFail(e, biosErrInvalidCommand)
		e.SetAL(0)
		return true
	}
	return false
}

// int13ReadCHS implements AH=02h.
func int13ReadCHS(ctx *bioContext) {
	e := ctx.engine
	if int13WrongDrive(ctx) {
		return
	}

	sectors := int(e.AL())
	if sectors == 0 {
		sectors = int13ReadSectorsLegacyZero
	}
	cyl := int(e.CH()) | (int(e.CL()&0xC0) << 2)
	sector := int(e.CL() & 0x3F)
	head := int(e.DH())

	if ctx.debug != nil {
		ctx.debug.Linef("int13h/02h: CHS=%d/%d/%d count=%d -> %s", cyl, head, sector, sectors, hexSegOff(e.ES(), e.BX()))
	}

	data := ctx.disk.ReadCHS(cyl, head, sector, sectors)
	if len(data) == 0 {
		biosFail(e, biosErrInvalidCommand)
		e.SetAL(0)
		return
	}

	dst := e.GetAddress(e.ES(), e.BX())
	e.WriteBytes(dst, data)
	biosOKZeroAH(e)
	e.SetAL(byte(sectors))
}

// int13CheckExtensions implements AH=41h.
func int13CheckExtensions(ctx *bioContext) {
	e := ctx.engine
	if e.BX() != 0x55AA {
		biosUnsupported(e)
		return
	}
	e.SetBX(0xAA55)
	e.SetCX(0x0007) // device access using the packet structure is supported
	biosOKZeroAH(e)
}

// int13ExtendedRead implements AH=42h.
func int13ExtendedRead(ctx *bioContext) {
	e := ctx.engine
	if int13WrongDrive(ctx) {
		return
	}

	packetAddr := e.GetAddress(e.DS(), e.SI())
	raw := e.ReadBytes(packetAddr, dapSize)
	dap := decodeDAP(raw)

	bps := uint64(ctx.disk.BPB().BytesPerSector)
	if bps == 0 {
		bps = bpbDefaultBytesPerSector
	}
	offset := dap.LBA * bps
	size := uint64(dap.NumberOfSectors) * bps

	if ctx.debug != nil {
		ctx.debug.Linef("int13h/42h: LBA=%d sectors=%d -> %s", dap.LBA, dap.NumberOfSectors, hexSegOff(dap.DestinationSeg, dap.DestinationOffset))
	}

	data := ctx.disk.ReadBytes(offset, int(size))
	if len(data) == 0 {
		biosFail(e, biosErrInvalidCommand)
		return
	}

	dst := e.GetAddress(dap.DestinationSeg, dap.DestinationOffset)
	e.WriteBytes(dst, data)
	biosOKZeroAH(e)
}
