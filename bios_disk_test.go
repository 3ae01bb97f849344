// bios_disk_test.go - INT 13h disk service tests.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

// fakeVideo/fakeKeyboard let tests build a bioContext without the real
// UI/keyboard collaborators.
type fakeVideo struct{}

func (fakeVideo) SetMode(byte)                                         {}
func (fakeVideo) Mode() byte                                           { return 0x03 }
func (fakeVideo) SetCursorShape(byte, byte)                            {}
func (fakeVideo) CursorShape() (byte, byte)                            { return 0, 7 }
func (fakeVideo) SetCursor(int, int, int)                              {}
func (fakeVideo) Cursor(int) (int, int)                                { return 0, 0 }
func (fakeVideo) SetActivePage(int)                                    {}
func (fakeVideo) ActivePage() int                                      { return 0 }
func (fakeVideo) ScrollUp(int, byte, int, int, int, int)               {}
func (fakeVideo) ScrollDown(int, byte, int, int, int, int)             {}
func (fakeVideo) ReadCell(int, int, int) (byte, byte)                  { return ' ', 0x07 }
func (fakeVideo) WriteCell(int, int, int, byte, byte)                  {}
func (fakeVideo) Teletype(int, byte, byte, bool)                       {}
func (fakeVideo) WriteString(int, int, int, []byte, byte, bool, bool)  {}
func (fakeVideo) PrintScreen()                                         {}
func (fakeVideo) Dimensions() (int, int)                               { return 80, 25 }

type fakeKeyboard struct{}

func (fakeKeyboard) WaitKey(<-chan struct{}) (byte, byte, bool) { return 0, 0, false }
func (fakeKeyboard) PeekKey() (byte, byte, bool)                { return 0, 0, false }
func (fakeKeyboard) ShiftFlags() byte                           { return 0 }

// newTestDiskImage builds an in-memory floppy image of the given size with
// a valid 0x55AA boot signature and a minimal BPB describing 512-byte
// sectors, 18 sectors/track, 2 heads - the classic 1.44MB geometry.
func newTestDiskImage(sizeBytes int) *DiskImage {
	data := make([]byte, sizeBytes)
	for i := 2; i < sizeBytes && i < 1024; i++ {
		data[i] = byte(i) // distinguishable payload, overwritten below at BPB/signature offsets
	}
	// bytes per sector = 512 at offset 0x0B
	data[0x0B] = 0x00
	data[0x0C] = 0x02
	// sectors per track = 18 at 0x18
	data[0x18] = 18
	data[0x19] = 0
	// number of heads = 2 at 0x1A
	data[0x1A] = 2
	data[0x1B] = 0
	data[0x1FE] = 0x55
	data[0x1FF] = 0xAA
	return &DiskImage{data: data, bpb: decodeBPB(data[:512])}
}

func newTestContext(disk *DiskImage) (*bioContext, *Engine) {
	engine := NewEngine(1 << 20)
	ctx := &bioContext{
		engine:   engine,
		disk:     disk,
		video:    fakeVideo{},
		keyboard: fakeKeyboard{},
		stop:     make(chan struct{}),
	}
	return ctx, engine
}

func TestInt13ReadCHS(t *testing.T) {
	disk := newTestDiskImage(1474560) // standard 1.44MB floppy size
	ctx, e := newTestContext(disk)

	e.SetDL(0x00)
	e.SetAL(1) // one sector
	e.SetCH(0)
	e.SetCL(1) // sector 1 (1-based)
	e.SetDH(0)
	e.SetES(0x0000)
	e.SetBX(0x0600)

	int13ReadCHS(ctx)

	if e.CF() {
		t.Fatalf("int13ReadCHS: CF set, want success")
	}
	if e.AL() != 1 {
		t.Errorf("AL: got %d, want 1 sector transferred", e.AL())
	}
	got := e.ReadBytes(0x0600, 4)
	want := disk.ReadCHS(0, 0, 1, 1)[:4]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestInt13ReadCHSWrongDrive(t *testing.T) {
	disk := newTestDiskImage(1474560)
	ctx, e := newTestContext(disk)

	e.SetDL(0x01) // not drive 0
	e.SetAL(1)
	e.SetCL(1)

	int13ReadCHS(ctx)

	if !e.CF() {
		t.Fatalf("int13ReadCHS: CF clear, want failure for wrong drive")
	}
	if e.AH() != biosErrInvalidCommand {
		t.Errorf("AH: got 0x%02X, want 0x%02X", e.AH(), biosErrInvalidCommand)
	}
}

func TestInt13ReadCHSZeroMeans256Sectors(t *testing.T) {
	disk := newTestDiskImage(20 * 1024 * 1024) // large enough for 256 sectors
	ctx, e := newTestContext(disk)

	e.SetDL(0x00)
	e.SetAL(0) // legacy "256 sectors" convention
	e.SetCH(0)
	e.SetCL(1)
	e.SetDH(0)
	e.SetES(0x1000)
	e.SetBX(0x0000)

	int13ReadCHS(ctx)

	if e.CF() {
		t.Fatalf("int13ReadCHS: CF set, want success")
	}
	if e.AL() != 0 {
		t.Errorf("AL: got %d, want 0 (256 mod 256)", e.AL())
	}
}

func TestInt13ExtendedRead(t *testing.T) {
	disk := newTestDiskImage(1474560)
	ctx, e := newTestContext(disk)

	// Build a DAP in guest memory at DS:SI.
	e.SetDS(0x0000)
	e.SetSI(0x1000)
	dap := make([]byte, dapSize)
	dap[0] = 16    // size of packet
	dap[2] = 2     // number of sectors (little-endian u16)
	dap[4] = 0x00  // destination offset
	dap[5] = 0x06  //  = 0x0600
	dap[6] = 0x00  // destination segment
	dap[7] = 0x00
	dap[8] = 0 // LBA = 0 (u64, little-endian, rest zero)
	e.WriteBytes(e.GetAddress(0x0000, 0x1000), dap)

	e.SetDL(0x00)

	int13ExtendedRead(ctx)

	if e.CF() {
		t.Fatalf("int13ExtendedRead: CF set, want success")
	}
	got := e.ReadBytes(0x0600, 4)
	want := disk.ReadBytes(0, 4)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestInt13CheckExtensions(t *testing.T) {
	disk := newTestDiskImage(1474560)
	ctx, e := newTestContext(disk)

	e.SetBX(0x55AA)
	int13CheckExtensions(ctx)

	if e.CF() {
		t.Fatalf("int13CheckExtensions: CF set, want success")
	}
	if e.BX() != 0xAA55 {
		t.Errorf("BX: got 0x%04X, want 0xAA55", e.BX())
	}
}

func TestInt13ReadOutOfRangeFails(t *testing.T) {
	disk := newTestDiskImage(1474560)
	ctx, e := newTestContext(disk)

	e.SetDL(0x00)
	e.SetAL(1)
	e.SetCH(0xFF)
	e.SetCL(0xFF)
	e.SetDH(0xFF)

	int13ReadCHS(ctx)

	if !e.CF() {
		t.Fatalf("int13ReadCHS: CF clear, want failure for an out-of-range read")
	}
}
