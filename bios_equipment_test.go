// bios_equipment_test.go - INT 11h/12h equipment and memory-size tests.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

func TestInt11EquipmentList(t *testing.T) {
	ctx, e := newTestContext(nil)

	handleInt11Equipment(ctx)

	if e.CF() {
		t.Fatalf("INT 11h: CF set, want success")
	}
	ax := e.AX()
	if ax&equipFloppyPresent == 0 {
		t.Errorf("equipment list 0x%04X: floppy-present bit not set", ax)
	}
	if (ax>>4)&0x03 != 0b10 {
		t.Errorf("equipment list 0x%04X: video mode bits want 0b10 (80x25 colour)", ax)
	}
}

func TestInt12BaseMemorySize(t *testing.T) {
	ctx, e := newTestContext(nil)

	handleInt12MemorySize(ctx)

	if e.CF() {
		t.Fatalf("INT 12h: CF set, want success")
	}
	if e.AX() != 640 {
		t.Errorf("AX: got %d, want 640 (base memory in KiB)", e.AX())
	}
}

func TestInt15ExtendedMemorySize(t *testing.T) {
	ctx, e := newTestContext(nil)

	int15ExtMemSize(ctx)

	if e.CF() {
		t.Fatalf("INT 15h/88h: CF set, want success")
	}
	// 1MB guest memory means no extended memory above the 1MiB line.
	if e.AX() != 0 {
		t.Errorf("AX: got %d, want 0 for a 1MiB guest", e.AX())
	}
}

func TestInt15E820SingleUsableRegion(t *testing.T) {
	ctx, e := newTestContext(nil)

	e.SetAH(0xE8)
	e.SetAL(0x01)
	e.SetBX(0)
	e.SetES(0x1000)
	e.SetDI(0x0000)

	int15E8xx(ctx)

	if e.CF() {
		t.Fatalf("INT 15h/E820h: CF set, want success")
	}
	if e.CX() != 20 {
		t.Errorf("CX: got %d, want 20 (one E820 entry)", e.CX())
	}
	if e.BX() == 0 {
		t.Errorf("BX: got 0, want a nonzero continuation value before the final call")
	}

	entry := e.ReadBytes(e.GetAddress(0x1000, 0x0000), 20)
	if entry[16] != e820TypeUsable {
		t.Errorf("entry type: got %d, want %d (usable)", entry[16], e820TypeUsable)
	}

	// The second call, with the continuation value from the first, ends the list.
	e.SetBX(e.BX())
	int15E8xx(ctx)
	if e.BX() != 0 {
		t.Errorf("BX after final call: got %d, want 0", e.BX())
	}
}
