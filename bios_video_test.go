// bios_video_test.go - INT 10h video service tests.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

func newTestVideoContext() (*bioContext, *Engine, *TextScreen) {
	engine := NewEngine(1 << 20)
	screen := NewTextScreen()
	ctx := &bioContext{
		engine:   engine,
		video:    screen,
		keyboard: fakeKeyboard{},
		stop:     make(chan struct{}),
	}
	return ctx, engine, screen
}

func TestInt10Teletype(t *testing.T) {
	ctx, e, screen := newTestVideoContext()

	e.SetBH(0)
	e.SetAL('A')
	e.SetBL(0x0F)
	int10Teletype(ctx)

	ch, _ := screen.ReadCell(0, 0, 0)
	if ch != 'A' {
		t.Fatalf("ReadCell: got %q, want 'A'", ch)
	}
	row, col := screen.Cursor(0)
	if row != 0 || col != 1 {
		t.Errorf("cursor after teletype: got (%d,%d), want (0,1)", row, col)
	}
}

func TestInt10TeletypeScrollsAtBottom(t *testing.T) {
	ctx, e, screen := newTestVideoContext()
	screen.SetCursor(0, 24, 79)

	screen.WriteCell(0, 0, 0, 'X', 0x07)
	e.SetBH(0)
	e.SetAL('\n')
	int10Teletype(ctx)

	row, _ := screen.Cursor(0)
	if row != 24 {
		t.Errorf("cursor row after bottom-of-screen scroll: got %d, want 24", row)
	}
	ch, _ := screen.ReadCell(0, 0, 0)
	if ch != ' ' {
		t.Errorf("row 0 after scroll: got %q, want blank (content scrolled off)", ch)
	}
}

func TestInt10SetGetCursorPos(t *testing.T) {
	ctx, e, _ := newTestVideoContext()

	e.SetBH(0)
	e.SetDH(5)
	e.SetDL(10)
	int10SetCursorPos(ctx)

	e.SetBH(0)
	int10GetCursorPos(ctx)

	if e.DH() != 5 || e.DL() != 10 {
		t.Errorf("got row/col (%d,%d), want (5,10)", e.DH(), e.DL())
	}
}

func TestInt10WriteCharAttrPreservesCountAndAttribute(t *testing.T) {
	ctx, e, screen := newTestVideoContext()

	e.SetBH(0)
	screen.SetCursor(0, 2, 2)
	e.SetAL('Z')
	e.SetBL(0x4F)
	e.SetCX(3)
	int10WriteCharAttr(ctx)

	for col := 2; col < 5; col++ {
		ch, attr := screen.ReadCell(0, 2, col)
		if ch != 'Z' || attr != 0x4F {
			t.Errorf("cell (2,%d): got (%q,0x%02X), want ('Z',0x4F)", col, ch, attr)
		}
	}
}

func TestInt10WriteCharOnlyKeepsExistingAttribute(t *testing.T) {
	ctx, e, screen := newTestVideoContext()

	screen.WriteCell(0, 1, 1, ' ', 0x2C)
	e.SetBH(0)
	screen.SetCursor(0, 1, 1)
	e.SetAL('Q')
	e.SetBL(0xFF) // must be ignored: AH=0Ah does not set attribute
	e.SetCX(1)
	int10WriteCharOnly(ctx)

	ch, attr := screen.ReadCell(0, 1, 1)
	if ch != 'Q' {
		t.Errorf("char: got %q, want 'Q'", ch)
	}
	if attr != 0x2C {
		t.Errorf("attr: got 0x%02X, want preserved 0x2C", attr)
	}
}

func TestInt10UnsupportedSubfunction(t *testing.T) {
	ctx, e, _ := newTestVideoContext()

	e.SetAH(0x99)
	handleInt10Video(ctx)

	if !e.CF() {
		t.Fatalf("unsupported AH: CF clear, want failure")
	}
	if e.AH() != biosErrFunctionNotSupported {
		t.Errorf("AH: got 0x%02X, want 0x%02X", e.AH(), biosErrFunctionNotSupported)
	}
}

func TestInt10VesaStubReportsUnsupported(t *testing.T) {
	ctx, e, _ := newTestVideoContext()

	e.SetAH(0x4F)
	e.SetAL(0x00)
	int10VesaStub(ctx)

	if !e.CF() {
		t.Fatalf("VESA stub: CF clear, want failure")
	}
}
