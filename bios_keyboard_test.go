// bios_keyboard_test.go - INT 16h keyboard service and KeyQueue tests.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"testing"
	"time"
)

func newTestKeyboardContext(q *KeyQueue) (*bioContext, *Engine) {
	engine := NewEngine(1 << 20)
	ctx := &bioContext{
		engine:   engine,
		video:    fakeVideo{},
		keyboard: q,
		stop:     make(chan struct{}),
	}
	return ctx, engine
}

func TestKeyQueuePeekDoesNotConsume(t *testing.T) {
	q := NewKeyQueue(4)
	q.Push(KeyEvent{Scancode: 0x1E, ASCII: 'a'})

	scan, ascii, ok := q.PeekKey()
	if !ok || scan != 0x1E || ascii != 'a' {
		t.Fatalf("first peek: got (%v,0x%02X,%q), want (true,0x1E,'a')", ok, scan, ascii)
	}

	// A second peek must see the same key, not an empty queue.
	scan, ascii, ok = q.PeekKey()
	if !ok || scan != 0x1E || ascii != 'a' {
		t.Fatalf("second peek: got (%v,0x%02X,%q), want the same key still queued", ok, scan, ascii)
	}

	stop := make(chan struct{})
	gotScan, gotAscii, stopped := q.WaitKey(stop)
	if stopped || gotScan != 0x1E || gotAscii != 'a' {
		t.Fatalf("WaitKey after peek: got (0x%02X,%q,%v), want the peeked key consumed", gotScan, gotAscii, stopped)
	}

	if _, _, ok := q.PeekKey(); ok {
		t.Fatalf("PeekKey after consuming: queue should be empty")
	}
}

func TestKeyQueueWaitKeyStops(t *testing.T) {
	q := NewKeyQueue(4)
	stop := make(chan struct{})
	close(stop)

	_, _, stopped := q.WaitKey(stop)
	if !stopped {
		t.Fatalf("WaitKey on a closed stop channel: got stopped=false, want true")
	}
}

func TestInt16ReadKeyBlocksUntilPush(t *testing.T) {
	q := NewKeyQueue(4)
	ctx, e := newTestKeyboardContext(q)
	e.SetAH(0x00)

	done := make(chan struct{})
	go func() {
		handleInt16Keyboard(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatalf("handleInt16Keyboard returned before a key was pushed")
	default:
	}

	q.Push(KeyEvent{Scancode: 0x1C, ASCII: '\r'})
	<-done

	if e.AH() != 0x1C || e.AL() != '\r' {
		t.Errorf("got AH=0x%02X AL=%q, want AH=0x1C AL='\\r'", e.AH(), e.AL())
	}
}

func TestInt16PeekKeyEmptySetsZF(t *testing.T) {
	q := NewKeyQueue(4)
	ctx, e := newTestKeyboardContext(q)
	e.SetAH(0x01)

	handleInt16Keyboard(ctx)

	if e.CF() {
		t.Fatalf("int16PeekKey on empty queue: CF set, want success with ZF=1")
	}
	if !e.ZF() {
		t.Errorf("ZF: got false, want true (queue empty)")
	}
}

func TestInt16PeekKeyAvailableClearsZF(t *testing.T) {
	q := NewKeyQueue(4)
	q.Push(KeyEvent{Scancode: 0x1E, ASCII: 'a'})
	ctx, e := newTestKeyboardContext(q)
	e.SetAH(0x01)

	handleInt16Keyboard(ctx)

	if e.CF() {
		t.Fatalf("int16PeekKey with a queued key: CF set, want success")
	}
	if e.ZF() {
		t.Errorf("ZF: got true, want false (key available)")
	}
	if e.AH() != 0x1E || e.AL() != 'a' {
		t.Errorf("got AH=0x%02X AL=%q, want AH=0x1E AL='a'", e.AH(), e.AL())
	}
}

func TestInt16ShiftFlags(t *testing.T) {
	q := NewKeyQueue(4)
	q.SetShiftFlags(0x05)
	ctx, e := newTestKeyboardContext(q)
	e.SetAH(0x02)

	handleInt16Keyboard(ctx)

	if e.AL() != 0x05 {
		t.Errorf("AL: got 0x%02X, want 0x05", e.AL())
	}
}
