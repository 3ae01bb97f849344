// keyboard_queue.go - bounded single-producer/single-consumer key-event
// queue backing INT 16h.
//
// The UI/input thread is the single producer (Push); the guest thread,
// running inside a BIOS handler, is the single consumer (WaitKey/
// PeekKey). A closed stop channel unblocks a pending WaitKey
// immediately.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"sync"
	"sync/atomic"
)

// KeyEvent is the unit carried by the queue.
type KeyEvent struct {
	Scancode byte
	ASCII    byte
}

// KeyQueue implements BiosKeyboard. A one-slot lookahead buffer gives
// PeekKey real BIOS semantics - a peeked key stays available for the
// next read - rather than being consumed by the peek itself.
type KeyQueue struct {
	events chan KeyEvent
	shift  atomic.Uint32

	mu     sync.Mutex
	peeked *KeyEvent
}

// NewKeyQueue allocates a queue with the given bounded capacity.
func NewKeyQueue(capacity int) *KeyQueue {
	if capacity <= 0 {
		capacity = 16
	}
	return &KeyQueue{events: make(chan KeyEvent, capacity)}
}

// Push enqueues a key event, dropping it if the queue is full - a slow
// guest should not be able to block the UI thread's input reader.
func (q *KeyQueue) Push(ev KeyEvent) {
	select {
	case q.events <- ev:
	default:
	}
}

// SetShiftFlags records the current modifier bitmap for AH=02h.
func (q *KeyQueue) SetShiftFlags(flags byte) {
	q.shift.Store(uint32(flags))
}

func (q *KeyQueue) ShiftFlags() byte {
	return byte(q.shift.Load())
}

// WaitKey blocks until a key is available or stop fires.
func (q *KeyQueue) WaitKey(stop <-chan struct{}) (scan, ascii byte, stopped bool) {
	q.mu.Lock()
	if q.peeked != nil {
		ev := *q.peeked
		q.peeked = nil
		q.mu.Unlock()
		return ev.Scancode, ev.ASCII, false
	}
	q.mu.Unlock()

	select {
	case ev := <-q.events:
		return ev.Scancode, ev.ASCII, false
	case <-stop:
		return 0, 0, true
	}
}

// PeekKey reports whether a key is queued without blocking, leaving it
// in place for the next WaitKey/PeekKey call.
func (q *KeyQueue) PeekKey() (scan, ascii byte, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.peeked == nil {
		select {
		case ev := <-q.events:
			q.peeked = &ev
		default:
			return 0, 0, false
		}
	}
	return q.peeked.Scancode, q.peeked.ASCII, true
}
