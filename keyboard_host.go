//go:build !windows

// keyboard_host.go - the UI/input thread's raw stdin reader (non-Windows).
//
// Reads raw stdin bytes in a goroutine and pushes translated KeyEvents
// into a KeyQueue, the single producer side of the bounded input queue
// INT 16h drains from - the same raw-terminal-reader shape used for
// feeding a line-mode input device, retargeted at INT 16h's
// scancode+ASCII queue instead.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// KeyboardHost owns the host terminal's raw mode and the goroutine that
// reads it, only instantiated by main.go for interactive (non-headless)
// runs - never in tests.
type KeyboardHost struct {
	queue        *KeyQueue
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewKeyboardHost creates a host adapter that feeds q from raw stdin.
func NewKeyboardHost(q *KeyQueue) *KeyboardHost {
	return &KeyboardHost{
		queue:  q,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading.
func (h *KeyboardHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyboard_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	if err := unix.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "keyboard_host: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := unix.Read(h.fd, buf)
			if n > 0 {
				h.route(buf[0])
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// route translates a raw terminal byte to a KeyEvent and pushes it.
func (h *KeyboardHost) route(b byte) {
	if b == '\r' {
		b = '\n'
	}
	if b == 0x7F {
		b = 0x08
	}
	h.queue.Push(KeyEvent{Scancode: asciiToScancode(b), ASCII: b})
}

// Stop terminates the reader goroutine and restores stdin.
func (h *KeyboardHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = unix.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
