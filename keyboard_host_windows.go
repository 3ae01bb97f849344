// keyboard_host_windows.go - the UI/input thread's raw stdin reader
// (Windows). See keyboard_host.go for the non-Windows variant; the
// filename suffix alone restricts this file to GOOS=windows builds.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// KeyboardHost owns the host terminal's raw mode and the goroutine that
// reads it, only instantiated by main.go for interactive runs.
type KeyboardHost struct {
	queue        *KeyQueue
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
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

// Start puts stdin into raw mode and begins reading.
func (h *KeyboardHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyboard_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				h.route(buf[0])
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

func (h *KeyboardHost) route(b byte) {
	if b == '\r' {
		b = '\n'
	}
	if b == 0x7F {
		b = 0x08
	}
	h.queue.Push(KeyEvent{Scancode: asciiToScancode(b), ASCII: b})
}

// Stop terminates the reader goroutine and restores terminal state.
func (h *KeyboardHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
