//go:build !headless

// ui_ebiten.go - the UI thread: renders the 80x25 text screen and feeds
// host keystrokes into the INT 16h key queue.
//
// Same window lifecycle calls, same AppendInputChars/inpututil special-
// key handling, same Ctrl+Shift+V clipboard-paste convenience found
// throughout ebiten host UIs - driven against a fixed character+
// attribute grid instead of an RGBA framebuffer, since BIOS text mode
// has no pixels to push.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	glyphW = 8
	glyphH = 13
)

// cgaPalette is the standard 16-colour CGA/EGA text palette; attribute
// bits 0-3 select foreground, 4-6 select background (bit 7 is blink,
// ignored here).
var cgaPalette = [16]color.RGBA{
	{0, 0, 0, 255}, {0, 0, 170, 255}, {0, 170, 0, 255}, {0, 170, 170, 255},
	{170, 0, 0, 255}, {170, 0, 170, 255}, {170, 85, 0, 255}, {170, 170, 170, 255},
	{85, 85, 85, 255}, {85, 85, 255, 255}, {85, 255, 85, 255}, {85, 255, 255, 255},
	{255, 85, 85, 255}, {255, 85, 255, 255}, {255, 255, 85, 255}, {255, 255, 255, 255},
}

// UIEbiten is the ebiten.Game driving the display.
type UIEbiten struct {
	screen *TextScreen
	queue  *KeyQueue
	stopFn func()

	clipboardOnce bool
	clipboardOK   bool

	closed bool
}

// NewUIEbiten constructs the UI thread over the given text screen and
// key queue; stopFn is invoked once when the window is closed.
func NewUIEbiten(screen *TextScreen, queue *KeyQueue, stopFn func()) *UIEbiten {
	return &UIEbiten{screen: screen, queue: queue, stopFn: stopFn}
}

// Run opens the window and blocks until it is closed.
func (u *UIEbiten) Run() error {
	cols, rows := u.screen.Dimensions()
	ebiten.SetWindowSize(cols*glyphW, rows*glyphH)
	ebiten.SetWindowTitle("BIOS")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(u)
}

func (u *UIEbiten) Update() error {
	if ebiten.IsWindowBeingClosed() {
		u.close()
		return ebiten.Termination
	}
	u.handleInput()
	return nil
}

func (u *UIEbiten) close() {
	if u.closed {
		return
	}
	u.closed = true
	if u.stopFn != nil {
		u.stopFn()
	}
}

func (u *UIEbiten) handleInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	var shiftFlags byte
	if shift {
		shiftFlags |= 0x01
	}
	if ctrl {
		shiftFlags |= 0x04
	}
	u.queue.SetShiftFlags(shiftFlags)

	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		u.pasteClipboard()
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r <= 0xFF {
			b := byte(r)
			u.queue.Push(KeyEvent{Scancode: asciiToScancode(b), ASCII: b})
		}
	}

	type specialKey struct {
		key   ebiten.Key
		ascii byte
		scan  byte
	}
	specials := []specialKey{
		{ebiten.KeyEnter, '\r', 0x1C},
		{ebiten.KeyNumpadEnter, '\r', 0x1C},
		{ebiten.KeyBackspace, 0x08, 0x0E},
		{ebiten.KeyTab, '\t', 0x0F},
		{ebiten.KeyEscape, 0x1B, 0x01},
		{ebiten.KeyArrowUp, 0, 0x48},
		{ebiten.KeyArrowDown, 0, 0x50},
		{ebiten.KeyArrowLeft, 0, 0x4B},
		{ebiten.KeyArrowRight, 0, 0x4D},
	}
	for _, sp := range specials {
		if inpututil.IsKeyJustPressed(sp.key) {
			u.queue.Push(KeyEvent{Scancode: sp.scan, ASCII: sp.ascii})
		}
	}
}

func (u *UIEbiten) pasteClipboard() {
	if !u.clipboardOnce {
		u.clipboardOnce = true
		u.clipboardOK = clipboard.Init() == nil
	}
	if !u.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	const maxPaste = 4096
	if len(data) > maxPaste {
		data = data[:maxPaste]
	}
	for _, b := range data {
		if b == '\r' {
			continue
		}
		u.queue.Push(KeyEvent{Scancode: asciiToScancode(b), ASCII: b})
	}
}

func (u *UIEbiten) Draw(screen *ebiten.Image) {
	cells, curRow, curCol := u.screen.Snapshot()
	face := basicfont.Face7x13

	for row := range cells {
		for col := range cells[row] {
			cell := cells[row][col]
			fg := cgaPalette[cell.Attr&0x0F]
			bg := cgaPalette[(cell.Attr>>4)&0x07]
			x, y := col*glyphW, row*glyphH

			ebitenutil.DrawRect(screen, float64(x), float64(y), float64(glyphW), float64(glyphH), bg)
			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			text.Draw(screen, string(ch), face, x, y+glyphH-3, fg)
		}
	}

	cx, cy := curCol*glyphW, curRow*glyphH
	ebitenutil.DrawRect(screen, float64(cx), float64(cy+glyphH-2), float64(glyphW), 2, color.RGBA{255, 255, 255, 255})
}

func (u *UIEbiten) Layout(_, _ int) (int, int) {
	cols, rows := u.screen.Dimensions()
	return cols * glyphW, rows * glyphH
}
