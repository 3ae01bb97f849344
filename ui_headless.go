//go:build headless

// ui_headless.go - stub UI satisfying main.go's build when compiled with
// -tags headless, for CI/test environments without the X11/GL headers
// ebiten needs at build time. The -headless CLI flag is a separate,
// runtime-only switch handled in main.go; this build tag additionally
// lets the binary compile at all on a box without a display stack.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "errors"

// UIEbiten is a stand-in for the real ebiten-backed UI; Run always fails
// since a headless build has no window backend to open one with.
type UIEbiten struct{}

func NewUIEbiten(screen *TextScreen, queue *KeyQueue, stopFn func()) *UIEbiten {
	return &UIEbiten{}
}

func (u *UIEbiten) Run() error {
	return errors.New("built with -tags headless: no display backend available")
}
