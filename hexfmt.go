// hexfmt.go - hex formatting helpers for BIOS debug traces
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "fmt"

// hexByte/hexWord/hexDword format register-width values the way the debug
// sink prints them: fixed-width, uppercase, 0x-prefixed.
func hexByte(v byte) string   { return fmt.Sprintf("0x%02X", v) }
func hexWord(v uint16) string { return fmt.Sprintf("0x%04X", v) }
func hexDword(v uint32) string { return fmt.Sprintf("0x%08X", v) }

// hexSegOff formats a real-mode pointer as seg:off, the conventional BIOS
// trace shape for buffer addresses passed in ES:BX/DS:SI/etc.
func hexSegOff(seg, off uint16) string {
	return fmt.Sprintf("%04X:%04X", seg, off)
}
