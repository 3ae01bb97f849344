// keyboard_scancode.go - US keyboard Set-1 scancode lookup for ASCII
// bytes arriving from the terminal host.
//
// A real keyboard controller reports the scancode directly; a terminal
// only ever gives us the ASCII byte a key produced, so this is a
// best-effort reverse mapping covering the common case (unshifted
// letters, digits, and control keys) rather than a full layout.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

var asciiScancodeTable = map[byte]byte{
	'\n': 0x1C, '\t': 0x0F, 0x08: 0x0E, 0x1B: 0x01, ' ': 0x39,
	'1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05, '5': 0x06,
	'6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A, '0': 0x0B,
	'-': 0x0C, '=': 0x0D,
	'q': 0x10, 'w': 0x11, 'e': 0x12, 'r': 0x13, 't': 0x14,
	'y': 0x15, 'u': 0x16, 'i': 0x17, 'o': 0x18, 'p': 0x19,
	'a': 0x1E, 's': 0x1F, 'd': 0x20, 'f': 0x21, 'g': 0x22,
	'h': 0x23, 'j': 0x24, 'k': 0x25, 'l': 0x26,
	'z': 0x2C, 'x': 0x2D, 'c': 0x2E, 'v': 0x2F, 'b': 0x30,
	'n': 0x31, 'm': 0x32,
}

// asciiToScancode looks up b in the table, upper-casing letters first
// since the table only carries lowercase entries; unmapped bytes (most
// punctuation, non-ASCII) return scancode 0, which real BIOS code
// treats as "no scancode known" and falls back to the ASCII value.
func asciiToScancode(b byte) byte {
	lower := b
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}
	return asciiScancodeTable[lower]
}
