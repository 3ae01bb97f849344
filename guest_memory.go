// guest_memory.go - flat guest RAM for the x86 BIOS engine
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"sync"
)

// GuestMemory is a flat byte-addressable RAM block implementing X86Bus.
// There is no memory-mapped I/O region: a real-mode BIOS boot floppy
// has no peripherals beyond what the BIOS services themselves emulate
// in software, so In/Out/Tick are no-ops and every address in range is
// plain RAM.
type GuestMemory struct {
	mu   sync.RWMutex
	data []byte
	mask uint32
}

// NewGuestMemory allocates a zeroed guest RAM block of the given size,
// rounded up to the next power of two so address wrapping (seg*16+off
// overflow) behaves predictably.
func NewGuestMemory(size uint32) *GuestMemory {
	if size == 0 {
		size = 1 << 20 // 1MB, the real-mode ceiling
	}
	rounded := uint32(1)
	for rounded < size {
		rounded <<= 1
	}
	return &GuestMemory{
		data: make([]byte, rounded),
		mask: rounded - 1,
	}
}

// Size returns the number of addressable bytes.
func (m *GuestMemory) Size() uint32 {
	return uint32(len(m.data))
}

func (m *GuestMemory) Read(addr uint32) byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[addr&m.mask]
}

func (m *GuestMemory) Write(addr uint32, value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[addr&m.mask] = value
}

// In/Out/Tick satisfy X86Bus; this engine has no port-mapped I/O or
// per-cycle peripheral work to drive.
func (m *GuestMemory) In(port uint16) byte        { return 0xFF }
func (m *GuestMemory) Out(port uint16, value byte) {}
func (m *GuestMemory) Tick(cycles int)             {}

// ReadBytes copies length bytes starting at addr into a new slice,
// wrapping at the memory boundary the same way Read does.
func (m *GuestMemory) ReadBytes(addr uint32, length int) []byte {
	out := make([]byte, length)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := 0; i < length; i++ {
		out[i] = m.data[(addr+uint32(i))&m.mask]
	}
	return out
}

// WriteBytes copies data into guest memory starting at addr.
func (m *GuestMemory) WriteBytes(addr uint32, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range data {
		m.data[(addr+uint32(i))&m.mask] = b
	}
}

// Reset zeroes the entire memory block.
func (m *GuestMemory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data {
		m.data[i] = 0
	}
}

// errOutOfRange is returned by callers that need a checked variant of
// WriteBytes, e.g. loading a boot image that might not fit.
func errOutOfRange(addr uint32, length int, size uint32) error {
	return fmt.Errorf("guest memory: write of %d bytes at 0x%05X exceeds %d-byte address space", length, addr, size)
}

// WriteBytesChecked is WriteBytes with a bounds check, used for one-shot
// host-side loads (the boot sector) where silent wraparound would be a bug
// rather than expected guest behavior.
func (m *GuestMemory) WriteBytesChecked(addr uint32, data []byte) error {
	if uint64(addr)+uint64(len(data)) > uint64(len(m.data)) {
		return errOutOfRange(addr, len(data), uint32(len(m.data)))
	}
	m.WriteBytes(addr, data)
	return nil
}
