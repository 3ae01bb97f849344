// dap.go - Disk Address Packet decoding for INT 13h/AH=42h.
//
// Layout: 16 bytes, little-endian, decoded field by field with the same
// byteStream reader bpb.go uses - never an overlay cast.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

const dapSize = 16

// DAP is the decoded Disk Address Packet passed to INT 13h/AH=42h via
// DS:SI.
type DAP struct {
	SizeOfPacket      byte
	NumberOfSectors   uint16
	DestinationOffset uint16
	DestinationSeg    uint16
	LBA               uint64
}

// decodeDAP parses a 16-byte DAP buffer already read from guest memory.
func decodeDAP(buf []byte) DAP {
	s := newByteStream(buf)
	var d DAP
	d.SizeOfPacket = s.u8()
	s.u8() // reserved
	d.NumberOfSectors = s.u16()
	d.DestinationOffset = s.u16()
	d.DestinationSeg = s.u16()
	d.LBA = s.u64()
	return d
}
