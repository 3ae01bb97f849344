// bpb.go - BIOS Parameter Block decoding for the boot sector's geometry
// fields.
//
// Field offsets follow the standard DOS 2.0/3.0 BPB layout embedded in
// a FAT12/16 boot sector, grounded on the offsets used by
// iansmith-feelings's biosParamBlockShared and linuxkit's dos20Bpb: bytes
// per sector at 0x0B, sectors-per-track at 0x18, number of heads at 0x1A.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// bpbOffsetBytesPerSector etc name the BPB field offsets within the boot
// sector, kept as named constants rather than magic numbers since every
// reader of this file needs to know what byte it's looking at.
const (
	bpbOffsetBytesPerSector  = 0x0B
	bpbOffsetSectorsPerTrack = 0x18
	bpbOffsetNumberOfHeads   = 0x1A
	bpbBootSignatureOffset   = 0x1FE
	bpbBootSignature0        = 0x55
	bpbBootSignature1        = 0xAA

	bpbDefaultBytesPerSector = 512
)

// BPB holds the geometry fields BIOS disk services need; everything else
// in a real BIOS Parameter Block (OEM name, FAT layout, volume label, …)
// belongs to a FAT filesystem driver, which this BIOS doesn't implement -
// it serves raw sectors, not files.
type BPB struct {
	BytesPerSector  uint16
	SectorsPerTrack uint16
	NumberOfHeads   uint16
	Valid           bool
}

// decodeBPB reads the geometry fields out of a 512-byte (or larger) boot
// sector buffer using the explicit little-endian stream reader rather than
// an overlay cast. A boot sector that doesn't end in the 0x55AA signature
// is treated as not carrying a usable BPB; callers then fall back to the
// 512-byte default.
func decodeBPB(sector []byte) BPB {
	if len(sector) < 512 || sector[bpbBootSignatureOffset] != bpbBootSignature0 ||
		sector[bpbBootSignatureOffset+1] != bpbBootSignature1 {
		return BPB{BytesPerSector: bpbDefaultBytesPerSector, Valid: false}
	}

	s := newByteStream(sector[bpbOffsetBytesPerSector:])
	bps := s.u16()

	s2 := newByteStream(sector[bpbOffsetSectorsPerTrack:])
	spt := s2.u16()
	heads := s2.u16()

	if bps == 0 {
		bps = bpbDefaultBytesPerSector
	}
	return BPB{
		BytesPerSector:  bps,
		SectorsPerTrack: spt,
		NumberOfHeads:   heads,
		Valid:           true,
	}
}
