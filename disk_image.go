// disk_image.go - Disk Image Adapter
//
// Wraps a raw FAT-formatted floppy image file, decodes its BPB, and
// exposes CHS/LBA/byte-offset reads. Immutable for the run's duration,
// so it is safe for the guest and debug-console goroutines to read
// concurrently without coordination.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"os"
)

// DiskImage is the Disk Image Adapter. It holds the whole image in
// memory - floppy images are small (commonly 1.44 MiB) and only the
// boot drive is modelled, so there is never more than one small image
// to hold.
type DiskImage struct {
	data []byte
	bpb  BPB
}

// LoadDiskImage reads path off the host filesystem and decodes its BPB.
// A read failure or an image too small to contain a boot sector is a
// configuration error and aborts construction.
func LoadDiskImage(path string) (*DiskImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading disk image %q: %w", path, err)
	}
	if len(data) < 512 {
		return nil, fmt.Errorf("disk image %q is %d bytes, too small to hold a boot sector", path, len(data))
	}
	return &DiskImage{data: data, bpb: decodeBPB(data[:512])}, nil
}

// BootSector returns the first 512 bytes of the image, the bytes Machine
// loads to guest physical address 0x7C00.
func (d *DiskImage) BootSector() []byte {
	return append([]byte(nil), d.data[:512]...)
}

// BPB returns the decoded geometry; both INT 13h/AH=02h (CHS) and
// INT 13h/AH=42h (DAP) read geometry from here - a single geometry
// source avoids the two paths diverging when the BPB is invalid.
func (d *DiskImage) BPB() BPB {
	return d.bpb
}

// ReadCHS reads count sectors starting at the given 1-based
// Cylinder/Head/Sector address, returning nil if the request runs past
// the end of the image.
func (d *DiskImage) ReadCHS(cyl, head, sector int, count int) []byte {
	bps := int(d.bpb.BytesPerSector)
	spt := int(d.bpb.SectorsPerTrack)
	heads := int(d.bpb.NumberOfHeads)
	if bps == 0 || spt == 0 || heads == 0 || sector < 1 {
		return nil
	}
	lba := (cyl*heads+head)*spt + (sector - 1)
	return d.ReadLBA(uint64(lba), count)
}

// ReadLBA reads count sectors starting at the given 0-based Logical
// Block Address, using the image's own byte-per-sector geometry.
func (d *DiskImage) ReadLBA(lba uint64, count int) []byte {
	bps := uint64(d.bpb.BytesPerSector)
	if bps == 0 {
		bps = bpbDefaultBytesPerSector
	}
	return d.ReadBytes(lba*bps, int(uint64(count)*bps))
}

// ReadBytes reads size bytes starting at byteOffset, returning nil if the
// request runs past the end of the image.
func (d *DiskImage) ReadBytes(byteOffset uint64, size int) []byte {
	if size <= 0 {
		return nil
	}
	end := byteOffset + uint64(size)
	if byteOffset > uint64(len(d.data)) || end > uint64(len(d.data)) {
		return nil
	}
	out := make([]byte, size)
	copy(out, d.data[byteOffset:end])
	return out
}
