// Package bmp serializes capture frames into self-describing bitmap
// packets.
//
// Each packet is a complete BMP file with a fixed layout, independent of
// any in-memory struct. All integers are little-endian:
//
//	offset  0  file header (14 bytes)
//	  0  uint16  magic "BM"
//	  2  uint32  total file size
//	  6  uint16  reserved, zero
//	  8  uint16  reserved, zero
//	 10  uint32  byte offset of the pixel data
//	offset 14  info header (40 bytes)
//	 14  uint32  info header size, always 40
//	 18  int32   width in pixels
//	 22  int32   height; negative to signal top-down row order
//	 26  uint16  planes, always 1
//	 28  uint16  bits per pixel
//	 30  uint32  compression, always 0 (BI_RGB)
//	 34  ...     remaining 20 bytes zero
//	offset 54  palette, 4 bytes per entry, 2^bpp entries, only when bpp <= 8
//	then       pixel rows, top-down, each padded to a 4-byte boundary
package bmp

import (
	"encoding/binary"
	"fmt"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	magic          = 0x4d42 // "BM"
)

// DIB describes the geometry of a capture back buffer.
type DIB struct {
	Width    int
	Height   int
	BitCount int
}

// Stride is the byte length of one pixel row, padded to a 4-byte boundary
// the way GDI lays DIB rows out.
func (d DIB) Stride() int {
	return (d.Width*d.BitCount + 31) / 32 * 4
}

// FrameSize is the byte size of the raw pixel data.
func (d DIB) FrameSize() int {
	return d.Stride() * d.Height
}

// PaletteSize is the byte size of the color table: 4*2^bpp for bit depths
// of 8 or less, zero otherwise.
func (d DIB) PaletteSize() int {
	if d.BitCount <= 8 {
		return 4 << uint(d.BitCount)
	}
	return 0
}

// HeaderSize is everything before the pixel data. It depends only on the
// bit depth.
func (d DIB) HeaderSize() int {
	return fileHeaderSize + infoHeaderSize + d.PaletteSize()
}

// PacketSize is the exact length of every emitted packet.
func (d DIB) PacketSize() int {
	return d.HeaderSize() + d.FrameSize()
}

// Assemble serializes the headers, palette, and pixel bytes into dst.
// dst must be exactly PacketSize() long, palette exactly PaletteSize()
// long (nil when no palette), and pixels exactly FrameSize() long. The
// total-length contract is strict, so mismatches are errors rather than
// truncations.
func (d DIB) Assemble(dst, palette, pixels []byte) error {
	if len(dst) != d.PacketSize() {
		return fmt.Errorf("bmp: packet buffer is %d bytes, want %d", len(dst), d.PacketSize())
	}
	if len(palette) != d.PaletteSize() {
		return fmt.Errorf("bmp: palette is %d bytes, want %d", len(palette), d.PaletteSize())
	}
	if len(pixels) != d.FrameSize() {
		return fmt.Errorf("bmp: pixel data is %d bytes, want %d", len(pixels), d.FrameSize())
	}

	le := binary.LittleEndian

	le.PutUint16(dst[0:], magic)
	le.PutUint32(dst[2:], uint32(d.PacketSize()))
	le.PutUint16(dst[6:], 0)
	le.PutUint16(dst[8:], 0)
	le.PutUint32(dst[10:], uint32(d.HeaderSize()))

	le.PutUint32(dst[14:], infoHeaderSize)
	le.PutUint32(dst[18:], uint32(int32(d.Width)))
	le.PutUint32(dst[22:], uint32(int32(-d.Height))) // top-down
	le.PutUint16(dst[26:], 1)                        // planes
	le.PutUint16(dst[28:], uint16(d.BitCount))
	for i := 30; i < fileHeaderSize+infoHeaderSize; i++ {
		dst[i] = 0 // compression BI_RGB and the unused tail
	}

	copy(dst[fileHeaderSize+infoHeaderSize:], palette)
	copy(dst[d.HeaderSize():], pixels)
	return nil
}
