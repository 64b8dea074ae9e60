package bmp

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"testing"

	xbmp "golang.org/x/image/bmp"
)

func TestHeaderSize(t *testing.T) {
	cases := []struct {
		bpp  int
		want int
	}{
		{1, 14 + 40 + 8},
		{4, 14 + 40 + 64},
		{8, 14 + 40 + 1024},
		{16, 14 + 40},
		{24, 14 + 40},
		{32, 14 + 40},
	}
	for _, tc := range cases {
		d := DIB{Width: 10, Height: 10, BitCount: tc.bpp}
		if got := d.HeaderSize(); got != tc.want {
			t.Errorf("HeaderSize(bpp=%d) = %d, want %d", tc.bpp, got, tc.want)
		}
	}
}

func TestStridePadding(t *testing.T) {
	// 3 pixels of 24bpp is 9 bytes, padded to 12.
	d := DIB{Width: 3, Height: 2, BitCount: 24}
	if d.Stride() != 12 {
		t.Fatalf("Stride = %d, want 12", d.Stride())
	}
	if d.FrameSize() != 24 {
		t.Fatalf("FrameSize = %d, want 24", d.FrameSize())
	}
}

func TestAssembleFieldLayout(t *testing.T) {
	d := DIB{Width: 2, Height: 2, BitCount: 32}
	pixels := make([]byte, d.FrameSize())
	dst := make([]byte, d.PacketSize())
	if err := d.Assemble(dst, nil, pixels); err != nil {
		t.Fatal(err)
	}

	le := binary.LittleEndian
	if le.Uint16(dst[0:]) != 0x4d42 {
		t.Errorf("magic = %#x, want 0x4d42 (\"BM\")", le.Uint16(dst[0:]))
	}
	if got := le.Uint32(dst[2:]); got != uint32(d.PacketSize()) {
		t.Errorf("file size = %d, want %d", got, d.PacketSize())
	}
	if le.Uint16(dst[6:]) != 0 || le.Uint16(dst[8:]) != 0 {
		t.Error("reserved fields must be zero")
	}
	if got := le.Uint32(dst[10:]); got != uint32(d.HeaderSize()) {
		t.Errorf("pixel data offset = %d, want %d", got, d.HeaderSize())
	}
	if le.Uint32(dst[14:]) != 40 {
		t.Errorf("info header size = %d, want 40", le.Uint32(dst[14:]))
	}
	if got := int32(le.Uint32(dst[18:])); got != 2 {
		t.Errorf("width = %d, want 2", got)
	}
	if got := int32(le.Uint32(dst[22:])); got != -2 {
		t.Errorf("height = %d, want -2 (top-down)", got)
	}
	if le.Uint16(dst[26:]) != 1 {
		t.Errorf("planes = %d, want 1", le.Uint16(dst[26:]))
	}
	if le.Uint16(dst[28:]) != 32 {
		t.Errorf("bit count = %d, want 32", le.Uint16(dst[28:]))
	}
	if le.Uint32(dst[30:]) != 0 {
		t.Errorf("compression = %d, want 0 (BI_RGB)", le.Uint32(dst[30:]))
	}
	for i := 34; i < 54; i++ {
		if dst[i] != 0 {
			t.Fatalf("info header byte %d = %#x, want zero", i, dst[i])
		}
	}
}

func TestAssembleStrictLengths(t *testing.T) {
	d := DIB{Width: 2, Height: 2, BitCount: 32}
	pixels := make([]byte, d.FrameSize())

	if err := d.Assemble(make([]byte, d.PacketSize()-1), nil, pixels); err == nil {
		t.Error("short packet buffer must be rejected")
	}
	if err := d.Assemble(make([]byte, d.PacketSize()+1), nil, pixels); err == nil {
		t.Error("long packet buffer must be rejected")
	}
	if err := d.Assemble(make([]byte, d.PacketSize()), nil, pixels[:len(pixels)-1]); err == nil {
		t.Error("short pixel data must be rejected")
	}
	if err := d.Assemble(make([]byte, d.PacketSize()), make([]byte, 4), pixels); err == nil {
		t.Error("palette on a 32bpp frame must be rejected")
	}
}

func TestAssemblePalette(t *testing.T) {
	d := DIB{Width: 4, Height: 1, BitCount: 8}
	if d.PaletteSize() != 1024 {
		t.Fatalf("PaletteSize = %d, want 1024", d.PaletteSize())
	}

	palette := make([]byte, d.PaletteSize())
	palette[0], palette[1], palette[2] = 0x11, 0x22, 0x33
	pixels := make([]byte, d.FrameSize())
	dst := make([]byte, d.PacketSize())
	if err := d.Assemble(dst, palette, pixels); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(dst[54:54+1024], palette) {
		t.Error("palette bytes not copied verbatim at offset 54")
	}
	if got := binary.LittleEndian.Uint32(dst[10:]); got != 54+1024 {
		t.Errorf("pixel offset = %d, want %d", got, 54+1024)
	}
}

// A packet must be a valid BMP file on its own: decode one with the
// x/image decoder and check the pixels land where the top-down layout
// says they should.
func TestAssembleDecodes(t *testing.T) {
	d := DIB{Width: 2, Height: 2, BitCount: 24}
	pixels := make([]byte, d.FrameSize())
	// First row red then green, second row blue then white, BGR order.
	copy(pixels[0:], []byte{0, 0, 255, 0, 255, 0})
	copy(pixels[d.Stride():], []byte{255, 0, 0, 255, 255, 255})

	dst := make([]byte, d.PacketSize())
	if err := d.Assemble(dst, nil, pixels); err != nil {
		t.Fatal(err)
	}

	img, err := xbmp.Decode(bytes.NewReader(dst))
	if err != nil {
		t.Fatalf("decoding assembled packet: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("decoded bounds = %v, want 2x2", img.Bounds())
	}

	want := map[[2]int]color.RGBA{
		{0, 0}: {255, 0, 0, 255},
		{1, 0}: {0, 255, 0, 255},
		{0, 1}: {0, 0, 255, 255},
		{1, 1}: {255, 255, 255, 255},
	}
	for pt, rgba := range want {
		r, g, b, _ := img.At(pt[0], pt[1]).RGBA()
		if uint8(r>>8) != rgba.R || uint8(g>>8) != rgba.G || uint8(b>>8) != rgba.B {
			t.Errorf("pixel (%d,%d) = (%d,%d,%d), want %v", pt[0], pt[1], r>>8, g>>8, b>>8, rgba)
		}
	}
}

func TestPacketSizeContract(t *testing.T) {
	for _, bpp := range []int{8, 16, 24, 32} {
		d := DIB{Width: 33, Height: 17, BitCount: bpp}
		if d.PacketSize() != d.HeaderSize()+d.FrameSize() {
			t.Errorf("bpp=%d: PacketSize %d != HeaderSize %d + FrameSize %d",
				bpp, d.PacketSize(), d.HeaderSize(), d.FrameSize())
		}
	}
}
