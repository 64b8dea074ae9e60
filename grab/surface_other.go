//go:build !windows

package grab

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	xdraw "golang.org/x/image/draw"
)

// portableSurface captures through the cross-platform screenshot library.
// Window targets and pointer compositing need OS drawing surfaces the
// library does not expose, so this backend supports desktop capture only,
// always at 32bpp, with the pointer reported as hidden.
type portableSurface struct {
	buf    []byte
	stride int
	width  int
	height int
}

func newSurface(target Target) (Surface, error) {
	if !target.Desktop() {
		return nil, fmt.Errorf("%w: window capture needs the GDI backend", ErrNotFound)
	}
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("grab: no active displays found")
	}
	return &portableSurface{}, nil
}

func (p *portableSurface) BitsPerPixel() int { return 32 }

func (p *portableSurface) ClientBounds() (image.Rectangle, error) {
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < screenshot.NumActiveDisplays(); i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

func (p *portableSurface) WindowBounds() (image.Rectangle, bool) {
	return image.Rectangle{}, false
}

func (p *portableSurface) Allocate(clip image.Rectangle) (int, error) {
	p.width = clip.Dx()
	p.height = clip.Dy()
	p.stride = p.width * 4
	p.buf = make([]byte, p.stride*p.height)
	return len(p.buf), nil
}

func (p *portableSurface) Capture(clip image.Rectangle) error {
	img, err := screenshot.CaptureRect(clip)
	if err != nil {
		return err
	}
	if img.Bounds().Dx() != p.width || img.Bounds().Dy() != p.height {
		// Some X servers hand back a differently sized image after a mode
		// switch; scale rather than tear the buffer layout.
		scaled := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	// Repack RGBA rows into the BGRX layout a 32bpp DIB frame carries.
	for y := 0; y < p.height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+p.stride]
		dst := p.buf[y*p.stride : (y+1)*p.stride]
		for x := 0; x < p.stride; x += 4 {
			dst[x] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x]
			dst[x+3] = 0xff
		}
	}
	return nil
}

func (p *portableSurface) Pixels() []byte  { return p.buf }
func (p *portableSurface) Palette() []byte { return nil }

func (p *portableSurface) Cursor() (CursorState, error) {
	// No pointer imagery without OS drawing surfaces; report it hidden so
	// the overlay no-ops.
	return CursorState{}, nil
}

func (p *portableSurface) DrawCursor(image.Point) error { return nil }

func (p *portableSurface) Close() error {
	p.buf = nil
	return nil
}
