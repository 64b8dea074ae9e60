//go:build windows

package grab

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const (
	captureBlt    = 0x40000000 // BitBlt flag: include layered windows
	dibRGBColors  = 0
	idcArrow      = 32512
	cursorShowing = 0x0001
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procFindWindowW      = user32.NewProc("FindWindowW")
	procGetCursorInfo    = user32.NewProc("GetCursorInfo")
	procGetIconInfo      = user32.NewProc("GetIconInfo")
	procCopyIcon         = user32.NewProc("CopyIcon")
	procDrawIcon         = user32.NewProc("DrawIcon")
	procDestroyCursor    = user32.NewProc("DestroyCursor")
	procLoadCursorW      = user32.NewProc("LoadCursorW")
	procCreateDIBSection = gdi32.NewProc("CreateDIBSection")
	procGetDIBColorTable = gdi32.NewProc("GetDIBColorTable")
)

type cursorInfo struct {
	CbSize      uint32
	Flags       uint32
	HCursor     uintptr
	PtScreenPos win.POINT
}

type iconInfo struct {
	FIcon    int32
	XHotspot uint32
	YHotspot uint32
	HbmMask  win.HBITMAP
	HbmColor win.HBITMAP
}

// gdiSurface is the GDI drawing stack for one session: the source device
// context of the window (or the whole screen), a compatible destination
// context, and a top-down DIB section serving as the back buffer.
type gdiSurface struct {
	hwnd      win.HWND
	sourceHDC win.HDC
	destHDC   win.HDC
	hbmp      win.HBITMAP
	oldBmp    win.HGDIOBJ
	bits      unsafe.Pointer
	size      int
	bpp       int

	icon uintptr // pointer image pending DrawCursor

	closed bool
}

func newSurface(target Target) (Surface, error) {
	var hwnd win.HWND
	if !target.Desktop() {
		title, err := windows.UTF16PtrFromString(target.Title)
		if err != nil {
			return nil, err
		}
		h, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
		if h == 0 {
			return nil, fmt.Errorf("%w: can't find window %q", ErrNotFound, target.Title)
		}
		hwnd = win.HWND(h)
	}

	// GetDC with a zero window handle yields the screen.
	sourceHDC := win.GetDC(hwnd)
	if sourceHDC == 0 {
		return nil, fmt.Errorf("grab: couldn't get window device context (error %d)", win.GetLastError())
	}

	return &gdiSurface{
		hwnd:      hwnd,
		sourceHDC: sourceHDC,
		bpp:       int(win.GetDeviceCaps(sourceHDC, win.BITSPIXEL)),
	}, nil
}

func (g *gdiSurface) BitsPerPixel() int { return g.bpp }

func (g *gdiSurface) ClientBounds() (image.Rectangle, error) {
	if g.hwnd != 0 {
		var rc win.RECT
		if !win.GetClientRect(g.hwnd, &rc) {
			return image.Rectangle{}, fmt.Errorf("couldn't get client rect (error %d)", win.GetLastError())
		}
		return rectToImage(rc), nil
	}
	x := int(win.GetSystemMetrics(win.SM_XVIRTUALSCREEN))
	y := int(win.GetSystemMetrics(win.SM_YVIRTUALSCREEN))
	w := int(win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN))
	h := int(win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN))
	return image.Rect(x, y, x+w, y+h), nil
}

func (g *gdiSurface) WindowBounds() (image.Rectangle, bool) {
	if g.hwnd == 0 {
		return image.Rectangle{}, false
	}
	var rc win.RECT
	if !win.GetWindowRect(g.hwnd, &rc) {
		return image.Rectangle{}, false
	}
	return rectToImage(rc), true
}

func (g *gdiSurface) Allocate(clip image.Rectangle) (int, error) {
	w, h := clip.Dx(), clip.Dy()

	destHDC := win.CreateCompatibleDC(g.sourceHDC)
	if destHDC == 0 {
		return 0, fmt.Errorf("screen DC CreateCompatibleDC (error %d)", win.GetLastError())
	}

	bmi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(w),
			BiHeight:      int32(-h), // top-down rows
			BiPlanes:      1,
			BiBitCount:    uint16(g.bpp),
			BiCompression: win.BI_RGB,
		},
	}
	var bits unsafe.Pointer
	ret, _, _ := procCreateDIBSection.Call(uintptr(destHDC), uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if ret == 0 {
		win.DeleteDC(destHDC)
		return 0, fmt.Errorf("creating DIB section (error %d)", win.GetLastError())
	}
	hbmp := win.HBITMAP(ret)

	oldBmp := win.SelectObject(destHDC, win.HGDIOBJ(hbmp))
	if oldBmp == 0 {
		win.DeleteObject(win.HGDIOBJ(hbmp))
		win.DeleteDC(destHDC)
		return 0, fmt.Errorf("SelectObject (error %d)", win.GetLastError())
	}

	stride := (w*g.bpp + 31) / 32 * 4
	g.destHDC = destHDC
	g.hbmp = hbmp
	g.oldBmp = oldBmp
	g.bits = bits
	g.size = stride * h
	return g.size, nil
}

func (g *gdiSurface) Capture(clip image.Rectangle) error {
	if !win.BitBlt(g.destHDC, 0, 0, int32(clip.Dx()), int32(clip.Dy()),
		g.sourceHDC, int32(clip.Min.X), int32(clip.Min.Y), win.SRCCOPY|captureBlt) {
		return fmt.Errorf("BitBlt (error %d)", win.GetLastError())
	}
	return nil
}

func (g *gdiSurface) Pixels() []byte {
	return unsafe.Slice((*byte)(g.bits), g.size)
}

func (g *gdiSurface) Palette() []byte {
	if g.bpp > 8 {
		return nil
	}
	entries := 1 << uint(g.bpp)
	buf := make([]byte, 4*entries)
	procGetDIBColorTable.Call(uintptr(g.destHDC), 0, uintptr(entries), uintptr(unsafe.Pointer(&buf[0])))
	return buf
}

func (g *gdiSurface) Cursor() (CursorState, error) {
	g.releaseIcon()

	var ci cursorInfo
	ci.CbSize = uint32(unsafe.Sizeof(ci))
	if ret, _, _ := procGetCursorInfo.Call(uintptr(unsafe.Pointer(&ci))); ret == 0 {
		return CursorState{}, fmt.Errorf("GetCursorInfo (error %d)", win.GetLastError())
	}
	if ci.Flags != cursorShowing {
		return CursorState{}, nil
	}

	icon, _, _ := procCopyIcon.Call(ci.HCursor)
	if icon == 0 {
		// Wine can't fetch the current system cursor; fall back to the
		// standard arrow.
		arrow, _, _ := procLoadCursorW.Call(0, idcArrow)
		icon, _, _ = procCopyIcon.Call(arrow)
	}

	var info iconInfo
	if ret, _, _ := procGetIconInfo.Call(icon, uintptr(unsafe.Pointer(&info))); ret == 0 {
		if icon != 0 {
			procDestroyCursor.Call(icon)
		}
		return CursorState{}, fmt.Errorf("GetIconInfo (error %d)", win.GetLastError())
	}
	// GetIconInfo hands back bitmap copies we don't draw from.
	if info.HbmMask != 0 {
		win.DeleteObject(win.HGDIOBJ(info.HbmMask))
	}
	if info.HbmColor != 0 {
		win.DeleteObject(win.HGDIOBJ(info.HbmColor))
	}

	g.icon = icon
	return CursorState{
		Showing: true,
		Pos:     image.Pt(int(ci.PtScreenPos.X), int(ci.PtScreenPos.Y)),
		Hotspot: image.Pt(int(info.XHotspot), int(info.YHotspot)),
	}, nil
}

func (g *gdiSurface) DrawCursor(pt image.Point) error {
	if g.icon == 0 {
		return nil
	}
	defer g.releaseIcon()
	if ret, _, _ := procDrawIcon.Call(uintptr(g.destHDC), uintptr(pt.X), uintptr(pt.Y), g.icon); ret == 0 {
		return fmt.Errorf("DrawIcon (error %d)", win.GetLastError())
	}
	return nil
}

func (g *gdiSurface) releaseIcon() {
	if g.icon != 0 {
		procDestroyCursor.Call(g.icon)
		g.icon = 0
	}
}

func (g *gdiSurface) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.releaseIcon()
	if g.destHDC != 0 {
		if g.oldBmp != 0 {
			win.SelectObject(g.destHDC, g.oldBmp)
		}
		win.DeleteDC(g.destHDC)
		g.destHDC = 0
	}
	if g.hbmp != 0 {
		win.DeleteObject(win.HGDIOBJ(g.hbmp))
		g.hbmp = 0
	}
	if g.sourceHDC != 0 {
		win.ReleaseDC(g.hwnd, g.sourceHDC)
		g.sourceHDC = 0
	}
	return nil
}

func rectToImage(rc win.RECT) image.Rectangle {
	return image.Rect(int(rc.Left), int(rc.Top), int(rc.Right), int(rc.Bottom))
}
