//go:build windows

package region

import (
	"fmt"
	"image"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const rgnDiff = 4 // RGN_DIFF

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procAdjustWindowRectEx = user32.NewProc("AdjustWindowRectEx")
	procFrameRect          = user32.NewProc("FrameRect")
	procSetWindowRgn       = user32.NewProc("SetWindowRgn")
	procCreateRectRgn      = gdi32.NewProc("CreateRectRgn")
	procCombineRgn         = gdi32.NewProc("CombineRgn")
)

var wndProcPtr = syscall.NewCallback(wndProc)

type window struct {
	hwnd      win.HWND
	className *uint16
	closed    bool
}

// newWindow creates a popup with no owner, shaped so that only the border
// band around the capture rectangle is visible, and marked topmost and
// input-transparent so it never steals clicks from the content it frames.
func newWindow(clip image.Rectangle) (Window, error) {
	style := uint32(win.WS_POPUP | win.WS_VISIBLE)
	exStyle := uint32(win.WS_EX_TOOLWINDOW | win.WS_EX_TOPMOST | win.WS_EX_TRANSPARENT)

	rc := win.RECT{
		Left:   int32(clip.Min.X - BorderWidth),
		Top:    int32(clip.Min.Y - BorderWidth),
		Right:  int32(clip.Max.X + BorderWidth),
		Bottom: int32(clip.Max.Y + BorderWidth),
	}
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&rc)), uintptr(style), 0, uintptr(exStyle))

	className, err := syscall.UTF16PtrFromString(fmt.Sprintf("ScreengrabRegion_%d", time.Now().UnixNano()))
	if err != nil {
		return nil, err
	}
	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   wndProcPtr,
		HInstance:     win.GetModuleHandle(nil),
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wc) == 0 {
		return nil, fmt.Errorf("region: could not register window class (error %d)", win.GetLastError())
	}

	hwnd := win.CreateWindowEx(exStyle, className, nil, style,
		rc.Left, rc.Top, rc.Right-rc.Left, rc.Bottom-rc.Top,
		0, 0, win.GetModuleHandle(nil), nil)
	if hwnd == 0 {
		win.UnregisterClass(className)
		return nil, fmt.Errorf("region: could not create region display window (error %d)", win.GetLastError())
	}

	// Restrict the window shape to the border band by carving the interior
	// out of the client rectangle.
	var client win.RECT
	win.GetClientRect(hwnd, &client)
	w := uintptr(client.Right - client.Left)
	h := uintptr(client.Bottom - client.Top)
	outer, _, _ := procCreateRectRgn.Call(0, 0, w, h)
	inner, _, _ := procCreateRectRgn.Call(BorderWidth, BorderWidth, w-BorderWidth, h-BorderWidth)
	procCombineRgn.Call(outer, outer, inner, rgnDiff)
	win.DeleteObject(win.HGDIOBJ(inner))
	if ret, _, _ := procSetWindowRgn.Call(uintptr(hwnd), outer, 0); ret == 0 {
		// On failure the region is still ours to free; on success the
		// window owns it.
		win.DeleteObject(win.HGDIOBJ(outer))
		win.DestroyWindow(hwnd)
		win.UnregisterClass(className)
		return nil, fmt.Errorf("region: could not set window region (error %d)", win.GetLastError())
	}

	win.ShowWindow(hwnd, win.SW_SHOW)

	return &window{hwnd: hwnd, className: className}, nil
}

// wndProc paints three concentric rectangles, alternating dark and light,
// so the border reads against any background. Everything else goes to the
// default handler.
func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)

		var rc win.RECT
		win.GetClientRect(hwnd, &rc)
		frameRect(hdc, &rc, win.GetStockObject(win.BLACK_BRUSH))
		inset(&rc)
		frameRect(hdc, &rc, win.GetStockObject(win.WHITE_BRUSH))
		inset(&rc)
		frameRect(hdc, &rc, win.GetStockObject(win.BLACK_BRUSH))

		win.EndPaint(hwnd, &ps)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func frameRect(hdc win.HDC, rc *win.RECT, brush win.HGDIOBJ) {
	procFrameRect.Call(uintptr(hdc), uintptr(unsafe.Pointer(rc)), uintptr(brush))
}

func inset(rc *win.RECT) {
	rc.Left++
	rc.Top++
	rc.Right--
	rc.Bottom--
}

func (w *window) Pump() {
	var msg win.MSG
	for win.PeekMessage(&msg, w.hwnd, 0, 0, win.PM_REMOVE) {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (w *window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	win.DestroyWindow(w.hwnd)
	win.UnregisterClass(w.className)
	return nil
}
