//go:build windows

package monitor

import (
	"image"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// GetDeviceCaps indexes missing from lxn/win.
const (
	desktopVertRes = 117
	desktopHorzRes = 118
)

const cchDeviceName = 32

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procCreateDCW           = gdi32.NewProc("CreateDCW")
)

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor win.RECT
	RcWork    win.RECT
	DwFlags   uint32
	SzDevice  [cchDeviceName]uint16
}

// Enumerate queries the display subsystem for all attached monitors. If
// enumeration fails the registry comes back empty: lookups report "not
// found" and coordinate mapping degrades to identity scaling.
func Enumerate() *Registry {
	var monitors []Monitor

	cb := syscall.NewCallback(func(hMonitor, hdc uintptr, rc *win.RECT, lparam uintptr) uintptr {
		m := Monitor{
			Bounds: image.Rect(int(rc.Left), int(rc.Top), int(rc.Right), int(rc.Bottom)),
		}

		var mi monitorInfoEx
		mi.CbSize = uint32(unsafe.Sizeof(mi))
		if ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi))); ret != 0 {
			if hdcMon := createDC(&mi.SzDevice[0]); hdcMon != 0 {
				m.Logical.X = int(win.GetDeviceCaps(hdcMon, win.HORZRES))
				m.Logical.Y = int(win.GetDeviceCaps(hdcMon, win.VERTRES))
				m.Physical.X = int(win.GetDeviceCaps(hdcMon, desktopHorzRes))
				m.Physical.Y = int(win.GetDeviceCaps(hdcMon, desktopVertRes))
				win.DeleteDC(hdcMon)
			}
		}

		monitors = append(monitors, m)
		return 1 // continue enumeration
	})

	procEnumDisplayMonitors.Call(0, 0, cb, 0)

	return NewRegistry(monitors)
}

func createDC(device *uint16) win.HDC {
	ret, _, _ := procCreateDCW.Call(0, uintptr(unsafe.Pointer(device)), 0, 0)
	return win.HDC(ret)
}
