//go:build windows

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"prompter-overlay/internal/capture"
)

// Windows constants for extended window styles and display affinity
const (
	_GWL_EXSTYLE       int32 = -20
	_WS_EX_TRANSPARENT int32 = 0x00000020
	_WS_EX_LAYERED     int32 = 0x00080000

	_WDA_NONE               uintptr = 0x00000000
	_WDA_EXCLUDEFROMCAPTURE uintptr = 0x00000011
)

var (
	user32                       = windows.NewLazyDLL("user32.dll")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procSetWindowLongW           = user32.NewProc("SetWindowLongW")
	procSetWindowDisplayAffinity = user32.NewProc("SetWindowDisplayAffinity")
	procGetWindowText            = user32.NewProc("GetWindowTextW")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
)

// resolveOverlayHWND finds and caches the HWND of the overlay window by its title
func (a *App) resolveOverlayHWND() uintptr {
	if a.overlayHWND != 0 {
		return a.overlayHWND
	}

	title, _ := windows.UTF16PtrFromString(windowTitle)
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd != 0 {
		a.overlayHWND = hwnd
	}
	return a.overlayHWND
}

// applyClickThrough toggles WS_EX_TRANSPARENT so pointer events pass
// through the window. Keyboard chords keep working because the dispatcher
// listens at the OS level, not through window focus.
func (a *App) applyClickThrough(enable bool) error {
	hwnd := a.resolveOverlayHWND()
	if hwnd == 0 {
		return fmt.Errorf("overlay window handle not found")
	}

	idx := _GWL_EXSTYLE
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, uintptr(idx))
	cur := int32(exStyle)
	newStyle := cur | _WS_EX_LAYERED
	if enable {
		newStyle = newStyle | _WS_EX_TRANSPARENT
	} else {
		newStyle = newStyle &^ _WS_EX_TRANSPARENT
	}

	ret, _, callErr := procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(newStyle))
	if ret == 0 && cur != 0 {
		return fmt.Errorf("SetWindowLongW: %v", callErr)
	}
	a.clickThrough = enable
	return nil
}

// applyCaptureAffinity marks the window surface as excluded from (or
// visible to) screen capture. WDA_EXCLUDEFROMCAPTURE needs Windows 10
// 2004 or later; older systems reject the call and the overlay keeps
// running visible in captures.
func (a *App) applyCaptureAffinity(excluded bool) error {
	hwnd := a.resolveOverlayHWND()
	if hwnd == 0 {
		return fmt.Errorf("overlay window handle not found")
	}

	affinity := _WDA_NONE
	if excluded {
		affinity = _WDA_EXCLUDEFROMCAPTURE
	}

	ret, _, callErr := procSetWindowDisplayAffinity.Call(hwnd, affinity)
	if ret == 0 {
		return fmt.Errorf("%w: SetWindowDisplayAffinity: %v", capture.ErrUnavailable, callErr)
	}
	return nil
}

// GetActiveWindow returns the title of the currently active window
func (a *App) GetActiveWindow() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", fmt.Errorf("no foreground window found")
	}

	titleBuf := make([]uint16, 256)
	ret, _, _ := procGetWindowText.Call(
		hwnd,
		uintptr(unsafe.Pointer(&titleBuf[0])),
		uintptr(len(titleBuf)),
	)

	if ret == 0 {
		return "", fmt.Errorf("failed to get window title")
	}

	return windows.UTF16ToString(titleBuf), nil
}

// IsOverlayFocused checks if the overlay window is currently focused
func (a *App) IsOverlayFocused() bool {
	activeWindow, err := a.GetActiveWindow()
	if err != nil {
		return false
	}
	return activeWindow == windowTitle
}
