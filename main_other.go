//go:build !windows

package main

import (
	"fmt"

	"prompter-overlay/internal/capture"
)

// resolveOverlayHWND is a no-op on non-Windows platforms
func (a *App) resolveOverlayHWND() uintptr {
	return 0
}

// applyClickThrough reports click-through as unsupported. Lock mode stays
// unavailable, the overlay degrades to normal interaction.
func (a *App) applyClickThrough(enable bool) error {
	return fmt.Errorf("click-through not supported on this platform")
}

// applyCaptureAffinity reports capture exclusion as unavailable. The
// overlay keeps operating, visible in captures.
func (a *App) applyCaptureAffinity(excluded bool) error {
	return capture.ErrUnavailable
}

// GetActiveWindow returns the title of the currently active window (stub for non-Windows)
func (a *App) GetActiveWindow() (string, error) {
	return "", fmt.Errorf("GetActiveWindow not supported on this platform")
}

// IsOverlayFocused checks if the overlay window is currently focused (stub for non-Windows)
func (a *App) IsOverlayFocused() bool {
	return false
}
