//go:build windows

package hotkeys

import "golang.design/x/hotkey"

// platformModifiers maps canonical modifier names to Win32 modifier values.
var platformModifiers = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModAlt,
	"super": hotkey.ModWin,
}
