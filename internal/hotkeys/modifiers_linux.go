//go:build linux

package hotkeys

import "golang.design/x/hotkey"

// platformModifiers maps canonical modifier names to X11 modifier values.
var platformModifiers = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1, // Alt = Mod1 on X11
	"super": hotkey.Mod4, // Super/Win = Mod4 on X11
}
