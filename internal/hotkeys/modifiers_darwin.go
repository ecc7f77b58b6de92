//go:build darwin

package hotkeys

import "golang.design/x/hotkey"

// platformModifiers maps canonical modifier names to macOS modifier values.
var platformModifiers = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModOption,
	"super": hotkey.ModCmd,
}
