// Package hotkeys maps global key chords to overlay actions. The primary
// dispatcher uses OS-registered hotkeys, so chords fire no matter which
// window has focus; this is what makes the click-through lock recoverable.
package hotkeys

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// canonical modifier names, in the order they appear in a normalized chord.
var modifierOrder = []string{"ctrl", "alt", "shift", "super"}

// modifierAliases normalizes the accepted modifier spellings.
var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
	"meta":    "super",
}

// keyMap names the non-modifier keys a chord may end with. The constants
// exist on every platform x/hotkey supports.
var keyMap = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"up": hotkey.KeyUp, "down": hotkey.KeyDown,
	"left": hotkey.KeyLeft, "right": hotkey.KeyRight,
	"space": hotkey.KeySpace, "tab": hotkey.KeyTab,
	"enter": hotkey.KeyReturn, "esc": hotkey.KeyEscape,
	"delete": hotkey.KeyDelete,
	"f1":     hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// keyAliases maps alternate spellings to the canonical key token.
var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
}

// Chord is a parsed key combination: zero or more modifiers plus one key.
// Construct only via ParseChord so the normalized form stays consistent.
type Chord struct {
	mods       map[string]bool // canonical modifier names
	key        string          // canonical key token
	normalized string
}

// ParseChord parses a chord string such as "ctrl+alt+u" or "shift+down".
// Modifier order and spelling variants do not matter; two chords that
// resolve to the same keys compare equal via String.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	mods := make(map[string]bool)
	key := ""

	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			return Chord{}, fmt.Errorf("invalid chord %q: empty token", s)
		}
		if canonical, ok := modifierAliases[token]; ok {
			mods[canonical] = true
			continue
		}
		if key != "" {
			return Chord{}, fmt.Errorf("invalid chord %q: more than one key", s)
		}
		if alias, ok := keyAliases[token]; ok {
			token = alias
		}
		if _, ok := keyMap[token]; !ok {
			return Chord{}, fmt.Errorf("invalid chord %q: unknown key %q", s, token)
		}
		key = token
	}

	if key == "" {
		return Chord{}, fmt.Errorf("invalid chord %q: missing key", s)
	}

	c := Chord{mods: mods, key: key}
	c.normalized = strings.Join(c.Tokens(), "+")
	return c, nil
}

// MustParseChord is ParseChord for compile-time-known chords.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Tokens returns the canonical lowercase tokens, modifiers first. This is
// the form the raw keyboard hook consumes.
func (c Chord) Tokens() []string {
	tokens := make([]string, 0, len(c.mods)+1)
	for _, name := range modifierOrder {
		if c.mods[name] {
			tokens = append(tokens, name)
		}
	}
	return append(tokens, c.key)
}

// String returns the normalized chord, e.g. "ctrl+alt+u".
func (c Chord) String() string { return c.normalized }

// Modifiers returns the platform modifier values for registration.
func (c Chord) Modifiers() []hotkey.Modifier {
	mods := make([]hotkey.Modifier, 0, len(c.mods))
	for _, name := range modifierOrder {
		if c.mods[name] {
			mods = append(mods, platformModifiers[name])
		}
	}
	return mods
}

// Key returns the platform key value for registration.
func (c Chord) Key() hotkey.Key { return keyMap[c.key] }
