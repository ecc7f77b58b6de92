package hotkeys

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateBinding means two actions were bound to the same chord.
	// The table refuses to build rather than silently dropping one.
	ErrDuplicateBinding = errors.New("duplicate hotkey binding")

	// ErrUnknownAction means a binding named an action that does not exist.
	ErrUnknownAction = errors.New("unknown hotkey action")
)

// Binding pairs an action with its chord.
type Binding struct {
	Action Action
	Chord  Chord
}

// Table is an immutable, validated set of bindings. Build a fresh table to
// rebind; a replacement table goes through the same validation as the one
// built at startup.
type Table struct {
	bindings []Binding
	byAction map[Action]Chord
}

// DefaultBindings returns the built-in chord assignments.
func DefaultBindings() map[string]string {
	return map[string]string{
		"toggle_lock":      "ctrl+l",
		"emergency_unlock": "ctrl+alt+u",
		"toggle_scroll":    "ctrl+s",
		"speed_up":         "ctrl+up",
		"speed_down":       "ctrl+down",
		"step_up":          "shift+up",
		"step_down":        "shift+down",
		"cycle_color":      "ctrl+c",
		"toggle_panel":     "ctrl+h",
	}
}

// NewTable builds and validates a binding table from action-name to
// chord-string pairs. Unknown actions, malformed chords, and chords bound
// to more than one action all fail the build.
func NewTable(spec map[string]string) (*Table, error) {
	t := &Table{byAction: make(map[Action]Chord, len(spec))}
	owners := make(map[string]Action, len(spec))

	// Deterministic order so validation errors are stable.
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		chord, err := ParseChord(spec[name])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
		if prev, taken := owners[chord.String()]; taken {
			return nil, fmt.Errorf("%w: %q bound to both %s and %s",
				ErrDuplicateBinding, chord.String(), prev, action)
		}
		owners[chord.String()] = action
		t.byAction[action] = chord
		t.bindings = append(t.bindings, Binding{Action: action, Chord: chord})
	}

	return t, nil
}

// Bindings returns the bindings in deterministic (action-name) order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// ChordFor returns the chord bound to an action.
func (t *Table) ChordFor(a Action) (Chord, bool) {
	c, ok := t.byAction[a]
	return c, ok
}

// Spec returns the table as action-name to chord-string pairs, the shape
// stored in the config file.
func (t *Table) Spec() map[string]string {
	spec := make(map[string]string, len(t.bindings))
	for _, b := range t.bindings {
		spec[b.Action.String()] = b.Chord.String()
	}
	return spec
}
