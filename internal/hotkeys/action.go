package hotkeys

import "fmt"

// Action identifies an overlay operation a chord can trigger.
type Action int

const (
	ActionToggleLock Action = iota
	ActionEmergencyUnlock
	ActionToggleScroll
	ActionSpeedUp
	ActionSpeedDown
	ActionStepUp
	ActionStepDown
	ActionCycleColor
	ActionTogglePanel
)

var actionNames = map[Action]string{
	ActionToggleLock:      "toggle_lock",
	ActionEmergencyUnlock: "emergency_unlock",
	ActionToggleScroll:    "toggle_scroll",
	ActionSpeedUp:         "speed_up",
	ActionSpeedDown:       "speed_down",
	ActionStepUp:          "step_up",
	ActionStepDown:        "step_down",
	ActionCycleColor:      "cycle_color",
	ActionTogglePanel:     "toggle_panel",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves a config action name such as "toggle_lock".
func ParseAction(name string) (Action, error) {
	a, ok := actionsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a, nil
}
