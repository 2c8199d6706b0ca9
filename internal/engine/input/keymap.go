package input

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a named user command.
type Action string

// Actions understood by the viewer.
const (
	ActionNone         Action = ""
	ActionQuit         Action = "quit"
	ActionRotateXUp    Action = "rotate_x_up"
	ActionRotateXDown  Action = "rotate_x_down"
	ActionRotateYLeft  Action = "rotate_y_left"
	ActionRotateYRight Action = "rotate_y_right"
	ActionZoomOut      Action = "zoom_out"
	ActionZoomIn       Action = "zoom_in"
	ActionClimb        Action = "climb"
	ActionCycleLight   Action = "cycle_light"
	ActionOpenModel    Action = "open_model"
	ActionScreenshot   Action = "screenshot"
	ActionNextField    Action = "next_field"
	ActionErase        Action = "erase"
)

var knownActions = map[Action]bool{
	ActionQuit: true, ActionRotateXUp: true, ActionRotateXDown: true,
	ActionRotateYLeft: true, ActionRotateYRight: true, ActionZoomOut: true,
	ActionZoomIn: true, ActionClimb: true, ActionCycleLight: true,
	ActionOpenModel: true, ActionScreenshot: true, ActionNextField: true,
	ActionErase: true,
}

// Keymap resolves key names to actions. Key names compare case-insensitively.
type Keymap struct {
	byKey map[string]Action
}

// NewKeymap builds a keymap from action -> key names bindings.
// Unknown actions and keys bound to two actions are errors.
func NewKeymap(bindings map[string][]string) (*Keymap, error) {
	km := &Keymap{byKey: make(map[string]Action)}

	actions := make([]string, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	for _, a := range actions {
		action := Action(a)
		if !knownActions[action] {
			return nil, fmt.Errorf("unknown action %q", a)
		}
		for _, key := range bindings[a] {
			k := normalizeKey(key)
			if k == "" {
				continue
			}
			if prev, ok := km.byKey[k]; ok && prev != action {
				return nil, fmt.Errorf("key %q bound to both %q and %q", key, prev, action)
			}
			km.byKey[k] = action
		}
	}
	return km, nil
}

// Lookup returns the action bound to a key name.
func (km *Keymap) Lookup(key string) Action {
	if km == nil {
		return ActionNone
	}
	return km.byKey[normalizeKey(key)]
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
