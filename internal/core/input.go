package core

// Action represents a semantic input action, abstracted from physical key presses.
// Frontends translate device events into actions; the engine translates
// gameplay actions into commands.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move piece left
	ActionRight            // D, Right arrow - move piece right
	ActionSoftDrop         // S, Down arrow - move piece down one row
	ActionHardDrop         // Space - drop piece to the floor
	ActionRotateCW         // W, Up arrow, X, E - rotate clockwise
	ActionRotateCCW        // Z - rotate counter-clockwise
	ActionPause            // P - pause/resume the drop timer
	ActionRestart          // R - start a new game
	ActionBack             // Esc, B - leave the game
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Gameplay reports whether the action is forwarded to the engine as a command.
func (a Action) Gameplay() bool {
	return a >= ActionLeft && a <= ActionRotateCCW
}

// KeyMap maps key names to actions. Key names follow the Bubble Tea
// convention ("left", "ctrl+c", "space", single characters).
type KeyMap map[string]Action

// DefaultKeyMap returns the default bindings shared by all frontends.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"a":      ActionLeft,
		"left":   ActionLeft,
		"h":      ActionLeft,
		"d":      ActionRight,
		"right":  ActionRight,
		"l":      ActionRight,
		"s":      ActionSoftDrop,
		"down":   ActionSoftDrop,
		"j":      ActionSoftDrop,
		" ":      ActionHardDrop,
		"space":  ActionHardDrop,
		"w":      ActionRotateCW,
		"up":     ActionRotateCW,
		"x":      ActionRotateCW,
		"k":      ActionRotateCW,
		"e":      ActionRotateCW,
		"z":      ActionRotateCCW,
		"p":      ActionPause,
		"r":      ActionRestart,
		"esc":    ActionBack,
		"b":      ActionBack,
		"q":      ActionQuit,
		"ctrl+c": ActionQuit,
	}
}

// Map returns the action bound to key, or ActionNone for unbound keys.
func (k KeyMap) Map(key string) Action {
	if a, ok := k[key]; ok {
		return a
	}
	return ActionNone
}
