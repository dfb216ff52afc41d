package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // Form navigation, no input focused
	ContextCapture   Context = "capture"    // Raw shortcut input focused; every other key is captured
	ContextTextInput Context = "text_input" // Display text input focused
	ContextPicker    Context = "picker"     // Field picker list
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c), works while capturing

	// Normal mode actions
	ActionQuit        Action = "quit"         // Quit application
	ActionSetShortcut Action = "set_shortcut" // Arm the raw input ("Set shortcut" control)
	ActionSwitchFocus Action = "switch_focus" // Cycle focus between form controls
	ActionEditText    Action = "edit_text"    // Focus the display text input
	ActionToggleMode  Action = "toggle_mode"  // Switch capture mode between content and code
	ActionValidate    Action = "validate"     // Run validation on the current value
	ActionCopy        Action = "copy"         // Copy raw keys to clipboard
	ActionToggleHelp  Action = "toggle_help"  // Show the full help

	// Capture actions
	ActionEndCapture Action = "end_capture" // Leave the raw input (same as clicking elsewhere)

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Leave the display input, keeping the edit
	ActionTextCancel Action = "text_cancel" // Leave the display input, discarding the edit

	// Picker actions
	ActionPickerSelect Action = "picker_select" // Open the selected field
	ActionPickerNew    Action = "picker_new"    // Type the name of a new field
)

// actionDescriptions holds the short help text of each action
var actionDescriptions = map[Action]string{
	ActionQuitForce:    "force quit",
	ActionQuit:         "quit",
	ActionSetShortcut:  "set shortcut",
	ActionSwitchFocus:  "switch focus",
	ActionEditText:     "edit text",
	ActionToggleMode:   "toggle mode",
	ActionValidate:     "validate",
	ActionCopy:         "copy keys",
	ActionToggleHelp:   "help",
	ActionEndCapture:   "stop capturing",
	ActionTextSubmit:   "apply",
	ActionTextCancel:   "cancel",
	ActionPickerSelect: "open field",
	ActionPickerNew:    "new field",
}

// Description returns the short help text for an action
func (a Action) Description() string {
	if desc, ok := actionDescriptions[a]; ok {
		return desc
	}
	return string(a)
}

// IsKnown reports whether the action is handled by the application
func (a Action) IsKnown() bool {
	_, ok := actionDescriptions[a]
	return ok
}
