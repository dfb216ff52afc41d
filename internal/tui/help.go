package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/studiowebux/keycap/internal/keybinds"
)

// helpActions lists the actions shown in the help line of each context, in order
var helpActions = map[keybinds.Context][]keybinds.Action{
	keybinds.ContextNormal: {
		keybinds.ActionSetShortcut,
		keybinds.ActionEditText,
		keybinds.ActionToggleMode,
		keybinds.ActionValidate,
		keybinds.ActionCopy,
		keybinds.ActionSwitchFocus,
		keybinds.ActionToggleHelp,
		keybinds.ActionQuit,
	},
	keybinds.ContextCapture: {
		keybinds.ActionEndCapture,
		keybinds.ActionQuitForce,
	},
	keybinds.ContextTextInput: {
		keybinds.ActionTextSubmit,
		keybinds.ActionTextCancel,
		keybinds.ActionQuitForce,
	},
}

// helpKeyMap satisfies help.KeyMap with bindings taken from the registry
type helpKeyMap struct {
	short []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding { return k.short }

func (k helpKeyMap) FullHelp() [][]key.Binding {
	rows := make([][]key.Binding, 0, (len(k.short)+3)/4)
	for i := 0; i < len(k.short); i += 4 {
		rows = append(rows, k.short[i:min(i+4, len(k.short))])
	}
	return rows
}

// buildHelpKeyMap reads the current bindings of context, so rebinding in
// keybinds.json shows up in the help line. Unbound actions are left out.
func buildHelpKeyMap(registry *keybinds.Registry, context keybinds.Context) helpKeyMap {
	var bindings []key.Binding
	for _, action := range helpActions[context] {
		keys := registry.GetBinding(context, action)
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), action.Description()),
		))
	}
	return helpKeyMap{short: bindings}
}
