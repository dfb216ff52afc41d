/*
Package keybinds provides the control keymap of the capture form and
runtime matching of captured shortcuts.

# Overview

Two kinds of key bindings live here. Control bindings drive the form itself
(arming the raw input, switching focus, quitting). Captured shortcuts are the
values users record; the Matcher finds which field a key sequence belongs to
and the Validator reports fields that clash.

# Key Concepts

Context Hierarchy:
  - Global: Bindings available everywhere
  - Normal: Form navigation, no input focused
  - Capture: Raw shortcut input focused
  - TextInput: Display text input focused
  - Picker: Field picker list

Keys shadow from specific → global. The capture context is kept almost
empty because every unbound key pressed there becomes part of the shortcut.

# Configuration File Format

Keybindings are stored in JSON format, key → action:

	{
	  "version": "1.0",
	  "normal": {
	    "ctrl+s": "set_shortcut",
	    "s": "none"
	  },
	  "capture": {
	    "esc": "none",
	    "ctrl+]": "end_capture"
	  }
	}

The action "none" removes a default binding.

# Reserved Keys

ctrl+c always force quits, even while capturing. Binding it to another
action is an error.

# Validation

The validator checks for:
  - Invalid key formats
  - Unknown action names
  - Reserved key rebindings
  - Shadowing (warnings, not errors)
  - A capture context without a way out (warning)

ValidateShortcuts applies the same result type to stored shortcuts: token
count mismatches, missing values and fields sharing the same keys.

# Example Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if action, ok := registry.Match(keybinds.ContextNormal, msg.String()); ok {
		// Handle action
	}
*/
package keybinds
