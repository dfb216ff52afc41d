/*
Package tui implements the terminal shortcut selector for keycap.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: One shortcut field, its capture session and the form state
  - Update: Routes key, mouse and terminal focus messages to the session
  - View: Renders the form, status line and control help

# Key Components

  - model.go: Core state, initialization and the Update loop
  - keys.go: Keyboard handling per keybind context (normal, capture, text_input)
  - host.go: Adapters giving the capture session its scheduler, error
    renderer and sibling field lookup
  - render.go: Form rendering
  - help.go: Control help built from the keybind registry

# The Form

The form holds four targets that take focus in turn:
  - the "Set shortcut" button, which arms a new capture
  - the raw key input, disabled until the button is used
  - the display text input, freely editable
  - the capture mode toggle (content or code)

While the raw key input has focus every key press is recorded, except the
keys bound in the capture context (esc ends the capture by default) and
ctrl+c, which always quits.

# Window Focus

The program enables terminal focus reporting. Losing terminal focus while
capturing blurs the raw key input, and the session records an unknown key
in place of the shortcut the OS swallowed. A focus re-check runs through a
tea.Tick so the session is only ever touched from Update.
*/
package tui
