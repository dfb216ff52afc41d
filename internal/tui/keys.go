package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/keybinds"
	"github.com/studiowebux/keycap/internal/keyevent"
)

// handleKeyPress routes key presses based on the focused target
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c is reserved and quits from every context
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.focus {
	case focusKeys:
		return m.handleCaptureKeys(msg)
	case focusText:
		return m.handleTextInputKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys when no input has focus
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m.quit()
	case keybinds.ActionSetShortcut:
		if m.focus == focusMode {
			return m.toggleMode()
		}
		return m.trigger()
	case keybinds.ActionSwitchFocus:
		if strings.HasPrefix(msg.String(), "shift+") {
			return m.cycleFocus(-1)
		}
		return m.cycleFocus(1)
	case keybinds.ActionEditText:
		return m.setFocus(focusText)
	case keybinds.ActionToggleMode:
		return m.toggleMode()
	case keybinds.ActionValidate:
		return m.validate()
	case keybinds.ActionCopy:
		return m.copyValue()
	case keybinds.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// handleCaptureKeys records every key except the ones bound in the capture context
func (m *Model) handleCaptureKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextCapture, msg.String()); ok {
		switch action {
		case keybinds.ActionEndCapture:
			return m.setFocus(focusTrigger)
		case keybinds.ActionQuitForce:
			return m.quit()
		}
	}

	before := m.session.Current()
	for _, ev := range keyevent.FromKeyMsg(msg) {
		m.session.OnKeyDown(ev)
	}
	return m.afterSession(before)
}

// handleTextInputKeys edits the display text
func (m *Model) handleTextInputKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.cycleFocus(1)
		case keybinds.ActionTextCancel:
			// Drop the edit without committing it
			m.text.SetValue(m.session.Current().KeysText)
			m.text.Blur()
			m.focus = focusNone
			return nil
		case keybinds.ActionQuitForce:
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return cmd
}

// handleMouse maps a left click to the form row under the pointer. Clicking
// outside every input blurs the focused one.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch msg.Y {
	case rowTrigger:
		return m.trigger()
	case rowKeys:
		return m.setFocus(focusKeys)
	case rowText:
		return m.setFocus(focusText)
	case rowMode:
		return tea.Batch(m.setFocus(focusMode), m.toggleMode())
	default:
		return m.setFocus(focusNone)
	}
}
