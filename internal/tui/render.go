package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/studiowebux/keycap/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleCapturing = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)
)

// Form rows, counted from the top of the screen. Mouse clicks are mapped
// back to targets with these.
const (
	rowTitle = iota
	rowBlank
	rowTrigger
	rowKeys
	rowText
	rowMode
)

// renderForm renders the title and the four focus targets, one per row
func (m Model) renderForm() string {
	labels := []string{
		m.catalog.T("label:keys", nil),
		m.catalog.T("label:keysText", nil),
		m.catalog.T("label:mode", nil),
	}
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}
	pad := func(s string) string {
		return runewidth.FillRight(s, width) + "  "
	}

	lines := make([]string, 0, rowMode+1)
	lines = append(lines, styleTitle.Render("keycap › "+m.field))
	lines = append(lines, "")

	button := "[ " + m.catalog.T("setShortcut", nil) + " ]"
	lines = append(lines, m.focusStyle(focusTrigger).Render(button))

	keys := m.session.Current().Keys
	switch {
	case m.focus == focusKeys:
		keys = styleCapturing.Render(keys + "▏")
	case !m.session.Enabled():
		if keys == "" {
			keys = m.catalog.T("clickToSet", nil)
		}
		keys = styleSubtle.Render(keys)
	}
	lines = append(lines, pad(labels[0])+keys)

	text := m.text.View()
	if !m.session.TextEnabled() {
		text = m.text.Value()
		if text == "" {
			text = m.text.Placeholder
		}
		text = styleSubtle.Render(text)
	}
	lines = append(lines, pad(labels[1])+text)

	lines = append(lines, pad(labels[2])+m.renderModeToggle())

	return strings.Join(lines, "\n")
}

func (m Model) renderModeToggle() string {
	var parts []string
	for _, mode := range []types.CaptureMode{types.ModeContent, types.ModeCode} {
		label := string(mode)
		if mode == m.mode {
			label = "(•) " + label
		} else {
			label = "( ) " + label
		}
		parts = append(parts, label)
	}
	return m.focusStyle(focusMode).Render(strings.Join(parts, "  "))
}

func (m Model) focusStyle(target focusTarget) lipgloss.Style {
	if m.focus == target {
		return styleSelected
	}
	return lipgloss.NewStyle()
}

// renderMessages renders field errors, conflicts and the status line
func (m Model) renderMessages() string {
	var lines []string
	for _, msg := range m.errors.messages {
		lines = append(lines, styleError.Render("✗ "+msg))
	}
	if len(m.conflicts) > 0 {
		lines = append(lines, styleWarning.Render("⚠ "+m.catalog.T("status:conflict", map[string]string{
			"fields": strings.Join(m.conflicts, ", "),
		})))
	}
	if m.errorMsg != "" {
		lines = append(lines, styleError.Render(m.errorMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, styleSuccess.Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDebug() string {
	return styleSubtle.Render(fmt.Sprintf("state=%s focus=%s window=%t",
		m.session.State(), m.focus, m.windowFocused))
}
