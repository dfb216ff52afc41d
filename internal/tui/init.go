package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/types"
)

// Run opens the capture form for opts.Field and returns the last saved
// value once the user quits.
func Run(opts Options) (*types.Shortcut, error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	// Focus reporting drives the unknown-key detection; mouse reporting
	// lets a click elsewhere end the capture.
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return nil, err
	}

	return m.Value(), nil
}
