package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/keycap/internal/keybinds"
	"github.com/studiowebux/keycap/internal/types"
)

// ErrCancelled is returned when the user leaves the picker without choosing
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	field    string
	keysText string
	mode     types.CaptureMode
}

func (i item) FilterValue() string {
	return i.field + " " + i.keysText
}

func (i item) Title() string {
	if i.keysText == "" {
		return i.field
	}
	return fmt.Sprintf("%s  %s", i.field, i.keysText)
}

func (i item) Description() string { return string(i.mode) }

type pickerResult int

const (
	pickerCancelled pickerResult = iota
	pickerChosen
	pickerNew
)

type selectorModel struct {
	list     list.Model
	registry *keybinds.Registry
	choice   string
	result   pickerResult
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		action, ok := m.registry.Match(keybinds.ContextPicker, msg.String())
		// While typing a filter only the reserved key is ours
		if m.list.FilterState() == list.Filtering && action != keybinds.ActionQuitForce {
			ok = false
		}
		if ok {
			switch action {
			case keybinds.ActionQuitForce, keybinds.ActionQuit:
				m.result = pickerCancelled
				m.quitting = true
				return m, tea.Quit

			case keybinds.ActionPickerSelect:
				if i, ok := m.list.SelectedItem().(item); ok {
					m.choice = i.field
					m.result = pickerChosen
				}
				m.quitting = true
				return m, tea.Quit

			case keybinds.ActionPickerNew:
				m.result = pickerNew
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render(fmt.Sprintf("↑/↓: navigate • %s: %s • %s: %s • %s: cancel",
		m.registry.GetBindingString(keybinds.ContextPicker, keybinds.ActionPickerSelect), keybinds.ActionPickerSelect.Description(),
		m.registry.GetBindingString(keybinds.ContextPicker, keybinds.ActionPickerNew), keybinds.ActionPickerNew.Description(),
		m.registry.GetBindingString(keybinds.ContextPicker, keybinds.ActionQuit),
	))
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newSelector(records []types.ShortcutRecord, registry *keybinds.Registry) selectorModel {
	items := make([]list.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, item{field: rec.Field, keysText: rec.Shortcut.KeysText, mode: rec.Mode})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select a shortcut field"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	return selectorModel{list: l, registry: registry}
}

// PickField shows an interactive list of stored fields and returns the
// chosen name, or a new name typed by the user.
func PickField(records []types.ShortcutRecord, registry *keybinds.Registry) (string, error) {
	if len(records) == 0 {
		return promptForFieldName(os.Stdin, os.Stderr)
	}

	p := tea.NewProgram(newSelector(records, registry))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	switch result.result {
	case pickerChosen:
		return result.choice, nil
	case pickerNew:
		return promptForFieldName(os.Stdin, os.Stderr)
	default:
		return "", ErrCancelled
	}
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// promptForFieldName reads a field name from in
func promptForFieldName(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Field name: ")
	value, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && value == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrCancelled
	}
	return value, nil
}
