package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/capture"
	"github.com/studiowebux/keycap/internal/config"
	"github.com/studiowebux/keycap/internal/i18n"
	"github.com/studiowebux/keycap/internal/keybinds"
	"github.com/studiowebux/keycap/internal/shortcut"
	"github.com/studiowebux/keycap/internal/store"
	"github.com/studiowebux/keycap/internal/types"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// focusTarget is the form element holding focus
type focusTarget int

const (
	focusNone focusTarget = iota
	focusTrigger
	focusKeys
	focusText
	focusMode
)

func (f focusTarget) String() string {
	switch f {
	case focusTrigger:
		return "trigger"
	case focusKeys:
		return "keys"
	case focusText:
		return "text"
	case focusMode:
		return "mode"
	default:
		return "none"
	}
}

// Options configures a capture form
type Options struct {
	Field     string
	Store     *store.Manager
	Catalog   *i18n.Catalog      // Defaults to i18n.Default()
	Keybinds  *keybinds.Registry // Defaults to keybinds.NewDefaultRegistry()
	Settings  config.Settings
	Logger    *slog.Logger
	Clipboard func(string) error // Defaults to clipboard.WriteAll
	Debug     bool               // Show the session state under the form
}

// Model is the capture form for one shortcut field
type Model struct {
	field     string
	store     *store.Manager
	persister *store.SessionPersister
	session   *capture.Session
	catalog   *i18n.Catalog
	keybinds  *keybinds.Registry
	matcher   *keybinds.Matcher
	logger    *slog.Logger
	clipboard func(string) error
	scheduler *tickScheduler
	errors    *fieldErrors

	text          textinput.Model
	help          help.Model
	mode          types.CaptureMode
	focus         focusTarget
	windowFocused bool
	detached      bool
	quitting      bool
	debug         bool

	conflicts []string
	statusMsg string
	statusSeq int
	errorMsg  string

	width  int
	height int
}

// New creates the form for opts.Field, loading its saved value and mode
func New(opts Options) (*Model, error) {
	if strings.TrimSpace(opts.Field) == "" {
		return nil, errors.New("field name is required")
	}
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = i18n.Default()
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	mode := opts.Settings.DefaultMode
	if mode == "" {
		mode = types.ModeContent
	}

	var initial *types.Shortcut
	rec, err := opts.Store.Get(opts.Field)
	switch {
	case err == nil:
		if rec.Mode != "" {
			mode = rec.Mode
		}
		if !rec.Shortcut.IsEmpty() {
			value := rec.Shortcut
			initial = &value
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}

	records, err := opts.Store.List()
	if err != nil {
		return nil, err
	}

	text := textinput.New()
	text.Placeholder = opts.Catalog.T("alternativeText", nil)
	text.Prompt = ""
	text.CharLimit = 256

	m := &Model{
		field:         opts.Field,
		store:         opts.Store,
		catalog:       opts.Catalog,
		keybinds:      opts.Keybinds,
		matcher:       keybinds.NewMatcher(records),
		logger:        opts.Logger.With("field", opts.Field),
		clipboard:     opts.Clipboard,
		scheduler:     newTickScheduler(),
		errors:        &fieldErrors{},
		text:          text,
		help:          help.New(),
		mode:          mode,
		focus:         focusTrigger,
		windowFocused: true,
		debug:         opts.Debug,
	}

	m.persister = store.NewSessionPersister(opts.Store, func() types.CaptureMode { return m.mode }, m.logger)
	m.session = capture.New(capture.Options{
		Field:        opts.Field,
		Initial:      initial,
		Fields:       capture.FieldLookupFunc(m.modeField),
		Persister:    m.persister,
		Errors:       m.errors,
		Translator:   opts.Catalog,
		Normalizer:   opts.Catalog.Normalizer(),
		WindowFocus:  func() bool { return m.windowFocused },
		Scheduler:    m.scheduler,
		RecheckDelay: opts.Settings.BlurRecheck,
		Detacher:     detachFunc(m.detach),
		Logger:       m.logger,
	})

	current := m.session.Current()
	m.text.SetValue(current.KeysText)
	m.conflicts = m.matcher.Conflicts(m.field, current.Keys)

	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.FocusMsg:
		m.windowFocused = true

	case tea.BlurMsg:
		m.windowFocused = false
		if m.focus == focusKeys {
			cmds = append(cmds, m.setFocus(focusNone))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.text.Width = max(10, msg.Width-20)

	case recheckMsg:
		before := m.session.Current()
		m.scheduler.fire(msg.id)
		cmds = append(cmds, m.afterSession(before))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
	}

	cmds = append(cmds, m.scheduler.drain()...)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting || m.detached {
		return ""
	}

	sections := []string{m.renderForm(), ""}
	if messages := m.renderMessages(); messages != "" {
		sections = append(sections, messages, "")
	}
	if m.debug {
		sections = append(sections, m.renderDebug())
	}
	sections = append(sections, m.help.View(buildHelpKeyMap(m.keybinds, m.context())))

	return strings.Join(sections, "\n")
}

// Value returns the last persisted shortcut, nil if nothing was saved
func (m *Model) Value() *types.Shortcut {
	return m.session.Value()
}

// context returns the keybind context for the focused target
func (m *Model) context() keybinds.Context {
	switch m.focus {
	case focusKeys:
		return keybinds.ContextCapture
	case focusText:
		return keybinds.ContextTextInput
	default:
		return keybinds.ContextNormal
	}
}

// canFocus reports whether target accepts focus. Both inputs stay disabled
// until the first trigger, and the raw key input again after a capture ends.
func (m *Model) canFocus(target focusTarget) bool {
	switch target {
	case focusKeys:
		return m.session.Enabled()
	case focusText:
		return m.session.TextEnabled()
	default:
		return true
	}
}

// setFocus moves focus to next, blurring the element that had it. Disabled
// inputs cannot take focus.
func (m *Model) setFocus(next focusTarget) tea.Cmd {
	if next == m.focus || !m.canFocus(next) {
		return nil
	}

	before := m.session.Current()
	prev := m.focus
	m.focus = next

	switch prev {
	case focusKeys:
		m.session.OnBlur()
	case focusText:
		m.text.Blur()
		if m.text.Value() != before.KeysText {
			m.session.OnTextBlur(m.text.Value())
		}
	}

	var cmd tea.Cmd
	switch next {
	case focusKeys:
		m.session.OnFocus()
	case focusText:
		cmd = m.text.Focus()
	}

	return tea.Batch(cmd, m.afterSession(before))
}

// cycleFocus moves focus forward or backward, skipping disabled inputs
func (m *Model) cycleFocus(step int) tea.Cmd {
	order := []focusTarget{focusTrigger, focusKeys, focusText, focusMode}
	idx := 0
	for i, target := range order {
		if target == m.focus {
			idx = i
			break
		}
	}
	for range order {
		idx = (idx + step + len(order)) % len(order)
		if m.canFocus(order[idx]) {
			break
		}
	}
	return m.setFocus(order[idx])
}

// trigger arms a new capture, as clicking "Set shortcut" does
func (m *Model) trigger() tea.Cmd {
	var cmds []tea.Cmd
	if m.focus != focusTrigger {
		cmds = append(cmds, m.setFocus(focusTrigger))
	}

	m.session.OnTrigger()
	m.focus = focusKeys
	m.text.SetValue("")
	m.errors.clear()
	m.conflicts = nil
	m.errorMsg = ""
	cmds = append(cmds, m.setStatusMessage(m.catalog.T("status:armed", nil)))

	return tea.Batch(cmds...)
}

// afterSession refreshes the form from the session after an event that
// may have changed the shortcut.
func (m *Model) afterSession(before types.Shortcut) tea.Cmd {
	current := m.session.Current()
	if m.focus != focusText {
		m.text.SetValue(current.KeysText)
	}

	if err := m.persister.Err(); err != nil {
		m.errorMsg = m.catalog.T("error:saveFailed", map[string]string{"error": err.Error()})
	} else {
		m.errorMsg = ""
	}

	if current == before {
		return nil
	}

	m.errors.clear()
	m.conflicts = m.matcher.Conflicts(m.field, current.Keys)

	switch {
	case shortcut.Contains(current.Keys, shortcut.BlurToken) && !shortcut.Contains(before.Keys, shortcut.BlurToken):
		return m.setStatusMessage(m.catalog.T("status:blur", nil))
	case m.session.State() == capture.StateMismatched:
		return m.setStatusMessage(m.catalog.T("status:resynced", nil))
	default:
		return m.setStatusMessage(m.catalog.T("status:saved", map[string]string{"keys": current.KeysText}))
	}
}

func (m *Model) toggleMode() tea.Cmd {
	if m.mode == types.ModeContent {
		m.mode = types.ModeCode
	} else {
		m.mode = types.ModeContent
	}

	if err := m.store.SetMode(m.field, m.mode); err != nil {
		m.logger.Error("set capture mode failed", "mode", m.mode, "error", err)
		return m.setErrorMessage(m.catalog.T("error:saveFailed", map[string]string{"error": err.Error()}))
	}
	m.logger.Debug("capture mode changed", "mode", m.mode)
	return m.setStatusMessage(m.catalog.T("status:mode", map[string]string{"mode": string(m.mode)}))
}

func (m *Model) validate() tea.Cmd {
	ok, kinds := m.session.Validate()
	if !ok {
		m.logger.Info("shortcut invalid", "errors", len(kinds))
		return nil
	}
	return m.setStatusMessage(m.catalog.T("status:valid", nil))
}

func (m *Model) copyValue() tea.Cmd {
	value := m.session.Value()
	if value.IsEmpty() {
		return m.setErrorMessage(m.catalog.T("error:nothingToCopy", nil))
	}
	if err := m.clipboard(value.Keys); err != nil {
		return m.setErrorMessage(fmt.Sprintf("clipboard: %v", err))
	}
	return m.setStatusMessage(m.catalog.T("status:copied", map[string]string{"keys": value.Keys}))
}

// quit commits a pending text edit and detaches the session
func (m *Model) quit() tea.Cmd {
	if m.focus == focusText {
		m.setFocus(focusNone)
	}
	m.session.Remove()
	m.quitting = true
	return tea.Quit
}

func (m *Model) detach() {
	m.detached = true
	m.errors.clear()
	m.text.Blur()
}

type clearStatusMsg struct {
	seq int
}

func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// setErrorMessage shows msg until the next successful save
func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = msg
	return nil
}
