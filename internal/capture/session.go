package capture

import (
	"log/slog"
	"time"

	"github.com/studiowebux/keycap/internal/shortcut"
	"github.com/studiowebux/keycap/internal/types"
)

// State is the capture state of a session
type State int

const (
	StateIdle       State = iota // Not listening for keys
	StateArmed                   // Waiting for the first key after the trigger
	StateCapturing               // Appending keys
	StateMismatched              // Display text was auto-corrected on the last text blur
	StateRemoved                 // Detached from the host
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateCapturing:
		return "capturing"
	case StateMismatched:
		return "mismatched"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Options wire a Session to its host
type Options struct {
	Field        string          // Name of the shortcut field
	Initial      *types.Shortcut // Previously saved value, nil if none
	Fields       FieldLookup     // Sibling fields, read for the capture mode
	Persister    Persister
	Errors       ErrorRenderer
	Translator   Translator
	Normalizer   *shortcut.Normalizer // Defaults to shortcut.Default()
	WindowFocus  func() bool          // Live window focus
	Scheduler    Scheduler            // One-shot timer for the focus re-check
	RecheckDelay time.Duration        // Defaults to 100ms
	Detacher     Detacher
	Logger       *slog.Logger
}

// Session records one shortcut field. All methods must be called from the
// host's event loop.
type Session struct {
	field       string
	fields      FieldLookup
	persister   Persister
	errors      ErrorRenderer
	translator  Translator
	normalizer  *shortcut.Normalizer
	windowFocus func() bool
	detector    *FocusLossDetector
	detacher    Detacher
	logger      *slog.Logger

	state       State
	enabled     bool // raw key input accepts focus and keys
	focused     bool // raw key input holds focus
	textEnabled bool // display input accepts edits, set by the first trigger
	current     types.Shortcut
	committed   *types.Shortcut
}

var _ Handler = (*Session)(nil)

// New creates an idle session with the raw key input disabled
func New(opts Options) *Session {
	s := &Session{
		field:       opts.Field,
		fields:      opts.Fields,
		persister:   opts.Persister,
		errors:      opts.Errors,
		translator:  opts.Translator,
		normalizer:  opts.Normalizer,
		windowFocus: opts.WindowFocus,
		detacher:    opts.Detacher,
		logger:      opts.Logger,
		state:       StateIdle,
	}

	if s.normalizer == nil {
		s.normalizer = shortcut.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	delay := opts.RecheckDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	s.detector = NewFocusLossDetector(opts.Scheduler, delay)

	if opts.Initial != nil {
		s.current = *opts.Initial
		initial := *opts.Initial
		s.committed = &initial
	}

	return s
}

// Field returns the name of the shortcut field
func (s *Session) Field() string { return s.field }

// State returns the capture state
func (s *Session) State() State { return s.state }

// Enabled reports whether the raw key input accepts keys
func (s *Session) Enabled() bool { return s.enabled }

// Focused reports whether the raw key input holds focus
func (s *Session) Focused() bool { return s.focused }

// TextEnabled reports whether the display input accepts edits
func (s *Session) TextEnabled() bool { return s.textEnabled }

// Current returns what the two inputs show right now
func (s *Session) Current() types.Shortcut { return s.current }

// Value returns the last persisted value, nil if nothing was ever saved
func (s *Session) Value() *types.Shortcut {
	if s.committed == nil {
		return nil
	}
	v := *s.committed
	return &v
}

// OnTrigger arms the session: both inputs are cleared and enabled, and the
// raw key input is focused.
func (s *Session) OnTrigger() {
	if s.state == StateRemoved {
		return
	}
	s.current = types.Shortcut{}
	s.enabled = true
	s.focused = true
	s.textEnabled = true
	s.state = StateArmed
	s.logger.Debug("shortcut capture armed", "field", s.field)
}

// OnFocus marks the raw key input focused. A disabled input cannot take focus.
func (s *Session) OnFocus() {
	if s.state == StateRemoved || !s.enabled {
		return
	}
	s.focused = true
}

// OnKeyDown appends the key to the shortcut. It reports whether the event
// was consumed, in which case the host must suppress its default action.
func (s *Session) OnKeyDown(ev KeyEvent) bool {
	if !s.enabled || !s.focused {
		return false
	}
	if s.state != StateArmed && s.state != StateCapturing {
		return false
	}

	raw := s.rawKey(ev)
	if raw == "" {
		return false
	}

	keys, text := s.normalizer.AppendKey(s.current.Keys, s.current.KeysText, raw)
	changed := keys != s.current.Keys || text != s.current.KeysText
	s.current = types.Shortcut{Keys: keys, KeysText: text}
	s.state = StateCapturing

	if changed {
		s.persist(types.ReasonKey)
	}
	return true
}

// OnBlur handles the raw key input losing focus. The input is disabled and,
// if the window itself lost focus, the unknown-key sentinel is appended.
func (s *Session) OnBlur() {
	if s.state == StateRemoved || !s.focused {
		return
	}
	s.focused = false
	s.enabled = false
	if s.state == StateArmed || s.state == StateCapturing {
		s.state = StateIdle
	}

	s.detector.Check(s.windowFocus, s.appendSentinel)
}

// OnTextBlur handles the display input losing focus with text as its
// content. Text that no longer has as many tokens as the keys is replaced
// by the rendering of the keys. It is ignored before the first trigger and
// while the raw key input holds focus.
func (s *Session) OnTextBlur(text string) {
	if s.state == StateRemoved || !s.textEnabled || s.focused {
		return
	}

	s.current.KeysText = text
	if shortcut.IsConsistent(s.current.Keys, text) {
		if s.state == StateMismatched {
			s.state = StateIdle
		}
		s.persist(types.ReasonEdit)
		return
	}

	s.current.KeysText = s.normalizer.Render(s.current.Keys)
	s.state = StateMismatched
	s.logger.Info("shortcut text resynced", "field", s.field, "keys", s.current.Keys, "text", text)
	s.persist(types.ReasonResync)
}

// Validate checks the persisted value and hands translated messages to the
// error renderer. It returns false when any error was raised.
func (s *Session) Validate() (bool, []shortcut.ErrorKind) {
	kinds := shortcut.Validate(s.committed)

	messages := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		messages = append(messages, s.translate(kind.TranslationKey(), nil))
	}

	if s.errors != nil {
		anchors := []string{s.field + ".keys", s.field + ".keysText"}
		if s.errors.Render(messages, anchors) {
			return false, kinds
		}
	}

	return len(kinds) == 0, kinds
}

// Remove detaches the session; later events are ignored
func (s *Session) Remove() {
	if s.state == StateRemoved {
		return
	}
	s.state = StateRemoved
	s.enabled = false
	s.focused = false
	s.textEnabled = false
	if s.detacher != nil {
		s.detacher.Detach()
	}
}

// rawKey picks the key identifier according to the capture mode, which is
// read again on every key since the mode field can change at any time.
func (s *Session) rawKey(ev KeyEvent) string {
	if s.fields != nil {
		if f, ok := s.fields.FindField(types.ModeFieldName); ok && types.CaptureMode(f.Value) == types.ModeContent {
			return ev.Key
		}
	}
	return ev.Code
}

func (s *Session) appendSentinel() {
	if s.state == StateRemoved {
		return
	}
	keys, text := s.normalizer.AppendSentinel(s.current.Keys, s.current.KeysText)
	if keys == s.current.Keys && text == s.current.KeysText {
		return
	}
	s.current = types.Shortcut{Keys: keys, KeysText: text}
	s.logger.Info("window focus lost during capture", "field", s.field, "keys", keys)
	s.persist(types.ReasonBlur)
}

func (s *Session) persist(reason types.CommitReason) {
	value := s.current
	s.committed = &value

	switch p := s.persister.(type) {
	case nil:
	case ReasonedPersister:
		p.SetValueFor(s.field, value, reason)
	default:
		p.SetValue(s.field, value)
	}
}

func (s *Session) translate(key string, params map[string]string) string {
	if s.translator == nil {
		return key
	}
	return s.translator.T(key, params)
}
