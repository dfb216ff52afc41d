package capture

import (
	"time"

	"github.com/studiowebux/keycap/internal/types"
)

// KeyEvent is one key-down as seen by the host UI
type KeyEvent struct {
	Key  string // Printed character or logical name ("a", "+", "Control")
	Code string // Physical key code ("KeyA", "Equal", "ControlLeft")
}

// Field is a sibling form field
type Field struct {
	Name  string
	Value string
}

// FieldLookup finds sibling fields; used to read the capture mode
type FieldLookup interface {
	FindField(name string) (Field, bool)
}

// FieldLookupFunc adapts a function to FieldLookup
type FieldLookupFunc func(name string) (Field, bool)

func (f FieldLookupFunc) FindField(name string) (Field, bool) { return f(name) }

// Persister stores the value after every accepted mutation
type Persister interface {
	SetValue(field string, value types.Shortcut)
}

// ReasonedPersister is a Persister that also wants to know why a value changed
type ReasonedPersister interface {
	Persister
	SetValueFor(field string, value types.Shortcut, reason types.CommitReason)
}

// PersisterFunc adapts a function to Persister
type PersisterFunc func(field string, value types.Shortcut)

func (f PersisterFunc) SetValue(field string, value types.Shortcut) { f(field, value) }

// ErrorRenderer shows validation messages next to the given inputs and
// reports whether any error was present.
type ErrorRenderer interface {
	Render(messages []string, anchors []string) bool
}

// Translator supplies every user-visible string
type Translator interface {
	T(key string, params map[string]string) string
}

// Scheduler runs fn once after d
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler
type SchedulerFunc func(d time.Duration, fn func())

func (f SchedulerFunc) After(d time.Duration, fn func()) { f(d, fn) }

// Detacher removes everything the session put into the host UI
type Detacher interface {
	Detach()
}

// Handler is the event surface a host UI drives
type Handler interface {
	OnTrigger()
	OnFocus()
	OnKeyDown(ev KeyEvent) bool
	OnBlur()
	OnTextBlur(text string)
}
