package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/config"
	"github.com/studiowebux/keycap/internal/logging"
	"github.com/studiowebux/keycap/internal/store"
	"github.com/studiowebux/keycap/internal/types"
)

// testForm bundles a model with its store and a fake clipboard
type testForm struct {
	*Model
	store  *store.Manager
	copied []string
}

// newTestStore opens an empty store in a temporary directory
func newTestStore(t *testing.T) *store.Manager {
	t.Helper()

	st, err := store.NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// createTestForm creates a form for field over st
func createTestForm(t *testing.T, st *store.Manager, field string) *testForm {
	t.Helper()

	f := &testForm{store: st}
	m, err := New(Options{
		Field:    field,
		Store:    st,
		Settings: config.DefaultSettings(),
		Logger:   logging.Nop(),
		Clipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test form: %v", err)
	}
	f.Model = m
	return f
}

func (f *testForm) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.Update(msg)
	return cmd
}

func (f *testForm) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		f.send(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func click(y int) tea.MouseMsg {
	return tea.MouseMsg{X: 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// saved reads the stored shortcut of field
func (f *testForm) saved(t *testing.T, field string) types.ShortcutRecord {
	t.Helper()

	rec, err := f.store.Get(field)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", field, err)
	}
	return *rec
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
