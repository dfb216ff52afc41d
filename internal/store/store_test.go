package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/keycap/internal/logging"
	"github.com/studiowebux/keycap/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "keycap.db"))
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_SaveAndGet(t *testing.T) {
	m := newTestManager(t)

	err := m.Save(Commit{
		Field:    "copy",
		Mode:     types.ModeContent,
		Shortcut: types.Shortcut{Keys: "Control+c", KeysText: "Ctrl+C"},
		Reason:   types.ReasonKey,
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	rec, err := m.Get("copy")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.Shortcut.Keys != "Control+c" || rec.Shortcut.KeysText != "Ctrl+C" {
		t.Errorf("shortcut = %+v", rec.Shortcut)
	}
	if rec.Mode != types.ModeContent {
		t.Errorf("mode = %q, want content", rec.Mode)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestManager_SaveKeepsModeWhenEmpty(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save(Commit{Field: "f", Shortcut: types.Shortcut{Keys: "a", KeysText: "A"}, Reason: types.ReasonKey}); err != nil {
		t.Fatal(err)
	}
	rec, _ := m.Get("f")
	if rec.Mode != types.ModeCode {
		t.Errorf("new field mode = %q, want code", rec.Mode)
	}

	if err := m.SetMode("f", types.ModeContent); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(Commit{Field: "f", Shortcut: types.Shortcut{Keys: "a+b", KeysText: "A+B"}, Reason: types.ReasonKey}); err != nil {
		t.Fatal(err)
	}
	rec, _ = m.Get("f")
	if rec.Mode != types.ModeContent {
		t.Errorf("mode = %q, want content kept", rec.Mode)
	}
	if rec.Shortcut.Keys != "a+b" {
		t.Errorf("keys = %q, want a+b", rec.Shortcut.Keys)
	}
}

func TestManager_SaveRequiresField(t *testing.T) {
	m := newTestManager(t)
	if err := m.Save(Commit{}); err == nil {
		t.Error("expected error for empty field")
	}
}

func TestManager_GetNotFound(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestManager_ListOrdered(t *testing.T) {
	m := newTestManager(t)
	for _, f := range []string{"zoom", "copy", "paste"} {
		if err := m.Save(Commit{Field: f, Shortcut: types.Shortcut{Keys: "a", KeysText: "A"}, Reason: types.ReasonKey}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"copy", "paste", "zoom"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, rec := range records {
		if rec.Field != want[i] {
			t.Errorf("records[%d] = %q, want %q", i, rec.Field, want[i])
		}
	}

	count, err := m.GetCount()
	if err != nil || count != 3 {
		t.Errorf("GetCount() = %d, %v", count, err)
	}
}

func TestManager_History(t *testing.T) {
	m := newTestManager(t)
	steps := []struct {
		keys, text string
		reason     types.CommitReason
	}{
		{"Control", "Ctrl", types.ReasonKey},
		{"Control+a", "Ctrl+A", types.ReasonKey},
		{"Control+a+blur", "Ctrl+A+?", types.ReasonBlur},
	}
	for _, s := range steps {
		err := m.Save(Commit{
			Field:     "select",
			Shortcut:  types.Shortcut{Keys: s.keys, KeysText: s.text},
			SessionID: "session-1",
			Reason:    s.reason,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.History("select", 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Shortcut.Keys != "Control+a+blur" || entries[0].Reason != types.ReasonBlur {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if entries[2].Shortcut.Keys != "Control" {
		t.Errorf("oldest entry = %+v", entries[2])
	}
	if entries[0].SessionID != "session-1" {
		t.Errorf("session id = %q", entries[0].SessionID)
	}

	limited, err := m.History("select", 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("History(limit 1) = %d entries, %v", len(limited), err)
	}
}

func TestManager_FindByKeys(t *testing.T) {
	m := newTestManager(t)
	_ = m.Save(Commit{Field: "copy", Shortcut: types.Shortcut{Keys: "Control+c", KeysText: "Ctrl+C"}, Reason: types.ReasonKey})
	_ = m.Save(Commit{Field: "cut", Shortcut: types.Shortcut{Keys: "Control+x", KeysText: "Ctrl+X"}, Reason: types.ReasonKey})
	_ = m.SetMode("empty", types.ModeCode)

	records, err := m.FindByKeys("Control+x")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Field != "cut" {
		t.Errorf("FindByKeys() = %+v", records)
	}

	records, _ = m.FindByKeys("")
	if len(records) != 0 {
		t.Errorf("empty keys matched %d records", len(records))
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(t)
	_ = m.Save(Commit{Field: "copy", Shortcut: types.Shortcut{Keys: "Control+c", KeysText: "Ctrl+C"}, Reason: types.ReasonKey})

	if err := m.Delete("copy"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := m.Get("copy"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	entries, _ := m.History("copy", 0)
	if len(entries) != 0 {
		t.Errorf("history kept %d entries", len(entries))
	}
	if err := m.Delete("copy"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestManager_SaveAll(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	err := m.SaveAll([]Commit{
		{Field: "a", Shortcut: types.Shortcut{Keys: "a", KeysText: "A"}, Reason: types.ReasonImport},
		{Field: "b", Shortcut: types.Shortcut{Keys: "b", KeysText: "B"}, Reason: types.ReasonImport},
	})
	if err != nil {
		t.Fatalf("SaveAll() error: %v", err)
	}
	rec, err := m.Get("b")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.UpdatedAt.Equal(m.now()) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, m.now())
	}

	if err := m.SaveAll([]Commit{{Field: "c"}, {Field: ""}}); err == nil {
		t.Error("expected error for empty field")
	}
	if _, err := m.Get("c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed batch left field c behind: %v", err)
	}
}

func TestSessionPersister(t *testing.T) {
	m := newTestManager(t)
	mode := types.ModeContent
	p := NewSessionPersister(m, func() types.CaptureMode { return mode }, logging.Nop())

	if _, err := uuid.Parse(p.SessionID()); err != nil {
		t.Errorf("session id %q is not a uuid: %v", p.SessionID(), err)
	}

	p.SetValue("copy", types.Shortcut{Keys: "Control", KeysText: "Ctrl"})
	p.SetValueFor("copy", types.Shortcut{Keys: "Control+c", KeysText: "Ctrl+C"}, types.ReasonResync)
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}

	rec, err := m.Get("copy")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Mode != types.ModeContent || rec.Shortcut.KeysText != "Ctrl+C" {
		t.Errorf("record = %+v", rec)
	}

	entries, _ := m.History("copy", 0)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Reason != types.ReasonResync || entries[1].Reason != types.ReasonKey {
		t.Errorf("reasons = %s, %s", entries[0].Reason, entries[1].Reason)
	}
	for _, e := range entries {
		if e.SessionID != p.SessionID() {
			t.Errorf("entry session = %q, want %q", e.SessionID, p.SessionID())
		}
	}

	p.SetValue("", types.Shortcut{Keys: "a"})
	if p.Err() == nil {
		t.Error("expected Err() after failed write")
	}
}
