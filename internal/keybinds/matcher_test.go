package keybinds

import (
	"reflect"
	"testing"

	"github.com/studiowebux/keycap/internal/types"
)

func TestCanonicalKeys(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"", ""},
		{"Control+a", "Control+a"},
		{"a+Control", "Control+a"},
		{"Control+blur", "Control"},
		{"blur", ""},
		{"Control++", "++Control"},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			if got := CanonicalKeys(tt.keys); got != tt.want {
				t.Errorf("CanonicalKeys(%q) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestMatcher(t *testing.T) {
	m := NewMatcher([]types.ShortcutRecord{
		{Field: "copy", Shortcut: types.Shortcut{Keys: "Control+c"}},
		{Field: "yank", Shortcut: types.Shortcut{Keys: "c+Control"}},
		{Field: "paste", Shortcut: types.Shortcut{Keys: "Control+v"}},
		{Field: "empty"},
	})

	if got := m.Match("Control+c"); !reflect.DeepEqual(got, []string{"copy", "yank"}) {
		t.Errorf("Match() = %v", got)
	}
	if got := m.Match("Control+x"); len(got) != 0 {
		t.Errorf("Match(unbound) = %v", got)
	}
	if got := m.Match(""); len(got) != 0 {
		t.Errorf("Match(empty) = %v", got)
	}
	if got := m.Conflicts("copy", "Control+c"); !reflect.DeepEqual(got, []string{"yank"}) {
		t.Errorf("Conflicts() = %v", got)
	}
	if got := m.Conflicts("paste", "Control+v"); len(got) != 0 {
		t.Errorf("Conflicts(self only) = %v", got)
	}
}
