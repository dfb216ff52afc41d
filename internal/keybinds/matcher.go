package keybinds

import (
	"sort"
	"strings"

	"github.com/studiowebux/keycap/internal/shortcut"
	"github.com/studiowebux/keycap/internal/types"
)

// CanonicalKeys reduces raw keys to an order-independent form.
// Focus-loss markers are dropped and duplicate tokens collapse.
func CanonicalKeys(keys string) string {
	seen := make(map[string]bool)
	var tokens []string
	for _, token := range shortcut.SplitTokens(keys) {
		if token == shortcut.BlurToken || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, "+")
}

// Matcher finds the fields bound to a captured key sequence
type Matcher struct {
	fields map[string][]string
}

// NewMatcher indexes the shortcuts of records
func NewMatcher(records []types.ShortcutRecord) *Matcher {
	m := &Matcher{fields: make(map[string][]string)}
	for _, rec := range records {
		m.Add(rec.Field, rec.Shortcut.Keys)
	}
	return m
}

// Add indexes one field. Empty shortcuts are ignored.
func (m *Matcher) Add(field, keys string) {
	canonical := CanonicalKeys(keys)
	if canonical == "" {
		return
	}
	m.fields[canonical] = append(m.fields[canonical], field)
	sort.Strings(m.fields[canonical])
}

// Match returns the fields whose shortcut has the same keys, in any order
func (m *Matcher) Match(keys string) []string {
	return m.fields[CanonicalKeys(keys)]
}

// Conflicts returns the fields other than field that use keys
func (m *Matcher) Conflicts(field, keys string) []string {
	var out []string
	for _, f := range m.Match(keys) {
		if f != field {
			out = append(out, f)
		}
	}
	return out
}
