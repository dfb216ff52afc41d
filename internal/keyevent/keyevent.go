// Package keyevent turns terminal key presses into keyboard key-down events.
//
// A terminal reports a chord as a single message ("ctrl+a"), where a
// keyboard reports one key-down per physical key. FromKeyMsg replays the
// chord as the modifier key-downs followed by the key itself, each with a
// printed value (Key) and a physical code (Code).
package keyevent

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/capture"
)

// Unidentified is the code reported for keys without a known physical position
const Unidentified = "Unidentified"

var (
	control = capture.KeyEvent{Key: "Control", Code: "ControlLeft"}
	alt     = capture.KeyEvent{Key: "Alt", Code: "AltLeft"}
	shift   = capture.KeyEvent{Key: "Shift", Code: "ShiftLeft"}
)

var namedKeys = map[string]capture.KeyEvent{
	"enter":     {Key: "Enter", Code: "Enter"},
	"tab":       {Key: "Tab", Code: "Tab"},
	"esc":       {Key: "Escape", Code: "Escape"},
	"backspace": {Key: "Backspace", Code: "Backspace"},
	"delete":    {Key: "Delete", Code: "Delete"},
	"insert":    {Key: "Insert", Code: "Insert"},
	"home":      {Key: "Home", Code: "Home"},
	"end":       {Key: "End", Code: "End"},
	"pgup":      {Key: "PageUp", Code: "PageUp"},
	"pgdown":    {Key: "PageDown", Code: "PageDown"},
	"up":        {Key: "ArrowUp", Code: "ArrowUp"},
	"down":      {Key: "ArrowDown", Code: "ArrowDown"},
	"left":      {Key: "ArrowLeft", Code: "ArrowLeft"},
	"right":     {Key: "ArrowRight", Code: "ArrowRight"},
}

// punctuation maps unshifted US-layout characters to their key code
var punctuation = map[rune]string{
	' ': "Space", '-': "Minus", '=': "Equal", '[': "BracketLeft", ']': "BracketRight",
	'\\': "Backslash", ';': "Semicolon", '\'': "Quote", ',': "Comma", '.': "Period",
	'/': "Slash", '`': "Backquote",
}

// shifted maps characters typed with Shift to the key code they share
var shifted = map[rune]string{
	'_': "Minus", '+': "Equal", '{': "BracketLeft", '}': "BracketRight", '|': "Backslash",
	':': "Semicolon", '"': "Quote", '<': "Comma", '>': "Period", '?': "Slash", '~': "Backquote",
	'!': "Digit1", '@': "Digit2", '#': "Digit3", '$': "Digit4", '%': "Digit5",
	'^': "Digit6", '&': "Digit7", '*': "Digit8", '(': "Digit9", ')': "Digit0",
}

// FromKeyMsg returns the key-down events for one terminal key press.
// Pastes and multi-rune input produce no events.
func FromKeyMsg(msg tea.KeyMsg) []capture.KeyEvent {
	if msg.Paste {
		return nil
	}

	var events []capture.KeyEvent

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return nil
		}
		if msg.Alt {
			events = append(events, alt)
		}
		return append(events, runeEvents(msg.Runes[0])...)
	}

	name := msg.String()
	if msg.Alt {
		name = strings.TrimPrefix(name, "alt+")
	}

	var hasCtrl, hasShift bool
	for {
		if rest, ok := strings.CutPrefix(name, "ctrl+"); ok && rest != "" {
			hasCtrl, name = true, rest
			continue
		}
		if rest, ok := strings.CutPrefix(name, "shift+"); ok && rest != "" {
			hasShift, name = true, rest
			continue
		}
		break
	}

	if hasCtrl {
		events = append(events, control)
	}
	if msg.Alt {
		events = append(events, alt)
	}

	base, ok := baseEvents(name)
	if !ok {
		return nil
	}
	if hasShift && (len(base) == 0 || base[0] != shift) {
		events = append(events, shift)
	}
	return append(events, base...)
}

func baseEvents(name string) ([]capture.KeyEvent, bool) {
	if ev, ok := namedKeys[name]; ok {
		return []capture.KeyEvent{ev}, true
	}
	if isFunctionKey(name) {
		label := strings.ToUpper(name)
		return []capture.KeyEvent{{Key: label, Code: label}}, true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return runeEvents(r), true
	}
	return nil, false
}

// runeEvents maps a printed character to its key-down events, adding
// Shift for characters that need it on a US layout.
func runeEvents(r rune) []capture.KeyEvent {
	key := string(r)
	switch {
	case r >= 'a' && r <= 'z':
		return []capture.KeyEvent{{Key: key, Code: "Key" + strings.ToUpper(key)}}
	case r >= 'A' && r <= 'Z':
		return []capture.KeyEvent{shift, {Key: key, Code: "Key" + key}}
	case r >= '0' && r <= '9':
		return []capture.KeyEvent{{Key: key, Code: "Digit" + key}}
	}
	if code, ok := punctuation[r]; ok {
		return []capture.KeyEvent{{Key: key, Code: code}}
	}
	if code, ok := shifted[r]; ok {
		return []capture.KeyEvent{shift, {Key: key, Code: code}}
	}
	return []capture.KeyEvent{{Key: key, Code: Unidentified}}
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || len(name) > 3 || name[0] != 'f' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
