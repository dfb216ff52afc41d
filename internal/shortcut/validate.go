package shortcut

import (
	"strings"

	"github.com/studiowebux/keycap/internal/types"
)

// ErrorKind identifies a structural problem with a shortcut value
type ErrorKind string

const (
	// ErrMissingValue means no shortcut was ever captured
	ErrMissingValue ErrorKind = "missing_value"
	// ErrTokenCountMismatch means Keys and KeysText disagree on token count
	ErrTokenCountMismatch ErrorKind = "token_count_mismatch"
)

// TranslationKey returns the catalog key of the user-facing message
func (k ErrorKind) TranslationKey() string {
	switch k {
	case ErrMissingValue:
		return "error:mustBeFilled"
	case ErrTokenCountMismatch:
		return "error:invalidShortcut"
	default:
		return "error:" + string(k)
	}
}

// Validate checks a shortcut value without repairing it
func Validate(s *types.Shortcut) []ErrorKind {
	if s.IsEmpty() {
		return []ErrorKind{ErrMissingValue}
	}
	if !IsConsistent(s.Keys, s.KeysText) {
		return []ErrorKind{ErrTokenCountMismatch}
	}
	return nil
}

// Render builds the display text for keys, token by token
func (n *Normalizer) Render(keys string) string {
	tokens := SplitTokens(keys)
	labels := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == BlurToken {
			labels = append(labels, n.unknown)
			continue
		}
		labels = append(labels, n.Normalize(token))
	}
	return strings.Join(labels, "+")
}

// Render builds the display text for keys using the default labels
func Render(keys string) string {
	return defaultNormalizer.Render(keys)
}

// Resync returns s with KeysText re-rendered from Keys when the two
// disagree. The second result reports whether a repair happened.
func (n *Normalizer) Resync(s types.Shortcut) (types.Shortcut, bool) {
	if IsConsistent(s.Keys, s.KeysText) {
		return s, false
	}
	s.KeysText = n.Render(s.Keys)
	return s, true
}
