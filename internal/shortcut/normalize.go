package shortcut

import "strings"

const (
	// ControlKey is the raw name of the Control modifier in content mode
	ControlKey = "Control"

	// BlurToken is the raw token recorded when focus loss hid a key
	BlurToken = "blur"

	// DefaultControlLabel is the display label for Control when no translation is loaded
	DefaultControlLabel = "Ctrl"

	// DefaultUnknownLabel is the display label for BlurToken when no translation is loaded
	DefaultUnknownLabel = "?"
)

// Normalizer maps raw key identifiers to display tokens
type Normalizer struct {
	labels  map[string]string
	unknown string
}

// NewNormalizer creates a normalizer with the given raw key -> label table.
// Control always has a label; it defaults to DefaultControlLabel.
func NewNormalizer(labels map[string]string, unknown string) *Normalizer {
	n := &Normalizer{
		labels:  map[string]string{ControlKey: DefaultControlLabel},
		unknown: unknown,
	}
	for raw, label := range labels {
		if label != "" {
			n.labels[raw] = label
		}
	}
	if n.unknown == "" {
		n.unknown = DefaultUnknownLabel
	}
	return n
}

var defaultNormalizer = NewNormalizer(nil, DefaultUnknownLabel)

// Default returns the untranslated normalizer
func Default() *Normalizer {
	return defaultNormalizer
}

// Normalize returns the display token for a raw key
func (n *Normalizer) Normalize(rawKey string) string {
	if label, ok := n.labels[rawKey]; ok {
		return label
	}
	if isLowerASCIILetter(rawKey) {
		return strings.ToUpper(rawKey)
	}
	return rawKey
}

// UnknownLabel returns the display token used for BlurToken
func (n *Normalizer) UnknownLabel() string {
	return n.unknown
}

// Normalize maps a raw key to its display token using the default labels
func Normalize(rawKey string) string {
	return defaultNormalizer.Normalize(rawKey)
}

func isLowerASCIILetter(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}
