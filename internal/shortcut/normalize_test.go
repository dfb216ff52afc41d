package shortcut

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Control", "Ctrl"},
		{"a", "A"},
		{"z", "Z"},
		{"F5", "F5"},
		{"A", "A"},
		{"+", "+"},
		{"ControlLeft", "ControlLeft"},
		{"ab", "ab"},
		{"é", "é"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewNormalizer_Labels(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"Control": "Strg",
		"Meta":    "Cmd",
		"Alt":     "",
	}, "¿")

	if got := n.Normalize("Control"); got != "Strg" {
		t.Errorf("Normalize(Control) = %q, want %q", got, "Strg")
	}
	if got := n.Normalize("Meta"); got != "Cmd" {
		t.Errorf("Normalize(Meta) = %q, want %q", got, "Cmd")
	}
	if got := n.Normalize("Alt"); got != "Alt" {
		t.Errorf("empty label should be ignored, got %q", got)
	}
	if got := n.UnknownLabel(); got != "¿" {
		t.Errorf("UnknownLabel() = %q, want %q", got, "¿")
	}
}

func TestNewNormalizer_Defaults(t *testing.T) {
	n := NewNormalizer(nil, "")

	if got := n.Normalize("Control"); got != DefaultControlLabel {
		t.Errorf("Normalize(Control) = %q, want %q", got, DefaultControlLabel)
	}
	if got := n.UnknownLabel(); got != DefaultUnknownLabel {
		t.Errorf("UnknownLabel() = %q, want %q", got, DefaultUnknownLabel)
	}
}
