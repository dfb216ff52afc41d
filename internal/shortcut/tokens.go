package shortcut

import (
	"github.com/dlclark/regexp2"
)

// separatorPattern matches a "+" separator, or a literal "+" token standing
// alone between separators or string boundaries (captured in group 1).
var separatorPattern = regexp2.MustCompile(`(?:(?:^|\+)(\+)(?:\+|$))|\+`, regexp2.ECMAScript)

// SplitTokens splits a "+" joined shortcut into its tokens.
// A literal "+" key is kept as a token and empty fragments are dropped.
func SplitTokens(s string) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var tokens []string
	last := 0

	m, err := separatorPattern.FindRunesMatch(runes)
	for err == nil && m != nil {
		tokens = appendNonEmpty(tokens, string(runes[last:m.Index]))
		if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
			tokens = appendNonEmpty(tokens, g.String())
		}
		last = m.Index + m.Length
		m, err = separatorPattern.FindNextMatch(m)
	}

	return appendNonEmpty(tokens, string(runes[last:]))
}

// TokenCount returns the number of tokens in a "+" joined shortcut
func TokenCount(s string) int {
	return len(SplitTokens(s))
}

// IsConsistent reports whether keys and keysText have the same number of tokens
func IsConsistent(keys, keysText string) bool {
	return TokenCount(keys) == TokenCount(keysText)
}

func appendNonEmpty(tokens []string, token string) []string {
	if token == "" {
		return tokens
	}
	return append(tokens, token)
}
