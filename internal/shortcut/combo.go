package shortcut

// AppendKey adds rawKey to a shortcut being built, using the default labels
func AppendKey(keys, keysText, rawKey string) (string, string) {
	return defaultNormalizer.AppendKey(keys, keysText, rawKey)
}

// AppendKey adds rawKey to keys and its display token to keysText.
// A key already present in keys (a held key repeating) leaves both unchanged.
func (n *Normalizer) AppendKey(keys, keysText, rawKey string) (string, string) {
	return appendPair(keys, keysText, rawKey, n.Normalize(rawKey))
}

// AppendSentinel records a key that could not be observed because the
// window lost focus first.
func (n *Normalizer) AppendSentinel(keys, keysText string) (string, string) {
	return appendPair(keys, keysText, BlurToken, n.unknown)
}

// Contains reports whether rawKey is already one of the tokens of keys
func Contains(keys, rawKey string) bool {
	for _, token := range SplitTokens(keys) {
		if token == rawKey {
			return true
		}
	}
	return false
}

func appendPair(keys, keysText, rawKey, displayKey string) (string, string) {
	if rawKey == "" {
		return keys, keysText
	}
	if keys == "" {
		return rawKey, displayKey
	}
	if Contains(keys, rawKey) {
		return keys, keysText
	}
	return keys + "+" + rawKey, keysText + "+" + displayKey
}
