/*
Package shortcut implements the token logic behind a captured shortcut.

# Tokens

A shortcut is stored twice: as raw key tokens (Keys) and as display labels
(KeysText). Both are joined with "+". Because "+" is also a key, splitting
recognizes a lone "+" at the start, middle or end as a token of its own:

	SplitTokens("Control++")  // ["Control", "+"]
	SplitTokens("+")          // ["+"]
	SplitTokens("Ctrl+++a")   // ["Ctrl", "+", "a"]

# Components

Normalizer (normalize.go):
  - Maps a raw key to its display label
  - "Control" becomes the localized Ctrl label, single a-z letters are uppercased

Combo builder (combo.go):
  - AppendKey adds one key to both strings, ignoring held-key repeats
  - AppendSentinel records a key the OS swallowed ("blur" / unknown label)

Validation (validate.go):
  - IsConsistent compares token counts
  - Validate reports MissingValue and TokenCountMismatch
  - Render rebuilds KeysText from Keys
*/
package shortcut
