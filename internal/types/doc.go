/*
Package types defines the data structures shared across keycap.

# Shortcut

Shortcut is the value a capture session produces:

	{
	  "keys": "Control+a",
	  "keysText": "Ctrl+A"
	}

Keys is the canonical form used for matching. KeysText is the label shown to
the user and may be edited by hand. Both are "+" joined and must contain the
same number of tokens. A literal "+" key is a valid token ("Control++").

# Capture Mode

CaptureMode decides the vocabulary of raw tokens:
  - content: the printed character of the key ("a", "A", "+")
  - code: the physical key code ("KeyA", "Equal")

The mode is read from the sibling field named by ModeFieldName.

# Records

ShortcutRecord and HistoryEntry are the storage shapes used by the store
package and by import/export.
*/
package types
