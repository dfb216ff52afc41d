package types

import "time"

// Shortcut is the persisted value of a shortcut field.
// Keys holds raw key tokens joined by "+", KeysText the matching display labels.
type Shortcut struct {
	Keys     string `json:"keys" yaml:"keys" toml:"keys"`
	KeysText string `json:"keysText" yaml:"keysText" toml:"keysText"`
}

// IsEmpty reports whether nothing has been captured yet
func (s *Shortcut) IsEmpty() bool {
	return s == nil || (s.Keys == "" && s.KeysText == "")
}

// CaptureMode selects which identifier of a key event becomes the raw token
type CaptureMode string

const (
	// ModeContent records the printed character (e.g. "a", "+", "Control")
	ModeContent CaptureMode = "content"
	// ModeCode records the physical key code (e.g. "KeyA", "ControlLeft")
	ModeCode CaptureMode = "code"
)

// ModeFieldName is the sibling field holding the capture mode
const ModeFieldName = "shortcutMode"

// ShortcutRecord is a stored shortcut field
type ShortcutRecord struct {
	Field     string      `json:"field" yaml:"field" toml:"field"`
	Mode      CaptureMode `json:"mode" yaml:"mode" toml:"mode"`
	Shortcut  Shortcut    `json:"shortcut" yaml:"shortcut" toml:"shortcut"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt"`
}

// CommitReason describes why a shortcut value was persisted
type CommitReason string

const (
	ReasonKey    CommitReason = "key"    // Key-down appended a token
	ReasonBlur   CommitReason = "blur"   // Window focus loss appended the sentinel
	ReasonResync CommitReason = "resync" // Display text was re-rendered from keys
	ReasonEdit   CommitReason = "edit"   // Display text edited by the user
	ReasonImport CommitReason = "import" // Value loaded from an export file
)

// HistoryEntry is one committed value of a field
type HistoryEntry struct {
	ID        int64        `json:"id" yaml:"id"`
	Field     string       `json:"field" yaml:"field"`
	SessionID string       `json:"sessionId" yaml:"sessionId"`
	Reason    CommitReason `json:"reason" yaml:"reason"`
	Shortcut  Shortcut     `json:"shortcut" yaml:"shortcut"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
}
