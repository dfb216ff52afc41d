package store

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/studiowebux/keycap/internal/types"
)

// SessionPersister writes every value a capture session commits, tagging
// the history rows with one session id.
type SessionPersister struct {
	manager   *Manager
	sessionID string
	mode      func() types.CaptureMode
	logger    *slog.Logger
	lastErr   error
}

// NewSessionPersister starts a new capture session id. mode may be nil.
func NewSessionPersister(m *Manager, mode func() types.CaptureMode, logger *slog.Logger) *SessionPersister {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionPersister{
		manager:   m,
		sessionID: uuid.NewString(),
		mode:      mode,
		logger:    logger,
	}
}

func (p *SessionPersister) SessionID() string { return p.sessionID }

// Err returns the last write failure, if any
func (p *SessionPersister) Err() error { return p.lastErr }

func (p *SessionPersister) SetValue(field string, value types.Shortcut) {
	p.SetValueFor(field, value, types.ReasonKey)
}

// SetValueFor never fails from the caller's point of view; failures are
// logged and kept for Err.
func (p *SessionPersister) SetValueFor(field string, value types.Shortcut, reason types.CommitReason) {
	var mode types.CaptureMode
	if p.mode != nil {
		mode = p.mode()
	}

	err := p.manager.Save(Commit{
		Field:     field,
		Mode:      mode,
		Shortcut:  value,
		SessionID: p.sessionID,
		Reason:    reason,
	})
	p.lastErr = err
	if err != nil {
		p.logger.Error("persist shortcut failed", "field", field, "reason", reason, "error", err)
		return
	}
	p.logger.Debug("shortcut persisted", "field", field, "keys", value.Keys, "reason", reason, "session", p.sessionID)
}
