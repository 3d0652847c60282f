// Package activity records user actions to the audit log.
package activity

import (
	"context"
	"log/slog"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/session"
	"github.com/envaire/salesdesk/internal/store"
)

// Entry is one action to record. The actor comes from the request session.
type Entry struct {
	ActionType    string         `json:"action_type"`
	ActionDetails string         `json:"action_details"`
	TargetType    string         `json:"target_type"`
	TargetID      string         `json:"target_id,omitempty"`
	TargetName    string         `json:"target_name,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	UserAgent     string         `json:"-"`
}

// Logger writes activity entries. Failures are logged and never returned to
// the caller.
type Logger struct {
	store store.ActivityStore
}

// NewLogger creates a Logger. A nil store disables recording.
func NewLogger(s store.ActivityStore) *Logger {
	return &Logger{store: s}
}

// Log records e for the session actor in ctx. Entries without an actor are
// dropped.
func (l *Logger) Log(ctx context.Context, e Entry) {
	if l == nil || l.store == nil {
		return
	}
	sess, ok := session.FromContext(ctx)
	if !ok {
		slog.Debug("activity without session dropped", "action", e.ActionType)
		return
	}

	entry := &domain.ActivityLog{
		UserID:        sess.ActorID,
		UserEmail:     sess.Email,
		ActionType:    e.ActionType,
		ActionDetails: e.ActionDetails,
		TargetType:    e.TargetType,
		TargetID:      e.TargetID,
		TargetName:    e.TargetName,
		Metadata:      e.Metadata,
		UserAgent:     e.UserAgent,
	}
	if err := l.store.Insert(context.WithoutCancel(ctx), entry); err != nil {
		slog.Error("failed to record activity",
			"action", e.ActionType,
			"target", e.TargetType,
			"error", err,
		)
	}
}
