// Package notify defines the notification record shared by the banner, the
// in-memory queue, and durable history.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Type selects the visual treatment of a notification. Values outside the
// known set are kept verbatim and rendered with the info palette.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// Known reports whether t is one of the built-in types.
func (t Type) Known() bool {
	switch t {
	case TypeSuccess, TypeError, TypeInfo:
		return true
	default:
		return false
	}
}

// Notification is a single toast entry. It is immutable once created.
type Notification struct {
	ID        string
	Seq       int64 // assigned by a Store; zero until persisted
	Type      Type
	Message   string
	Source    string
	CreatedAt time.Time
}

// New returns a notification with a fresh ID and the current time.
func New(t Type, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// WithDefaults fills in an ID, type and creation time when they are unset.
func (n Notification) WithDefaults() Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return n
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (n Notification) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", n.ID).
		Str("type", string(n.Type)).
		Str("message", n.Message)
	if n.Source != "" {
		e.Str("source", n.Source)
	}
}

// Store persists notifications to durable storage.
type Store interface {
	// Save persists n and returns its sequence number.
	Save(ctx context.Context, n Notification) (int64, error)
	// List returns up to limit notifications, newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]Notification, error)
	// Since returns notifications with a sequence greater than seq, oldest
	// first, skipping those written by excludeSource.
	Since(ctx context.Context, seq int64, excludeSource string) ([]Notification, error)
	// LastSeq returns the highest sequence number, or zero when empty.
	LastSeq(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
