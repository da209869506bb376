package logging

import "context"

type contextKey string

const (
	notificationIDKey contextKey = "notification_id"
	sourceKey         contextKey = "source"
)

// WithNotificationID adds a notification ID to the context.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// WithSource adds the producing source (tui, cli) to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetNotificationID retrieves the notification ID from the context.
// Returns empty string if not present.
func GetNotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSource retrieves the source from the context.
// Returns empty string if not present.
func GetSource(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey).(string); ok {
		return s
	}
	return ""
}
