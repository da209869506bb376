package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies notification_id and source from the event context onto
// log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := GetNotificationID(ctx); id != "" {
		e.Str("notification_id", id)
	}

	if source := GetSource(ctx); source != "" {
		e.Str("source", source)
	}
}
