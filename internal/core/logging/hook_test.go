package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name       string
		setupCtx   func() context.Context
		wantFields map[string]string
		wantAbsent []string
	}{
		{
			name: "notification id and source",
			setupCtx: func() context.Context {
				ctx := WithNotificationID(context.Background(), "n-123")
				return WithSource(ctx, "cli")
			},
			wantFields: map[string]string{"notification_id": "n-123", "source": "cli"},
		},
		{
			name: "only notification id",
			setupCtx: func() context.Context {
				return WithNotificationID(context.Background(), "n-123")
			},
			wantFields: map[string]string{"notification_id": "n-123"},
			wantAbsent: []string{"source"},
		},
		{
			name:       "no context values",
			setupCtx:   context.Background,
			wantAbsent: []string{"notification_id", "source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for key, want := range tt.wantFields {
				assert.Equal(t, want, entry[key], "field %s", key)
			}
			for _, key := range tt.wantAbsent {
				assert.NotContains(t, entry, key)
			}
		})
	}
}
