package stores

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifyStore(t *testing.T) *NotifyStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewNotifyStore(database)
}

func TestNotifyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and list", func(t *testing.T) {
		store := newTestNotifyStore(t)

		n := notify.New(notify.TypeError, "something broke")
		n.Source = "cli"

		seq, err := store.Save(ctx, n)
		require.NoError(t, err)
		assert.Positive(t, seq)

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, n.ID, items[0].ID)
		assert.Equal(t, seq, items[0].Seq)
		assert.Equal(t, notify.TypeError, items[0].Type)
		assert.Equal(t, "something broke", items[0].Message)
		assert.Equal(t, "cli", items[0].Source)
		assert.Equal(t, n.CreatedAt.UnixNano(), items[0].CreatedAt.UnixNano())
	})

	t.Run("save fills defaults", func(t *testing.T) {
		store := newTestNotifyStore(t)

		_, err := store.Save(ctx, notify.Notification{Message: "bare"})
		require.NoError(t, err)

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.NotEmpty(t, items[0].ID)
		assert.Equal(t, notify.TypeInfo, items[0].Type)
	})

	t.Run("unknown type round trips", func(t *testing.T) {
		store := newTestNotifyStore(t)

		_, err := store.Save(ctx, notify.New(notify.Type("warning"), "odd"))
		require.NoError(t, err)

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, notify.Type("warning"), items[0].Type)
	})

	t.Run("list returns newest first and honors limit", func(t *testing.T) {
		store := newTestNotifyStore(t)

		base := time.Now()
		for i, msg := range []string{"first", "second", "third"} {
			n := notify.New(notify.TypeInfo, msg)
			n.CreatedAt = base.Add(time.Duration(i) * time.Second)
			_, err := store.Save(ctx, n)
			require.NoError(t, err)
		}

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "third", items[0].Message)
		assert.Equal(t, "second", items[1].Message)
		assert.Equal(t, "first", items[2].Message)

		items, err = store.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "third", items[0].Message)
	})

	t.Run("since skips excluded source and returns oldest first", func(t *testing.T) {
		store := newTestNotifyStore(t)

		first := notify.New(notify.TypeInfo, "before cursor")
		first.Source = "cli"
		cursor, err := store.Save(ctx, first)
		require.NoError(t, err)

		for _, tc := range []struct{ msg, source string }{
			{"from cli a", "cli"},
			{"from tui", "tui"},
			{"from cli b", "cli"},
		} {
			n := notify.New(notify.TypeSuccess, tc.msg)
			n.Source = tc.source
			_, err := store.Save(ctx, n)
			require.NoError(t, err)
		}

		items, err := store.Since(ctx, cursor, "tui")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "from cli a", items[0].Message)
		assert.Equal(t, "from cli b", items[1].Message)
		assert.Less(t, items[0].Seq, items[1].Seq)
	})

	t.Run("last seq", func(t *testing.T) {
		store := newTestNotifyStore(t)

		seq, err := store.LastSeq(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), seq)

		saved, err := store.Save(ctx, notify.New(notify.TypeInfo, "one"))
		require.NoError(t, err)

		seq, err = store.LastSeq(ctx)
		require.NoError(t, err)
		assert.Equal(t, saved, seq)
	})

	t.Run("clear deletes all", func(t *testing.T) {
		store := newTestNotifyStore(t)

		_, err := store.Save(ctx, notify.New(notify.TypeError, "gone"))
		require.NoError(t, err)

		require.NoError(t, store.Clear(ctx))

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("count", func(t *testing.T) {
		store := newTestNotifyStore(t)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		for range 3 {
			_, err := store.Save(ctx, notify.New(notify.TypeInfo, "msg"))
			require.NoError(t, err)
		}

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("empty list returns empty slice", func(t *testing.T) {
		store := newTestNotifyStore(t)

		items, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		store := newTestNotifyStore(t)

		n := notify.New(notify.TypeInfo, "once")
		_, err := store.Save(ctx, n)
		require.NoError(t, err)

		_, err = store.Save(ctx, n)
		assert.Error(t, err)
	})
}
