// Package stores implements the durable stores on top of the SQLite database.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/data/db"
)

const notificationColumns = "seq, id, type, message, source, created_at"

// NotifyStore implements notify.Store using SQLite.
type NotifyStore struct {
	db *db.DB
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a new SQLite-backed notification store.
func NewNotifyStore(db *db.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

// Save persists a notification and returns its sequence number.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	n = n.WithDefaults()

	res, err := s.db.Conn().ExecContext(ctx,
		"INSERT INTO notifications (id, type, message, source, created_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, string(n.Type), n.Message, n.Source, n.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	return seq, nil
}

// List returns up to limit notifications ordered newest first.
func (s *NotifyStore) List(ctx context.Context, limit int) ([]notify.Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications ORDER BY seq DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return result, nil
}

// Since returns notifications newer than seq in insertion order, excluding
// those written by excludeSource.
func (s *NotifyStore) Since(ctx context.Context, seq int64, excludeSource string) ([]notify.Notification, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE seq > ? AND source != ? ORDER BY seq ASC",
		seq, excludeSource,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications since %d: %w", seq, err)
	}

	result, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("list notifications since %d: %w", seq, err)
	}

	return result, nil
}

// LastSeq returns the newest sequence number, or zero when the table is empty.
func (s *NotifyStore) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT MAX(seq) FROM notifications").Scan(&seq); err != nil {
		return 0, fmt.Errorf("last notification seq: %w", err)
	}
	return seq.Int64, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications").Scan(&count); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

func scanNotifications(rows *sql.Rows) ([]notify.Notification, error) {
	defer func() { _ = rows.Close() }()

	result := make([]notify.Notification, 0)
	for rows.Next() {
		var (
			n         notify.Notification
			typ       string
			createdAt int64
		)
		if err := rows.Scan(&n.Seq, &n.ID, &typ, &n.Message, &n.Source, &createdAt); err != nil {
			return nil, err
		}
		n.Type = notify.Type(typ)
		n.CreatedAt = time.Unix(0, createdAt)
		result = append(result, n)
	}

	return result, rows.Err()
}
