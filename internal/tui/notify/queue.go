package notify

import (
	"slices"
	"sync"

	"github.com/colonyops/toastbar/internal/core/notify"
)

// DefaultMaxVisible caps the queue when no limit is configured.
const DefaultMaxVisible = 5

// Queue is the single owner of the active notification list. Entries are kept
// in insertion order. Views read it through Notifications and remove entries
// only through Dismiss.
type Queue struct {
	mu    sync.Mutex
	items []notify.Notification
	max   int
}

// NewQueue creates an empty queue holding at most maxVisible entries.
// When the limit is exceeded the oldest entries are evicted.
func NewQueue(maxVisible int) *Queue {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	return &Queue{max: maxVisible}
}

// Push appends n, assigning an ID and timestamp when missing, and returns the
// stored record.
func (q *Queue) Push(n notify.Notification) notify.Notification {
	n = n.WithDefaults()

	q.mu.Lock()
	defer q.mu.Unlock()

	if slices.ContainsFunc(q.items, func(x notify.Notification) bool { return x.ID == n.ID }) {
		return n
	}

	q.items = append(q.items, n)
	if len(q.items) > q.max {
		q.items = slices.Clone(q.items[len(q.items)-q.max:])
	}
	return n
}

// Notifications returns a snapshot of the list in insertion order.
func (q *Queue) Notifications() []notify.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// Len returns the number of active notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dismiss removes the entry at index. Out-of-range indexes are ignored and
// report false.
func (q *Queue) Dismiss(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return false
	}
	q.items = slices.Delete(q.items, index, index+1)
	return true
}
