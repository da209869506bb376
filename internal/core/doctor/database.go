package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/toastbar/internal/core/notify"
)

// DatabaseCheck verifies that notification history is readable.
type DatabaseCheck struct {
	store notify.Store
	path  string
}

// NewDatabaseCheck creates a database check over store, opened at path.
func NewDatabaseCheck(store notify.Store, path string) *DatabaseCheck {
	return &DatabaseCheck{store: store, path: path}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.store == nil {
		result.Items = append(result.Items, CheckItem{Label: "database", Status: StatusFail, Detail: "not opened"})
		return result
	}
	result.Items = append(result.Items, CheckItem{Label: "database", Status: StatusPass, Detail: c.path})

	count, err := c.store.Count(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "history",
			Status: StatusFail,
			Detail: fmt.Sprintf("unreadable: %v", err),
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{
		Label:  "history",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d notifications", count),
	})

	return result
}
