package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toastbar/internal/core/config"
	"github.com/colonyops/toastbar/internal/core/notify"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(context.Context) Result {
	return Result{Name: c.name, Items: c.items}
}

func TestRunAll_FillsStatusStrings(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{{Label: "x", Status: StatusPass}}},
		staticCheck{name: "b", items: []CheckItem{{Label: "y", Status: StatusWarn}, {Label: "z", Status: StatusFail}}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "pass", results[0].Items[0].StatusStr)
	assert.Equal(t, "warn", results[1].Items[0].StatusStr)
	assert.Equal(t, "fail", results[1].Items[1].StatusStr)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func statuses(r Result) map[string]Status {
	out := make(map[string]Status, len(r.Items))
	for _, item := range r.Items {
		out[item.Label] = item.Status
	}
	return out
}

func TestConfigCheck_Healthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toast:\n  ttl: 5s\n"), 0o644))

	result := NewConfigCheck(validConfig(t), path).Run(context.Background())

	assert.Equal(t, "Configuration", result.Name)
	assert.Equal(t, map[string]Status{
		"config file": StatusPass,
		"validation":  StatusPass,
	}, statuses(result))
}

func TestConfigCheck_MissingFileUsesDefaults(t *testing.T) {
	result := NewConfigCheck(validConfig(t), filepath.Join(t.TempDir(), "none.yaml")).Run(context.Background())

	require.NotEmpty(t, result.Items)
	assert.Contains(t, result.Items[0].Detail, "defaults")
	_, _, failed := Summary([]Result{result})
	assert.Zero(t, failed)
}

func TestConfigCheck_FieldErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Database.MaxOpenConns = 0

	result := NewConfigCheck(cfg, "").Run(context.Background())

	assert.Equal(t, StatusFail, statuses(result)["database.max_open_conns"])
}

func TestConfigCheck_Warnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.Toast.TTL = 100 * time.Millisecond

	result := NewConfigCheck(cfg, "").Run(context.Background())

	assert.Equal(t, StatusWarn, statuses(result)["toast.ttl"])
	assert.Equal(t, StatusPass, statuses(result)["validation"])
}

type countStore struct {
	notify.Store
	count int64
	err   error
}

func (s countStore) Count(context.Context) (int64, error) {
	return s.count, s.err
}

func TestDatabaseCheck(t *testing.T) {
	tests := []struct {
		name   string
		store  notify.Store
		want   map[string]Status
		detail string
	}{
		{
			name:   "healthy",
			store:  countStore{count: 12},
			want:   map[string]Status{"database": StatusPass, "history": StatusPass},
			detail: "12 notifications",
		},
		{
			name:   "unreadable",
			store:  countStore{err: errors.New("no such table")},
			want:   map[string]Status{"database": StatusPass, "history": StatusFail},
			detail: "no such table",
		},
		{
			name:   "not opened",
			store:  nil,
			want:   map[string]Status{"database": StatusFail},
			detail: "not opened",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewDatabaseCheck(tt.store, "/data/toastbar.db").Run(context.Background())

			assert.Equal(t, tt.want, statuses(result))
			last := result.Items[len(result.Items)-1]
			assert.Contains(t, last.Detail, tt.detail)
		})
	}
}
