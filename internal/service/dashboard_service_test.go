package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/session"
)

// flakyReader fails the first N fetches per view, then defers to stubReader.
type flakyReader struct {
	stubReader
	failures map[string]int
}

func (f *flakyReader) FetchResultSet(ctx context.Context, viewID string, limit int) (*domain.ResultSet, error) {
	f.mu.Lock()
	failing := f.failures[viewID] > 0
	if failing {
		f.failures[viewID]--
	}
	f.mu.Unlock()
	if failing {
		return nil, fmt.Errorf("temporarily unavailable")
	}
	return f.stubReader.FetchResultSet(ctx, viewID, limit)
}

func newDashboardService(reader domain.ViewReader, retries int) (*DashboardService, *session.ColumnCache) {
	cache := session.NewColumnCache()
	return NewDashboardService(reader, cache, 1, 2, retries, time.Millisecond), cache
}

func TestListViewsPeeksEveryView(t *testing.T) {
	reader := &stubReader{
		name: "Sales Overview",
		views: []domain.View{
			{ID: "v1", Name: "Monthly Sales"},
			{ID: "v2", Name: "Regional Detail"},
		},
		results: map[string]*domain.ResultSet{
			"v1": salesResultSet(),
			"v2": salesResultSet(),
		},
	}
	svc, cache := newDashboardService(reader, 0)

	summaries := svc.ListViews(context.Background())
	require.Len(t, summaries, 2)

	assert.Equal(t, "v1", summaries[0].ID)
	assert.Equal(t, "Monthly Sales", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].ColumnCount)
	assert.Empty(t, summaries[0].Err)
	assert.Equal(t, 2, summaries[1].ColumnCount)

	// Peeks warm the session cache for the selection panel.
	assert.Equal(t, 2, cache.Len())
	cols, ok := cache.Get("v2")
	require.True(t, ok)
	assert.Equal(t, "region", cols[0].FieldName)
}

func TestListViewsDegradesFailedPeek(t *testing.T) {
	reader := &stubReader{
		name: "Sales Overview",
		views: []domain.View{
			{ID: "v1", Name: "Monthly Sales"},
			{ID: "v2", Name: "Regional Detail"},
		},
		results: map[string]*domain.ResultSet{"v2": salesResultSet()},
		errs:    map[string]error{"v1": fmt.Errorf("connection refused")},
	}
	svc, cache := newDashboardService(reader, 0)

	summaries := svc.ListViews(context.Background())
	require.Len(t, summaries, 2)

	assert.Equal(t, 0, summaries[0].ColumnCount)
	assert.Contains(t, summaries[0].Err, "connection refused")
	assert.Equal(t, 2, summaries[1].ColumnCount)
	assert.Empty(t, summaries[1].Err)

	_, ok := cache.Get("v1")
	assert.False(t, ok, "failed peek must not warm the cache")
}

func TestListViewsRetriesTransientFailure(t *testing.T) {
	reader := &flakyReader{
		stubReader: stubReader{
			name:    "Sales Overview",
			views:   []domain.View{{ID: "v1", Name: "Monthly Sales"}},
			results: map[string]*domain.ResultSet{"v1": salesResultSet()},
		},
		failures: map[string]int{"v1": 2},
	}
	svc, _ := newDashboardService(reader, 3)

	summaries := svc.ListViews(context.Background())
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].ColumnCount)
	assert.Empty(t, summaries[0].Err, "a retried peek must not report the earlier failures")
}

func TestViewColumnsServedFromCache(t *testing.T) {
	reader := &stubReader{
		name:    "Sales Overview",
		views:   []domain.View{{ID: "v1", Name: "Monthly Sales"}},
		results: map[string]*domain.ResultSet{"v1": salesResultSet()},
	}
	svc, cache := newDashboardService(reader, 0)

	cache.Put("v1", []domain.Column{{FieldName: "cached", Type: domain.ScalarText}})

	cols, err := svc.ViewColumns(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "cached", cols[0].FieldName)
	assert.Zero(t, reader.fetches["v1"], "cache hit must not touch the source")
}

func TestViewColumnsMissFetchesAndWarms(t *testing.T) {
	reader := &stubReader{
		name:    "Sales Overview",
		views:   []domain.View{{ID: "v1", Name: "Monthly Sales"}},
		results: map[string]*domain.ResultSet{"v1": salesResultSet()},
	}
	svc, cache := newDashboardService(reader, 0)

	cols, err := svc.ViewColumns(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "region", cols[0].FieldName)
	assert.Equal(t, 1, reader.fetches["v1"])

	_, ok := cache.Get("v1")
	assert.True(t, ok)

	_, err = svc.ViewColumns(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, reader.fetches["v1"], "second lookup must hit the cache")
}

func TestViewColumnsFetchError(t *testing.T) {
	reader := &stubReader{
		name:  "Sales Overview",
		views: []domain.View{{ID: "v1", Name: "Monthly Sales"}},
		errs:  map[string]error{"v1": fmt.Errorf("connection refused")},
	}
	svc, _ := newDashboardService(reader, 0)

	_, err := svc.ViewColumns(context.Background(), "v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v1")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRefreshViewsClearsCache(t *testing.T) {
	reader := &stubReader{
		name:    "Sales Overview",
		views:   []domain.View{{ID: "v1", Name: "Monthly Sales"}},
		results: map[string]*domain.ResultSet{"v1": salesResultSet()},
	}
	svc, cache := newDashboardService(reader, 0)

	cache.Put("gone", []domain.Column{{FieldName: "old", Type: domain.ScalarText}})

	summaries := svc.RefreshViews(context.Background())
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].ColumnCount)

	_, ok := cache.Get("gone")
	assert.False(t, ok)
	_, ok = cache.Get("v1")
	assert.True(t, ok, "refresh re-peeks and re-warms")
}

func TestDashboardName(t *testing.T) {
	svc, _ := newDashboardService(&stubReader{name: "Sales Overview"}, 0)
	assert.Equal(t, "Sales Overview", svc.DashboardName())
}
