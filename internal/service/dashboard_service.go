package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/session"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/pkg/dataflow"
)

// DashboardService serves the view-selection surface: which views exist, how
// many columns each one has, and the column lists the selection panel is
// built from.
type DashboardService struct {
	reader    domain.ViewReader
	cache     *session.ColumnCache
	peekLimit int
	workers   int
	retries   int
	backoff   time.Duration
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(reader domain.ViewReader, cache *session.ColumnCache, peekLimit, workers, retries int, backoff time.Duration) *DashboardService {
	if peekLimit <= 0 {
		peekLimit = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &DashboardService{
		reader:    reader,
		cache:     cache,
		peekLimit: peekLimit,
		workers:   workers,
		retries:   retries,
		backoff:   backoff,
	}
}

// DashboardName returns the dashboard's display name.
func (ds *DashboardService) DashboardName() string {
	return ds.reader.DashboardName()
}

// viewPeek carries a view and its position through the fan-out so results
// can be written back in listing order.
type viewPeek struct {
	idx  int
	view domain.View
}

// ListViews returns every view with the column count discovered by a peek
// fetch. Peeks fan out over bounded workers with retries; a view whose peek
// still fails degrades to a zero column count carrying the error text.
func (ds *DashboardService) ListViews(ctx context.Context) []domain.ViewSummary {
	views := ds.reader.ListViews()
	summaries := make([]domain.ViewSummary, len(views))
	items := make([]interface{}, len(views))
	for i, v := range views {
		summaries[i] = domain.ViewSummary{View: v}
		items[i] = viewPeek{idx: i, view: v}
	}

	err := dataflow.ForEach(ctx, dataflow.From(ctx, items...), func(item interface{}) error {
		p := item.(viewPeek)
		rs, err := ds.reader.FetchResultSet(ctx, p.view.ID, ds.peekLimit)
		if err != nil {
			summaries[p.idx].ColumnCount = 0
			summaries[p.idx].Err = err.Error()
			return err
		}
		ds.cache.Put(p.view.ID, rs.Columns)
		summaries[p.idx].ColumnCount = len(rs.Columns)
		summaries[p.idx].Err = ""
		return nil
	},
		dataflow.WithWorkers(ds.workers),
		dataflow.WithRetry(ds.retries, func(attempt int) time.Duration {
			return time.Duration(attempt) * ds.backoff
		}),
		dataflow.WithErrorHandler(func(err error) bool {
			logger.WarnLog(ctx, "View peek failed: %v", err)
			return true
		}),
	)
	if err != nil {
		logger.WarnLog(ctx, "View listing interrupted: %v", err)
	}

	return summaries
}

// ViewColumns returns a view's columns, served from the session cache when
// warm. A cache miss peeks the view and warms the cache.
func (ds *DashboardService) ViewColumns(ctx context.Context, viewID string) ([]domain.Column, error) {
	if columns, ok := ds.cache.Get(viewID); ok {
		return columns, nil
	}

	rs, err := ds.reader.FetchResultSet(ctx, viewID, ds.peekLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch columns for view %s: %w", viewID, err)
	}
	ds.cache.Put(viewID, rs.Columns)
	return rs.Columns, nil
}

// RefreshViews clears every cached column list and re-enumerates the views.
func (ds *DashboardService) RefreshViews(ctx context.Context) []domain.ViewSummary {
	ds.cache.Clear()
	logger.InfoLog(ctx, "View cache cleared, re-enumerating views")
	return ds.ListViews(ctx)
}
