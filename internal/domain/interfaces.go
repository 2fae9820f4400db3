package domain

import "context"

// ViewReader is the dashboard data access contract the export flow consumes.
// The registry backed by the configured sources implements it.
type ViewReader interface {
	DashboardName() string
	ListViews() []View
	// FetchResultSet retrieves a fresh result set for a view. A positive
	// limit is a row-count hint for cheap peek calls used to discover
	// columns; zero or negative fetches the full set.
	FetchResultSet(ctx context.Context, viewID string, limit int) (*ResultSet, error)
	ActiveFilters(viewID string) []Filter
	Parameters() []Parameter
}

// ChangeNotifier delivers filter and parameter change events so stale
// cached column lists can be invalidated.
type ChangeNotifier interface {
	OnFilterChanged(fn func(viewID string))
	OnParameterChanged(fn func(name string))
}
