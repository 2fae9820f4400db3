package session

import (
	"sync"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ColumnCache remembers the last-fetched column list per view so a user's
// column selection can be resolved by name without refetching. Entries are
// invalidated when the host signals a filter or parameter change on a view,
// and the whole cache is cleared before each export so exports always run
// against freshly fetched data.
type ColumnCache struct {
	mu      sync.RWMutex
	columns map[string][]domain.Column
}

func NewColumnCache() *ColumnCache {
	return &ColumnCache{columns: make(map[string][]domain.Column)}
}

func (c *ColumnCache) Get(viewID string) ([]domain.Column, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cols, ok := c.columns[viewID]
	return cols, ok
}

func (c *ColumnCache) Put(viewID string, cols []domain.Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.columns[viewID] = cols
}

// Invalidate drops one view's entry. Missing entries are a no-op.
func (c *ColumnCache) Invalidate(viewID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.columns, viewID)
}

// Clear drops every entry.
func (c *ColumnCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.columns = make(map[string][]domain.Column)
}

func (c *ColumnCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.columns)
}
