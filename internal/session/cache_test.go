package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

func TestColumnCachePutGet(t *testing.T) {
	cache := NewColumnCache()

	_, ok := cache.Get("sales")
	assert.False(t, ok)

	cols := []domain.Column{
		{FieldName: "Region", Type: domain.ScalarText},
		{FieldName: "Qty", Type: domain.ScalarInteger},
	}
	cache.Put("sales", cols)

	got, ok := cache.Get("sales")
	assert.True(t, ok)
	assert.Equal(t, cols, got)
	assert.Equal(t, 1, cache.Len())
}

func TestColumnCacheInvalidate(t *testing.T) {
	cache := NewColumnCache()
	cache.Put("sales", []domain.Column{{FieldName: "Region"}})
	cache.Put("headcount", []domain.Column{{FieldName: "Dept"}})

	cache.Invalidate("sales")

	_, ok := cache.Get("sales")
	assert.False(t, ok)
	_, ok = cache.Get("headcount")
	assert.True(t, ok)

	// Invalidating an absent view is harmless.
	cache.Invalidate("missing")
	assert.Equal(t, 1, cache.Len())
}

func TestColumnCacheClear(t *testing.T) {
	cache := NewColumnCache()
	cache.Put("sales", []domain.Column{{FieldName: "Region"}})
	cache.Put("headcount", []domain.Column{{FieldName: "Dept"}})

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("sales")
	assert.False(t, ok)
}

func TestColumnCacheConcurrentAccess(t *testing.T) {
	cache := NewColumnCache()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("view-%d", n%5)
			cache.Put(id, []domain.Column{{FieldName: "f"}})
			cache.Get(id)
			cache.Invalidate(id)
		}(i)
	}
	wg.Wait()

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}
