package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

var (
	ErrViewNotFound  = errors.New("view not found in dashboard")
	ErrUnknownSource = errors.New("no source registered for view")
)

// Source fetches a view's result set from one backend. A positive limit is
// a row-count hint for peek calls; zero or negative means the full set. The
// active filters are applied server-side by the backend.
type Source interface {
	Fetch(ctx context.Context, view *ViewDef, filters []domain.Filter, limit int) (*domain.ResultSet, error)
}

// Registry is the runtime face of a dashboard definition: it resolves views
// to their backends, tracks the live filter and parameter state, and
// notifies subscribers when the host reports a change. It implements
// domain.ViewReader and domain.ChangeNotifier.
type Registry struct {
	mu      sync.RWMutex
	def     *Definition
	sources map[string]Source
	filters map[string][]domain.Filter
	params  []domain.Parameter

	filterSubs []func(viewID string)
	paramSubs  []func(name string)
}

// NewRegistry builds a registry seeded with the definition's initial
// filters and parameter values.
func NewRegistry(def *Definition) *Registry {
	r := &Registry{
		def:     def,
		sources: make(map[string]Source),
		filters: make(map[string][]domain.Filter),
	}
	for _, view := range def.Views {
		if len(view.Filters) == 0 {
			continue
		}
		fs := make([]domain.Filter, 0, len(view.Filters))
		for _, fd := range view.Filters {
			fs = append(fs, fd.ToFilter())
		}
		r.filters[view.ID] = fs
	}
	for _, p := range def.Parameters {
		r.params = append(r.params, domain.Parameter{Name: p.Name, Value: p.Value})
	}
	return r
}

// RegisterSource binds a backend implementation to its source name.
func (r *Registry) RegisterSource(name string, s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = s
}

func (r *Registry) DashboardName() string {
	return r.def.Name
}

// ListViews enumerates the dashboard's views in definition order.
func (r *Registry) ListViews() []domain.View {
	views := make([]domain.View, 0, len(r.def.Views))
	for _, v := range r.def.Views {
		views = append(views, domain.View{ID: v.ID, Name: v.Name})
	}
	return views
}

// ViewDef returns the definition of one view.
func (r *Registry) ViewDef(viewID string) (*ViewDef, error) {
	for i := range r.def.Views {
		if r.def.Views[i].ID == viewID {
			return &r.def.Views[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
}

// FetchResultSet retrieves a fresh result set for a view through its
// registered source, applying the view's live filters.
func (r *Registry) FetchResultSet(ctx context.Context, viewID string, limit int) (*domain.ResultSet, error) {
	view, err := r.ViewDef(viewID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	src, ok := r.sources[view.Source]
	filters := r.filters[viewID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s wants %s", ErrUnknownSource, viewID, view.Source)
	}
	return src.Fetch(ctx, view, filters, limit)
}

// ActiveFilters returns the live filters applied to a view.
func (r *Registry) ActiveFilters(viewID string) []domain.Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Filter(nil), r.filters[viewID]...)
}

// Parameters returns the dashboard parameters with their current values.
func (r *Registry) Parameters() []domain.Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Parameter(nil), r.params...)
}

// UpdateViewFilters replaces a view's filter set and notifies subscribers.
func (r *Registry) UpdateViewFilters(viewID string, filters []domain.Filter) error {
	if _, err := r.ViewDef(viewID); err != nil {
		return err
	}

	r.mu.Lock()
	r.filters[viewID] = append([]domain.Filter(nil), filters...)
	subs := make([]func(string), len(r.filterSubs))
	copy(subs, r.filterSubs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(viewID)
	}
	return nil
}

// UpdateParameter sets a parameter's current value, appending it when the
// definition did not declare it, and notifies subscribers.
func (r *Registry) UpdateParameter(name, value string) {
	r.mu.Lock()
	found := false
	for i := range r.params {
		if r.params[i].Name == name {
			r.params[i].Value = value
			found = true
			break
		}
	}
	if !found {
		r.params = append(r.params, domain.Parameter{Name: name, Value: value})
	}
	subs := make([]func(string), len(r.paramSubs))
	copy(subs, r.paramSubs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(name)
	}
}

// OnFilterChanged subscribes to per-view filter changes.
func (r *Registry) OnFilterChanged(fn func(viewID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filterSubs = append(r.filterSubs, fn)
}

// OnParameterChanged subscribes to dashboard parameter changes.
func (r *Registry) OnParameterChanged(fn func(name string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paramSubs = append(r.paramSubs, fn)
}
