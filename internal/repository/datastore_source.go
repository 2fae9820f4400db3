package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// DatastoreSource fetches view data from Cloud Datastore kinds. Entities are
// schemaless, so the view must declare its columns to fix the result set
// shape.
type DatastoreSource struct {
	client *datastore.Client
	now    func() time.Time
}

// NewDatastoreSource creates a source backed by the given Datastore client.
func NewDatastoreSource(client *datastore.Client) *DatastoreSource {
	return &DatastoreSource{client: client, now: time.Now}
}

// Fetch queries the view's kind with the active filters applied and converts
// the entities into a result set. A positive limit caps the entity count for
// peek fetches.
func (s *DatastoreSource) Fetch(ctx context.Context, view *dashboard.ViewDef, filters []domain.Filter, limit int) (*domain.ResultSet, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}
	if len(view.Columns) == 0 {
		return nil, fmt.Errorf("view %s has no declared columns; datastore views need an explicit column list", view.ID)
	}
	columns := declaredColumns(view.Columns)

	q := datastore.NewQuery(view.Kind)
	for _, f := range filters {
		q = applyDatastoreFilter(q, f, s.now())
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entities []datastore.PropertyList
	if _, err := s.client.GetAll(ctx, q, &entities); err != nil {
		return nil, fmt.Errorf("failed to query view %s: %w", view.ID, err)
	}

	rs := &domain.ResultSet{Columns: columns}
	for _, props := range entities {
		rs.Rows = append(rs.Rows, rowFromProperties(props, columns))
	}
	return rs, nil
}

// applyDatastoreFilter adds one active filter to the query. Categorical
// filters use the in / not-in operators, ranges and known relative-date
// periods use bound comparisons.
func applyDatastoreFilter(q *datastore.Query, f domain.Filter, now time.Time) *datastore.Query {
	switch f.Kind {
	case domain.FilterRange:
		if f.Min != nil {
			q = q.FilterField(f.Field, ">=", *f.Min)
		}
		if f.Max != nil {
			q = q.FilterField(f.Field, "<=", *f.Max)
		}
		return q
	case domain.FilterRelativeDate:
		if cutoff, ok := periodCutoff(f.Period, now); ok {
			q = q.FilterField(f.Field, ">=", cutoff)
		}
		return q
	default:
		if len(f.Values) == 0 {
			return q
		}
		vals := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			vals[i] = v
		}
		if f.Exclude {
			return q.FilterField(f.Field, "not-in", vals)
		}
		return q.FilterField(f.Field, "in", vals)
	}
}

// rowFromProperties builds a row from an entity's properties by declared
// column order. Missing properties become empty cells.
func rowFromProperties(props datastore.PropertyList, columns []domain.Column) domain.Row {
	byName := make(map[string]interface{}, len(props))
	for _, p := range props {
		byName[p.Name] = p.Value
	}
	row := make(domain.Row, len(columns))
	for i, col := range columns {
		row[i] = newCell(byName[col.FieldName], col.Type)
	}
	return row
}
