package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

const scrollBatchSize = 1000

// ElasticSource fetches view data from Elasticsearch indices. Documents are
// unordered JSON, so the view must declare its columns to fix the result set
// shape.
type ElasticSource struct {
	client *elastic.Client
	now    func() time.Time
}

// NewElasticSource creates a source backed by the given Elasticsearch client.
func NewElasticSource(client *elastic.Client) *ElasticSource {
	return &ElasticSource{client: client, now: time.Now}
}

// Fetch searches the view's index with the active filters as a bool query.
// A positive limit runs a bounded search for peeks; a full fetch scrolls the
// whole index in batches.
func (s *ElasticSource) Fetch(ctx context.Context, view *dashboard.ViewDef, filters []domain.Filter, limit int) (*domain.ResultSet, error) {
	if len(view.Columns) == 0 {
		return nil, fmt.Errorf("view %s has no declared columns; elasticsearch views need an explicit column list", view.ID)
	}
	columns := declaredColumns(view.Columns)

	query := elastic.NewBoolQuery()
	for _, f := range filters {
		applyElasticFilter(query, f, s.now())
	}

	rs := &domain.ResultSet{Columns: columns}

	if limit > 0 {
		result, err := s.client.Search().
			Index(view.Index).
			Query(query).
			Size(limit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("search failed for view %s: %w", view.ID, err)
		}
		for _, hit := range result.Hits.Hits {
			if row, ok := rowFromSource(hit.Source, columns); ok {
				rs.Rows = append(rs.Rows, row)
			}
		}
		return rs, nil
	}

	scroll := s.client.Scroll(view.Index).
		Query(query).
		Size(scrollBatchSize).
		KeepAlive("2m").
		Sort("_doc", true)

	for {
		result, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scroll failed for view %s: %w", view.ID, err)
		}
		for _, hit := range result.Hits.Hits {
			if row, ok := rowFromSource(hit.Source, columns); ok {
				rs.Rows = append(rs.Rows, row)
			}
		}
	}
	return rs, nil
}

// applyElasticFilter adds one active filter to the bool query. Categorical
// filters become terms queries (must_not when excluding), ranges and known
// relative-date periods become range queries.
func applyElasticFilter(q *elastic.BoolQuery, f domain.Filter, now time.Time) {
	switch f.Kind {
	case domain.FilterRange:
		if f.Min == nil && f.Max == nil {
			return
		}
		r := elastic.NewRangeQuery(f.Field)
		if f.Min != nil {
			r.Gte(*f.Min)
		}
		if f.Max != nil {
			r.Lte(*f.Max)
		}
		q.Filter(r)
	case domain.FilterRelativeDate:
		if cutoff, ok := periodCutoff(f.Period, now); ok {
			q.Filter(elastic.NewRangeQuery(f.Field).Gte(cutoff))
		}
	default:
		if len(f.Values) == 0 {
			return
		}
		vals := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			vals[i] = v
		}
		terms := elastic.NewTermsQuery(f.Field, vals...)
		if f.Exclude {
			q.MustNot(terms)
		} else {
			q.Filter(terms)
		}
	}
}

// rowFromSource builds a row from a hit's _source by declared column order.
// Malformed documents are skipped rather than failing the whole fetch.
func rowFromSource(source json.RawMessage, columns []domain.Column) (domain.Row, bool) {
	var doc map[string]interface{}
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, false
	}
	row := make(domain.Row, len(columns))
	for i, col := range columns {
		row[i] = newCell(doc[col.FieldName], col.Type)
	}
	return row, true
}
