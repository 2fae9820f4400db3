package repository

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

func boolQueryJSON(t *testing.T, q *elastic.BoolQuery) string {
	t.Helper()
	src, err := q.Source()
	if err != nil {
		t.Fatalf("query source: %v", err)
	}
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal query: %v", err)
	}
	return string(data)
}

func TestApplyElasticFilterTerms(t *testing.T) {
	q := elastic.NewBoolQuery()
	applyElasticFilter(q, domain.Filter{
		Field:  "category",
		Kind:   domain.FilterCategorical,
		Values: []string{"Hardware", "Accessories"},
	}, time.Now())

	got := boolQueryJSON(t, q)
	if !strings.Contains(got, `"terms"`) || !strings.Contains(got, `"Hardware"`) {
		t.Errorf("expected terms query with values, got %s", got)
	}
	if strings.Contains(got, "must_not") {
		t.Errorf("include filter must not negate, got %s", got)
	}
}

func TestApplyElasticFilterExcludeUsesMustNot(t *testing.T) {
	q := elastic.NewBoolQuery()
	applyElasticFilter(q, domain.Filter{
		Field:   "category",
		Kind:    domain.FilterCategorical,
		Values:  []string{"Discontinued"},
		Exclude: true,
	}, time.Now())

	got := boolQueryJSON(t, q)
	if !strings.Contains(got, "must_not") || !strings.Contains(got, `"Discontinued"`) {
		t.Errorf("expected must_not terms query, got %s", got)
	}
}

func TestApplyElasticFilterRange(t *testing.T) {
	q := elastic.NewBoolQuery()
	applyElasticFilter(q, domain.Filter{
		Field: "price",
		Kind:  domain.FilterRange,
		Min:   floatPtr(100),
		Max:   floatPtr(500),
	}, time.Now())

	got := boolQueryJSON(t, q)
	if !strings.Contains(got, `"range"`) || !strings.Contains(got, "100") || !strings.Contains(got, "500") {
		t.Errorf("expected bounded range query, got %s", got)
	}
}

func TestApplyElasticFilterUnknownPeriodLeavesQueryEmpty(t *testing.T) {
	q := elastic.NewBoolQuery()
	applyElasticFilter(q, domain.Filter{
		Field:  "updated_at",
		Kind:   domain.FilterRelativeDate,
		Period: "Whenever",
	}, time.Now())

	got := boolQueryJSON(t, q)
	if got != `{"bool":{}}` {
		t.Errorf("expected empty bool query, got %s", got)
	}
}

func TestApplyElasticFilterRelativeDate(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	q := elastic.NewBoolQuery()
	applyElasticFilter(q, domain.Filter{
		Field:  "updated_at",
		Kind:   domain.FilterRelativeDate,
		Period: "This year",
	}, now)

	got := boolQueryJSON(t, q)
	if !strings.Contains(got, `"range"`) || !strings.Contains(got, `"updated_at"`) {
		t.Errorf("expected range query on updated_at, got %s", got)
	}
}

func TestRowFromSource(t *testing.T) {
	columns := []domain.Column{
		{FieldName: "product", Type: domain.ScalarText},
		{FieldName: "price", Type: domain.ScalarFloat},
	}

	row, ok := rowFromSource(json.RawMessage(`{"product":"Laptop","price":999.5,"extra":true}`), columns)
	if !ok {
		t.Fatal("expected row to parse")
	}
	if row[0].Display != "Laptop" {
		t.Errorf("product display = %q, want %q", row[0].Display, "Laptop")
	}
	if row[1].Raw != 999.5 || row[1].Display != "999.5" {
		t.Errorf("price cell = %+v, want raw 999.5", row[1])
	}
}

func TestRowFromSourceMissingFieldIsEmpty(t *testing.T) {
	columns := []domain.Column{
		{FieldName: "product", Type: domain.ScalarText},
		{FieldName: "price", Type: domain.ScalarFloat},
	}

	row, ok := rowFromSource(json.RawMessage(`{"product":"Mouse"}`), columns)
	if !ok {
		t.Fatal("expected row to parse")
	}
	if row[1].Raw != nil || row[1].Display != "" {
		t.Errorf("missing field cell = %+v, want empty", row[1])
	}
}

func TestRowFromSourceBadDocumentSkipped(t *testing.T) {
	columns := []domain.Column{{FieldName: "product", Type: domain.ScalarText}}

	if _, ok := rowFromSource(json.RawMessage(`not json`), columns); ok {
		t.Error("expected malformed document to be skipped")
	}
}
