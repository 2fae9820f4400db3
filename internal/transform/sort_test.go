package transform

import (
	"reflect"
	"testing"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

func TestSortMatrixByShortDateChronological(t *testing.T) {
	m := domain.OutputMatrix{
		{"Label", "Month"},
		{"b", "Feb-2023"},
		{"a", "Jan-2023"},
		{"a", "Mar-2023"},
	}

	got := SortMatrix(m, 1, domain.SortAscending, domain.OutputShortDate)

	want := domain.OutputMatrix{
		{"Label", "Month"},
		{"a", "Jan-2023"},
		{"b", "Feb-2023"},
		{"a", "Mar-2023"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted matrix = %v, want %v", got, want)
	}
}

func TestSortMatrixDateFallbackLayouts(t *testing.T) {
	m := domain.OutputMatrix{
		{"Day"},
		{"2024-03-01"},
		{"2024-01-15"},
		{"2024-02-20"},
	}

	got := SortMatrix(m, 0, domain.SortAscending, domain.OutputFullDate)

	wantOrder := []interface{}{"2024-01-15", "2024-02-20", "2024-03-01"}
	for i, w := range wantOrder {
		if got[i+1][0] != w {
			t.Errorf("row %d = %v, want %v", i+1, got[i+1][0], w)
		}
	}
}

func TestSortMatrixNumeric(t *testing.T) {
	m := domain.OutputMatrix{
		{"Qty"},
		{42.0},
		{"7"},
		{"not a number"},
		{100.0},
	}

	got := SortMatrix(m, 0, domain.SortAscending, domain.OutputNumber)

	// Unparseable values compare as negative infinity and sink to the start
	// when ascending.
	wantOrder := []interface{}{"not a number", "7", 42.0, 100.0}
	for i, w := range wantOrder {
		if got[i+1][0] != w {
			t.Errorf("row %d = %v, want %v", i+1, got[i+1][0], w)
		}
	}
}

func TestSortMatrixNumericDescending(t *testing.T) {
	m := domain.OutputMatrix{
		{"Qty"},
		{"7"},
		{"not a number"},
		{42.0},
	}

	got := SortMatrix(m, 0, domain.SortDescending, domain.OutputNumber)

	wantOrder := []interface{}{42.0, "7", "not a number"}
	for i, w := range wantOrder {
		if got[i+1][0] != w {
			t.Errorf("row %d = %v, want %v", i+1, got[i+1][0], w)
		}
	}
}

func TestSortMatrixTextCaseInsensitive(t *testing.T) {
	m := domain.OutputMatrix{
		{"Name"},
		{"cherry"},
		{"Apple"},
		{"banana"},
	}

	got := SortMatrix(m, 0, domain.SortAscending, domain.OutputText)

	wantOrder := []interface{}{"Apple", "banana", "cherry"}
	for i, w := range wantOrder {
		if got[i+1][0] != w {
			t.Errorf("row %d = %v, want %v", i+1, got[i+1][0], w)
		}
	}
}

func TestSortMatrixStableForEqualKeys(t *testing.T) {
	m := domain.OutputMatrix{
		{"Region", "Seq"},
		{"East", 1},
		{"West", 2},
		{"East", 3},
		{"West", 4},
	}

	got := SortMatrix(m, 0, domain.SortAscending, domain.OutputText)

	want := domain.OutputMatrix{
		{"Region", "Seq"},
		{"East", 1},
		{"East", 3},
		{"West", 2},
		{"West", 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted matrix = %v, want %v", got, want)
	}
}

func TestSortMatrixNoOps(t *testing.T) {
	tests := map[string]struct {
		matrix domain.OutputMatrix
		col    int
	}{
		"negative column": {
			matrix: domain.OutputMatrix{{"A"}, {"z"}, {"a"}},
			col:    -1,
		},
		"column beyond header width": {
			matrix: domain.OutputMatrix{{"A"}, {"z"}, {"a"}},
			col:    5,
		},
		"header only": {
			matrix: domain.OutputMatrix{{"A"}},
			col:    0,
		},
		"empty matrix": {
			matrix: domain.OutputMatrix{},
			col:    0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var want domain.OutputMatrix
			if tc.matrix != nil {
				want = append(want, tc.matrix...)
			}
			got := SortMatrix(tc.matrix, tc.col, domain.SortAscending, domain.OutputText)
			if len(got) != len(tc.matrix) {
				t.Fatalf("row count changed: %d -> %d", len(tc.matrix), len(got))
			}
			for i := range want {
				if !reflect.DeepEqual(got[i], want[i]) {
					t.Errorf("row %d changed: %v -> %v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestSortMatrixHeaderStaysFirst(t *testing.T) {
	m := domain.OutputMatrix{
		{"Name"},
		{"zebra"},
		{"aardvark"},
	}

	got := SortMatrix(m, 0, domain.SortDescending, domain.OutputText)
	if got[0][0] != "Name" {
		t.Errorf("header moved: row 0 = %v", got[0])
	}
	if got[1][0] != "zebra" || got[2][0] != "aardvark" {
		t.Errorf("body order = %v %v, want zebra aardvark", got[1][0], got[2][0])
	}
}
