package table

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	t := New([]string{"PO Number", "Vendor", "Total"})
	t.Append([]string{"PO3", "Acme Corp", "100.00"})
	t.Append([]string{"PO1", "Beta Supplies", "50.00"})
	t.Append([]string{"PO2", "Acme Corp", "250.00"})
	return t
}

func TestAppend_PadsAndTruncates(t *testing.T) {
	tbl := New([]string{"a", "b"})
	tbl.Append([]string{"only"})
	tbl.Append([]string{"x", "y", "extra"})

	if !reflect.DeepEqual(tbl.Rows[0], []string{"only", ""}) {
		t.Errorf("short row not padded: %v", tbl.Rows[0])
	}
	if !reflect.DeepEqual(tbl.Rows[1], []string{"x", "y"}) {
		t.Errorf("long row not truncated: %v", tbl.Rows[1])
	}
}

func TestSelectColumns_ReorderAndRemove(t *testing.T) {
	tbl := sampleTable()
	view := tbl.SelectColumns([]string{"Total", "PO Number", "Missing"})

	if !reflect.DeepEqual(view.Columns, []string{"Total", "PO Number"}) {
		t.Errorf("unexpected columns: %v", view.Columns)
	}
	if !reflect.DeepEqual(view.Rows[0], []string{"100.00", "PO3"}) {
		t.Errorf("unexpected first row: %v", view.Rows[0])
	}

	// The source table must be untouched.
	if !reflect.DeepEqual(tbl.Columns, []string{"PO Number", "Vendor", "Total"}) {
		t.Errorf("source columns mutated: %v", tbl.Columns)
	}
	if !reflect.DeepEqual(tbl.Rows[0], []string{"PO3", "Acme Corp", "100.00"}) {
		t.Errorf("source rows mutated: %v", tbl.Rows[0])
	}
}

func TestSortBy_Lexicographic(t *testing.T) {
	view := sampleTable().SortBy("Vendor", false)

	got := []string{view.Rows[0][1], view.Rows[1][1], view.Rows[2][1]}
	want := []string{"Acme Corp", "Acme Corp", "Beta Supplies"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSortBy_Numeric(t *testing.T) {
	view := sampleTable().SortBy("Total", false)
	got := []string{view.Rows[0][2], view.Rows[1][2], view.Rows[2][2]}
	want := []string{"50.00", "100.00", "250.00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	desc := sampleTable().SortBy("Total", true)
	if desc.Rows[0][2] != "250.00" {
		t.Errorf("expected descending sort to start with 250.00, got %q", desc.Rows[0][2])
	}
}

func TestSortBy_UnknownColumn(t *testing.T) {
	tbl := sampleTable()
	view := tbl.SortBy("nope", false)
	if !reflect.DeepEqual(view.Rows, tbl.Rows) {
		t.Errorf("unknown column should return rows unchanged")
	}
}

func TestSortByNumber(t *testing.T) {
	view := sampleTable().SortByNumber("PO Number")
	got := []string{view.Rows[0][0], view.Rows[1][0], view.Rows[2][0]}
	want := []string{"PO1", "PO2", "PO3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSortByNumber_MissingNumbersFirst(t *testing.T) {
	tbl := New([]string{"PO Number"})
	tbl.Append([]string{"PO20"})
	tbl.Append([]string{""})
	tbl.Append([]string{"PO5"})

	view := tbl.SortByNumber("PO Number")
	got := []string{view.Rows[0][0], view.Rows[1][0], view.Rows[2][0]}
	want := []string{"", "PO5", "PO20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFilter(t *testing.T) {
	view := sampleTable().Filter("acme")
	if view.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", view.Len())
	}
	for _, row := range view.Rows {
		if row[1] != "Acme Corp" {
			t.Errorf("unexpected row in filter result: %v", row)
		}
	}

	if sampleTable().Filter("").Len() != 3 {
		t.Error("empty query should keep all rows")
	}
	if sampleTable().Filter("zzz").Len() != 0 {
		t.Error("non-matching query should keep no rows")
	}
}

func TestSelectRows(t *testing.T) {
	view := sampleTable().SelectRows([]int{2, 0, 99, -1})
	if view.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", view.Len())
	}
	if view.Rows[0][0] != "PO2" || view.Rows[1][0] != "PO3" {
		t.Errorf("unexpected selection order: %v", view.Rows)
	}
}

func TestViewChain_DoesNotMutateSource(t *testing.T) {
	tbl := sampleTable()
	before := tbl.Clone()

	_ = tbl.Filter("acme").SortBy("Total", true).SelectColumns([]string{"Total"}).SelectRows([]int{0})

	if !reflect.DeepEqual(tbl.Columns, before.Columns) || !reflect.DeepEqual(tbl.Rows, before.Rows) {
		t.Error("view chain mutated the source table")
	}
}
