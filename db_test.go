package coldb

import (
	"strconv"
	"testing"

	"github.com/mkessler/coldb/errs"
)

func seedDb(t *testing.T) *Db {
	t.Helper()
	db := NewDb()
	if err := db.AddColumn(IDColumn("t"), TypeInt); err != nil {
		t.Fatal(err)
	}
	if err := db.AddColumn(ColumnName{"t", "v"}, TypeInt); err != nil {
		t.Fatal(err)
	}
	if err := db.AddColumn(ColumnName{"t", "k"}, TypeString); err != nil {
		t.Fatal(err)
	}

	values := []uint64{10, 20, 30}
	times := []uint64{100, 200, 300}
	keys := []string{"a", "b", "c"}
	for i := range values {
		id, err := db.NextID("t")
		if err != nil {
			t.Fatal(err)
		}
		if err := db.AddDatum(ColumnName{"t", "v"}, id, strconv.FormatUint(values[i], 10), times[i]); err != nil {
			t.Fatal(err)
		}
		if err := db.AddDatum(ColumnName{"t", "k"}, id, keys[i], times[i]); err != nil {
			t.Fatal(err)
		}
	}
	db.OptimizeColumns()
	return db
}

func TestAddColumnRejectsDuplicate(t *testing.T) {
	db := NewDb()
	if err := db.AddColumn(IDColumn("t"), TypeInt); err != nil {
		t.Fatal(err)
	}
	err := db.AddColumn(IDColumn("t"), TypeInt)
	if !errs.Is(err, errs.KindNameAlreadyTaken) {
		t.Fatalf("expected NameAlreadyTaken, got %v", err)
	}
}

func TestNextIDFailsOnUnknownTable(t *testing.T) {
	db := NewDb()
	_, err := db.NextID("ghost")
	if !errs.Is(err, errs.KindNameNotFound) {
		t.Fatalf("expected NameNotFound, got %v", err)
	}
}

func TestNextIDMonotonic(t *testing.T) {
	db := NewDb()
	db.AddColumn(IDColumn("t"), TypeInt)

	a, _ := db.NextID("t")
	b, _ := db.NextID("t")
	if b <= a {
		t.Fatalf("expected strictly increasing ids, got %d then %d", a, b)
	}
	if db.EntityCount <= b {
		t.Fatalf("entity_count (%d) must exceed the max assigned id (%d)", db.EntityCount, b)
	}
}

func TestAddDatumParseErrorDoesNotMutate(t *testing.T) {
	db := NewDb()
	db.AddColumn(IDColumn("t"), TypeInt)
	db.AddColumn(ColumnName{"t", "v"}, TypeInt)
	id, _ := db.NextID("t")

	err := db.AddDatum(ColumnName{"t", "v"}, id, "not-a-number", 1)
	if !errs.Is(err, errs.KindParse) {
		t.Fatalf("expected ParseErr, got %v", err)
	}
	col, _ := db.Column(ColumnName{"t", "v"})
	if col.Len() != 0 {
		t.Fatalf("expected no datum appended on parse failure, got %d", col.Len())
	}
}

func TestOptimizeColumnsSortsByTimeAscending(t *testing.T) {
	db := NewDb()
	db.AddColumn(IDColumn("t"), TypeInt)
	db.AddColumn(ColumnName{"t", "v"}, TypeInt)

	times := []uint64{300, 100, 200}
	for _, tm := range times {
		id, _ := db.NextID("t")
		db.AddDatum(ColumnName{"t", "v"}, id, "1", tm)
	}
	db.OptimizeColumns()

	col, _ := db.Column(ColumnName{"t", "v"})
	for i := 1; i < len(col.Ints); i++ {
		if col.Ints[i-1].Time > col.Ints[i].Time {
			t.Fatalf("datums not sorted by time: %v", col.Ints)
		}
	}
}

func TestOptimizeColumnsComputesTimeSample(t *testing.T) {
	db := seedDb(t)
	// the id column also gets 3 datums; below 5, so no sample.
	idCol, _ := db.Column(IDColumn("t"))
	if idCol.Sampled {
		t.Fatal("expected no time sample for a 3-datum column")
	}

	db2 := NewDb()
	db2.AddColumn(IDColumn("t"), TypeInt)
	db2.AddColumn(ColumnName{"t", "v"}, TypeInt)
	for i := 0; i < 10; i++ {
		id, _ := db2.NextID("t")
		db2.AddDatum(ColumnName{"t", "v"}, id, "1", uint64(i*10))
	}
	db2.OptimizeColumns()
	col, _ := db2.Column(ColumnName{"t", "v"})
	if !col.Sampled {
		t.Fatal("expected a time sample for a 10-datum column")
	}
}
