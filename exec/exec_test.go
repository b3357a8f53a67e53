package exec

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/plan"
	"github.com/mkessler/coldb/query"
)

// seedTV builds the canonical 3-row table: t.v:Int[10,20,30]@time[100,200,300],
// t.k:String["a","b","c"].
func seedTV(t *testing.T) *coldb.Db {
	t.Helper()
	db := coldb.NewDb()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(db.AddColumn(coldb.IDColumn("t"), coldb.TypeInt))
	must(db.AddColumn(coldb.ColumnName{Table: "t", Column: "v"}, coldb.TypeInt))
	must(db.AddColumn(coldb.ColumnName{Table: "t", Column: "k"}, coldb.TypeString))

	values := []uint64{10, 20, 30}
	times := []uint64{100, 200, 300}
	keys := []string{"a", "b", "c"}
	for i := 0; i < 3; i++ {
		id, err := db.NextID("t")
		must(err)
		must(db.AddDatum(coldb.ColumnName{Table: "t", Column: "v"}, id, strconv.FormatUint(values[i], 10), times[i]))
		must(db.AddDatum(coldb.ColumnName{Table: "t", Column: "k"}, id, keys[i], times[i]))
	}
	db.OptimizeColumns()
	return db
}

// seedJoin adds a second table u whose fk column points at t's ids, for
// join scenarios: u row 1 -> t id 1, u row 2 -> t id 2.
func seedJoin(t *testing.T, db *coldb.Db) {
	t.Helper()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(db.AddColumn(coldb.IDColumn("u"), coldb.TypeInt))
	must(db.AddColumn(coldb.ColumnName{Table: "u", Column: "fk"}, coldb.TypeInt))

	fks := []uint64{1, 2}
	for i := 0; i < 2; i++ {
		id, err := db.NextID("u")
		must(err)
		must(db.AddDatum(coldb.ColumnName{Table: "u", Column: "fk"}, id, strconv.FormatUint(fks[i], 10), uint64(i)))
	}
	db.OptimizeColumns()
}

func run(t *testing.T, db *coldb.Db, text string) *Result {
	t.Helper()
	lines, err := query.ParseLines(text)
	if err != nil {
		t.Fatal(err)
	}
	p, err := plan.Build(lines, db)
	if err != nil {
		t.Fatal(err)
	}
	result, err := NewExecutor(0).Execute(context.Background(), p, db)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func ints(t *testing.T, rows []Row) []uint64 {
	t.Helper()
	out := make([]uint64, len(rows))
	for i, r := range rows {
		out[i] = r.Value.Int()
	}
	return out
}

// S1: select t.v -> every row, time-ascending.
func TestSelectWithNoWhereReturnsEveryRow(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.v")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, []uint64{10, 20, 30}, ints(t, result.Columns[col]))
}

// S2: select t.v; where t.v > 10 -> [(2,20,200),(3,30,300)].
func TestWhereFiltersByPredicate(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.v\nwhere t.v > 10")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, []uint64{20, 30}, ints(t, result.Columns[col]))
}

// S4: select t.v; where t.id = 1 or t.id = 3 -> [(1,10,100),(3,30,300)].
func TestWhereIDDisjunctionSelectsExactRows(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.v\nwhere t.id = 1 or t.id = 3")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, []uint64{10, 30}, ints(t, result.Columns[col]))
}

// S5 shape: a join keeps only the foreign rows whose target id survived
// the upstream Where.
func TestJoinRestrictsToMatchingForeignKeys(t *testing.T) {
	db := seedTV(t)
	seedJoin(t, db)
	result := run(t, db, "select u.fk\nwhere t.v > 10\njoin t u.fk")
	col := coldb.ColumnName{Table: "u", Column: "fk"}
	// t.v > 10 keeps t ids {2, 3}; only u row fk=2 matches.
	require.Equal(t, []uint64{2}, ints(t, result.Columns[col]))
}

func TestLimitCapsSelectedRows(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.v\nlimit 2")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Len(t, result.Columns[col], 2)
}

// S6 shape: two Where lines over the same column in the same stage must
// fuse and behave as their conjunction rather than overwriting each other.
func TestSameColumnWheresIntersectAcrossTheWholeQuery(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.v\nwhere t.v >= 20\nwhere t.v < 30")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, []uint64{20}, ints(t, result.Columns[col]))
}

// S6: time-bound propagation must narrow the scan without changing which
// rows satisfy the (fused) predicate.
func TestTimeBoundNarrowsWithoutChangingResult(t *testing.T) {
	db := seedTV(t)
	// time > 150 keeps ids {2,3} (t=200,300); intersected with v > 5 (all rows)
	// the narrowing must not change which rows come back.
	result := run(t, db, "select t.v\nwhere t.time > 150\nwhere t.v > 5")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, []uint64{20, 30}, ints(t, result.Columns[col]))
}

// S3: select t.k; where t.v = 20 -> [(2,"b",200)].
func TestSelectStringColumnFilteredByAnotherColumn(t *testing.T) {
	db := seedTV(t)
	result := run(t, db, "select t.k\nwhere t.v = 20")
	col := coldb.ColumnName{Table: "t", Column: "k"}
	rows := result.Columns[col]
	require.Len(t, rows, 1)
	require.Equal(t, uint64(2), rows[0].ID)
	require.Equal(t, "b", rows[0].Value.Str())
	require.Equal(t, uint64(200), rows[0].Time)
}

// Determinism (testable property #4): repeated executions of the same
// plan against the same db must return identical content.
func TestExecuteIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	db := seedTV(t)
	first := run(t, db, "select t.v\nwhere t.v > 10")
	second := run(t, db, "select t.v\nwhere t.v > 10")
	col := coldb.ColumnName{Table: "t", Column: "v"}
	require.Equal(t, ints(t, first.Columns[col]), ints(t, second.Columns[col]))
}
