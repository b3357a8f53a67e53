package coldb

import (
	"strconv"
	"sync"

	"github.com/mkessler/coldb/errs"
)

// Db is the column store. Cols, Ids, and EntityCount are exported so the
// sibling snapshot package can encode/decode a Db without this package
// depending back on it (the same layering the teacher uses between its
// root datalog package and datalog/storage).
type Db struct {
	mu sync.RWMutex

	Cols        map[ColumnName]*Column
	Ids         map[string]map[uint64]struct{}
	EntityCount uint64
}

// NewDb returns an empty store. Its entity counter starts at 1, so the
// first id NextID hands out is 1.
func NewDb() *Db {
	return &Db{
		Cols:        make(map[ColumnName]*Column),
		Ids:         make(map[string]map[uint64]struct{}),
		EntityCount: 1,
	}
}

// AddColumn registers a new typed column. Adding the table's "id" column
// for the first time is what makes the table "known" to NextID.
func (db *Db) AddColumn(name ColumnName, t ColumnType) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.Cols[name]; exists {
		return errs.NameAlreadyTaken(name.String())
	}
	db.Cols[name] = newColumn(name, t)
	if name.Column == "id" {
		if _, ok := db.Ids[name.Table]; !ok {
			db.Ids[name.Table] = make(map[uint64]struct{})
		}
	}
	return nil
}

// NextID allocates a new entity id for table, records it as live, and
// appends the corresponding datum to the table's implicit id column.
func (db *Db) NextID(table string) (uint64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ids, known := db.Ids[table]
	if !known {
		return 0, errs.NameNotFound(table)
	}

	id := db.EntityCount
	db.EntityCount++
	ids[id] = struct{}{}

	idCol := db.Cols[IDColumn(table)]
	idCol.Ints = append(idCol.Ints, Datum[uint64]{ID: id, Value: id, Time: 0})
	return id, nil
}

// AddDatum parses rawText according to the column's declared type and
// appends it. A parse failure leaves the column unchanged.
func (db *Db) AddDatum(name ColumnName, id uint64, rawText string, time uint64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	col, ok := db.Cols[name]
	if !ok {
		return errs.NameNotFound(name.String())
	}
	if _, ok := db.Ids[name.Table]; !ok {
		return errs.NameNotFound(name.Table)
	}

	switch col.Type {
	case TypeBool:
		v, err := strconv.ParseBool(rawText)
		if err != nil {
			return errs.ParseErr(name.String(), "Bool")
		}
		col.Bools = append(col.Bools, Datum[bool]{ID: id, Value: v, Time: time})
	case TypeInt:
		v, err := strconv.ParseUint(rawText, 10, 64)
		if err != nil {
			return errs.ParseErr(name.String(), "Int")
		}
		col.Ints = append(col.Ints, Datum[uint64]{ID: id, Value: v, Time: time})
	case TypeString:
		col.Strings = append(col.Strings, Datum[string]{ID: id, Value: rawText, Time: time})
	default:
		return errs.ParseErr(name.String(), "Unknown")
	}
	return nil
}

// OptimizeColumns sorts every column by time ascending and computes its
// 5-point time sample. Call once after ingest; the Db is read-only for
// query execution afterward.
func (db *Db) OptimizeColumns() {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, col := range db.Cols {
		col.optimize()
	}
}

// Column returns the named column, if it exists.
func (db *Db) Column(name ColumnName) (*Column, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	c, ok := db.Cols[name]
	return c, ok
}

// TableIDs returns the live id set for table. The executor treats this as
// a read-only view: the Db is immutable once queries start running.
func (db *Db) TableIDs(table string) map[uint64]struct{} {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.Ids[table]
}

// HasTable reports whether table has been registered (its id column added).
func (db *Db) HasTable(table string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.Ids[table]
	return ok
}
