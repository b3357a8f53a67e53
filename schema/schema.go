// Package schema loads a TOML-shaped table schema and ingests headerless
// CSV data against it. Every table gets an implicit "id" and "time" Int
// column whether or not the schema file lists them; csv_ordering instead
// says where in each physical CSV row those and the declared columns
// fall. One schema file describes exactly one table, per spec.md §6:
//
//	table = "<name>"
//	csv_ordering = ["<col>", "<col>", ...]
//	[columns]
//	<col> = "Bool" | "Int" | "String"
package schema

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
)

// ColumnDef declares one non-implicit column of a table.
type ColumnDef struct {
	Name string
	Type string
}

// TableDef describes one table: its declared columns plus the physical
// field order a CSV ingest file uses for it.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	CSVOrdering []string
}

// fileFormat is the raw TOML shape of a schema file.
type fileFormat struct {
	Table       string            `toml:"table"`
	CSVOrdering []string          `toml:"csv_ordering"`
	Columns     map[string]string `toml:"columns"`
}

// Load decodes a TOML schema file, validates its csv_ordering, and
// returns the table it describes.
func Load(path string) (*TableDef, error) {
	var f fileFormat
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errs.IO(err)
	}

	def := TableDef{
		Name:        f.Table,
		CSVOrdering: f.CSVOrdering,
	}
	// TOML map decoding order is unspecified; sort by name so a schema's
	// column order is deterministic across loads.
	names := make([]string, 0, len(f.Columns))
	for name := range f.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def.Columns = append(def.Columns, ColumnDef{Name: name, Type: f.Columns[name]})
	}

	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// validate checks that csv_ordering is exactly a permutation of "id",
// "time", and every declared column name — no fewer, no more, no
// duplicates.
func (t TableDef) validate() error {
	if t.Name == "" {
		return fmt.Errorf("schema: missing table name")
	}
	want := map[string]bool{"id": true, "time": true}
	for _, c := range t.Columns {
		if _, dup := want[c.Name]; dup {
			return fmt.Errorf("schema: table %s: column %q collides with an implicit column", t.Name, c.Name)
		}
		want[c.Name] = true
	}

	seen := map[string]bool{}
	for _, f := range t.CSVOrdering {
		if !want[f] {
			return fmt.Errorf("schema: table %s: csv_ordering names unknown field %q", t.Name, f)
		}
		if seen[f] {
			return fmt.Errorf("schema: table %s: csv_ordering repeats field %q", t.Name, f)
		}
		seen[f] = true
	}
	if len(seen) != len(want) {
		return fmt.Errorf("schema: table %s: csv_ordering must list every column exactly once", t.Name)
	}
	return nil
}

// columnType maps a schema type name to its coldb.ColumnType.
func columnType(name string) (coldb.ColumnType, error) {
	switch name {
	case "Bool":
		return coldb.TypeBool, nil
	case "Int":
		return coldb.TypeInt, nil
	case "String":
		return coldb.TypeString, nil
	default:
		return 0, fmt.Errorf("schema: unknown column type %q", name)
	}
}

// ApplyTo registers the table and its columns — including the implicit
// id/time Int columns — against db.
func (t TableDef) ApplyTo(db *coldb.Db) error {
	if err := db.AddColumn(coldb.IDColumn(t.Name), coldb.TypeInt); err != nil {
		return err
	}
	if err := db.AddColumn(coldb.ColumnName{Table: t.Name, Column: "time"}, coldb.TypeInt); err != nil {
		return err
	}
	for _, c := range t.Columns {
		ct, err := columnType(c.Type)
		if err != nil {
			return err
		}
		if err := db.AddColumn(coldb.ColumnName{Table: t.Name, Column: c.Name}, ct); err != nil {
			return err
		}
	}
	return nil
}
