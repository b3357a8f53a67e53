package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
)

// IngestCSV reads headerless CSV rows for table t's data — one row per
// entity-event, not one row per entity. The field named "id" in
// t.CSVOrdering holds a raw, file-local id string; the first row to use a
// given raw id string allocates a fresh internal id via db.NextID, and
// every later row repeating that same raw string is folded into the same
// entity instead of minting a new one. A parse failure on one non-time
// field aborts only that field's datum; every other field of the row, and
// every other row in the file, still gets ingested. A row whose time field
// fails to parse contributes no datums at all, since every datum of the
// row takes its time from that field. All such failures are collected and
// returned together once the file is exhausted.
func IngestCSV(db *coldb.Db, t TableDef, r io.Reader) error {
	idPos, timePos := -1, -1
	for i, f := range t.CSVOrdering {
		switch f {
		case "id":
			idPos = i
		case "time":
			timePos = i
		}
	}
	if idPos < 0 || timePos < 0 {
		return fmt.Errorf("schema: table %s: csv_ordering must include id and time", t.Name)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(t.CSVOrdering)

	rawToID := map[string]uint64{}
	var rowErrs []error

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errs.IO(err)
		}

		id, ok := rawToID[record[idPos]]
		if !ok {
			id, err = db.NextID(t.Name)
			if err != nil {
				return err
			}
			rawToID[record[idPos]] = id
		}

		timeVal, err := strconv.ParseUint(record[timePos], 10, 64)
		if err != nil {
			rowErrs = append(rowErrs, errs.ParseErr(coldb.ColumnName{Table: t.Name, Column: "time"}.String(), "Int"))
			continue
		}
		timeCol := coldb.ColumnName{Table: t.Name, Column: "time"}
		if err := db.AddDatum(timeCol, id, record[timePos], timeVal); err != nil {
			rowErrs = append(rowErrs, err)
		}

		for i, f := range t.CSVOrdering {
			if f == "id" || f == "time" {
				continue
			}
			col := coldb.ColumnName{Table: t.Name, Column: f}
			if err := db.AddDatum(col, id, record[i], timeVal); err != nil {
				rowErrs = append(rowErrs, err)
			}
		}
	}
	return errors.Join(rowErrs...)
}
