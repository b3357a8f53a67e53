// Package snapshot serializes and restores a coldb.Db. It lives outside
// coldb rather than as Db methods so the codec can depend on coldb
// without coldb ever needing to depend back on a wire format — the same
// one-directional layering the teacher keeps between its core package
// and its own storage package.
package snapshot

import (
	"encoding/gob"
	"errors"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
)

// data is the on-disk shape of a Db: its exported fields, gob-encoded and
// zstd-compressed.
type data struct {
	Cols        map[coldb.ColumnName]*coldb.Column
	Ids         map[string]map[uint64]struct{}
	EntityCount uint64
}

// Write snapshots db to path as a zstd-compressed gob stream, overwriting
// any existing file.
func Write(db *coldb.Db, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IO(err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errs.Codec(err)
	}

	enc := gob.NewEncoder(zw)
	payload := data{Cols: db.Cols, Ids: db.Ids, EntityCount: db.EntityCount}
	if err := enc.Encode(payload); err != nil {
		zw.Close()
		return errs.Codec(err)
	}
	if err := zw.Close(); err != nil {
		return errs.Codec(err)
	}
	return nil
}

// Load restores a Db from path. A missing file is not an error — it
// creates an empty file at path and yields a fresh, empty Db, so a
// first-run "add" against a snapshot path that doesn't exist yet just
// works.
func Load(path string) (*coldb.Db, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		created, err := os.Create(path)
		if err != nil {
			return nil, errs.IO(err)
		}
		created.Close()
		return coldb.NewDb(), nil
	}
	if err != nil {
		return nil, errs.IO(err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, errs.Codec(err)
	}
	defer zr.Close()

	var payload data
	if err := gob.NewDecoder(zr).Decode(&payload); err != nil {
		return nil, errs.Codec(err)
	}

	return &coldb.Db{
		Cols:        payload.Cols,
		Ids:         payload.Ids,
		EntityCount: payload.EntityCount,
	}, nil
}
