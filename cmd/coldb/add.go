package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mkessler/coldb/schema"
	"github.com/mkessler/coldb/snapshot"
)

// runAdd ingests a headerless CSV file into the table its schema file
// declares, creating the db snapshot if it doesn't exist yet and
// appending columns for the table only the first time it's seen.
func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	dbPath := fs.String("db", "", "database snapshot path")
	schemaPath := fs.String("schema", "", "schema TOML file")
	csvPath := fs.String("csv", "", "headerless CSV data file")
	fs.Parse(args)

	if *dbPath == "" || *schemaPath == "" || *csvPath == "" {
		fmt.Fprintln(os.Stderr, "add requires -db, -schema, and -csv")
		fs.Usage()
		os.Exit(1)
	}

	def, err := schema.Load(*schemaPath)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}

	db, err := snapshot.Load(*dbPath)
	if err != nil {
		log.Fatalf("load db: %v", err)
	}

	if !db.HasTable(def.Name) {
		if err := def.ApplyTo(db); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	if err := schema.IngestCSV(db, *def, f); err != nil {
		log.Fatalf("ingest csv: %v", err)
	}
	db.OptimizeColumns()

	if err := snapshot.Write(db, *dbPath); err != nil {
		log.Fatalf("write snapshot: %v", err)
	}
	fmt.Printf("ingested %s into table %q (%s)\n", *csvPath, def.Name, *dbPath)
}
