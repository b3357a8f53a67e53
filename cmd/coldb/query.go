package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/exec"
	"github.com/mkessler/coldb/plan"
	"github.com/mkessler/coldb/query"
	"github.com/mkessler/coldb/snapshot"
)

// runQuery loads a snapshot, runs one query against it, prints the
// result as a markdown table, and exits — grounded on the teacher's
// cmd/datalog runSingleQuery, which times execution and reports the
// elapsed milliseconds alongside the result table.
func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	dbPath := fs.String("db", "", "database snapshot path")
	queryText := fs.String("query", "", "query text")
	verbose := fs.Bool("verbose", false, "print per-stage timing to stderr")
	fs.Parse(args)

	if *dbPath == "" || *queryText == "" {
		fmt.Fprintln(os.Stderr, "query requires -db and -query")
		fs.Usage()
		os.Exit(1)
	}

	db, err := snapshot.Load(*dbPath)
	if err != nil {
		log.Fatalf("load db: %v", err)
	}

	result, elapsed, err := runQueryText(db, *queryText, *verbose)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Print(renderResult(result))
	fmt.Printf("_%.3fms_\n", float64(elapsed.Microseconds())/1000.0)
}

// runQueryText parses, plans, and executes one query's text against db.
func runQueryText(db *coldb.Db, text string, verbose bool) (*exec.Result, time.Duration, error) {
	lines, err := query.ParseLines(text)
	if err != nil {
		return nil, 0, fmt.Errorf("parse: %w", err)
	}
	p, err := plan.Build(lines, db)
	if err != nil {
		return nil, 0, fmt.Errorf("plan: %w", err)
	}

	executor := exec.NewExecutor(0)
	if verbose {
		executor = executor.WithTrace(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
	}

	start := time.Now()
	result, err := executor.Execute(context.Background(), p, db)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, fmt.Errorf("execute: %w", err)
	}
	return result, elapsed, nil
}
