// Command coldb loads and queries a column-oriented entity store: "add"
// ingests a headerless CSV file against a TOML schema, "query" runs one
// query against a snapshot and exits, and "repl" opens an interactive
// prompt for running many.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(os.Args[2:])
	case "query":
		runQuery(os.Args[2:])
	case "repl":
		runRepl(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  add    -db PATH -schema PATH -csv PATH     ingest a CSV file\n")
	fmt.Fprintf(os.Stderr, "  query  -db PATH -query TEXT [-verbose]     run one query\n")
	fmt.Fprintf(os.Stderr, "  repl   -db PATH [-verbose]                 interactive mode\n")
}
