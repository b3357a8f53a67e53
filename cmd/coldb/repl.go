package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mkessler/coldb/snapshot"
)

// runRepl opens an interactive session against a db snapshot: lines
// accumulate into one query until a blank line submits it; "exit" on an
// otherwise-empty buffer terminates the session. Colorized prompt and
// error highlighting follow the teacher's own fatih/color usage in
// datalog/annotations/output.go. Submitted queries persist to a
// per-db ".history" file, so history survives across sessions.
func runRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	dbPath := fs.String("db", "", "database snapshot path")
	verbose := fs.Bool("verbose", false, "print per-stage timing to stderr")
	fs.Parse(args)

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "repl requires -db")
		fs.Usage()
		os.Exit(1)
	}

	db, err := snapshot.Load(*dbPath)
	if err != nil {
		log.Fatalf("load db: %v", err)
	}

	histPath := historyPath(*dbPath)
	history, err := loadHistory(histPath)
	if err != nil {
		log.Fatalf("load history: %v", err)
	}

	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	fmt.Println("coldb repl — blank line submits a query, 'exit' quits")
	if len(history) > 0 {
		fmt.Printf("loaded %d quer%s from %s\n", len(history), plural(len(history)), histPath)
	}
	scanner := bufio.NewScanner(os.Stdin)
	var buf []string

	fmt.Print(prompt("coldb> "))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if len(buf) == 0 {
				fmt.Print(prompt("coldb> "))
				continue
			}
			text := strings.Join(buf, "\n")
			buf = buf[:0]

			if err := appendHistory(histPath, text); err != nil {
				fmt.Println(errColor(fmt.Sprintf("save history: %v", err)))
			}

			result, elapsed, err := runQueryText(db, text, *verbose)
			if err != nil {
				fmt.Println(errColor(err.Error()))
			} else {
				fmt.Print(renderResult(result))
				fmt.Printf("_%.3fms_\n", float64(elapsed.Microseconds())/1000.0)
			}
			fmt.Print(prompt("coldb> "))
			continue
		}

		if trimmed == "exit" && len(buf) == 0 {
			return
		}

		buf = append(buf, line)
		fmt.Print(prompt("    -> "))
	}
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
