package main

import (
	"bufio"
	"os"
	"strings"
)

// historyPath derives the REPL history file's path from the db snapshot
// path. Scoped per-db instead of a single fixed "./.history" file, so two
// REPL sessions against two different db snapshots don't share one history.
func historyPath(dbPath string) string {
	return dbPath + ".history"
}

// loadHistory reads previously persisted query text back from path, one
// entry per blank-line-delimited record — the same blank-line-submits
// convention the REPL itself uses for query input, so a history file is
// just a replay log of prior submissions. A missing file yields no
// entries rather than an error.
func loadHistory(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	var cur []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				entries = append(entries, strings.Join(cur, "\n"))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		entries = append(entries, strings.Join(cur, "\n"))
	}
	return entries, scanner.Err()
}

// appendHistory records one submitted query's raw text to path, creating
// the file if it doesn't exist yet. Entries are appended, never
// overwritten, so history accumulates across REPL sessions.
func appendHistory(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return err
	}
	_, err = f.WriteString("\n\n")
	return err
}
