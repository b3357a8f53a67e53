package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
	"github.com/mkessler/coldb/predicate"
)

var orSplit = regexp.MustCompile(`(?i)\s+or\s+`)

// ParseLines parses a query's text — one clause per line — into an
// ordered list of Lines. A multi-column "select" line expands into one
// Select per column; every other line maps to exactly one Line.
func ParseLines(text string) ([]Line, error) {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		parsed, err := parseLine(trimmed)
		if err != nil {
			return nil, err
		}
		lines = append(lines, parsed...)
	}
	return lines, nil
}

func parseLine(line string) ([]Line, error) {
	keyword, rest, ok := splitFirstToken(line)
	if !ok {
		return nil, errs.Grammar("empty query line")
	}

	switch strings.ToLower(keyword) {
	case "select":
		return parseSelect(rest)
	case "join":
		return parseJoin(rest)
	case "where":
		return parseWhere(rest)
	case "limit":
		return parseLimit(rest)
	default:
		return nil, errs.Grammar("unknown clause: " + keyword)
	}
}

func splitFirstToken(s string) (head, rest string, ok bool) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	if idx < 0 {
		return s, "", s != ""
	}
	return s[:idx], strings.TrimSpace(s[idx:]), true
}

func parseSelect(rest string) ([]Line, error) {
	parts := strings.Split(rest, ",")
	if len(parts) == 0 {
		return nil, errs.Grammar("select requires at least one column")
	}
	var out []Line
	for _, p := range parts {
		col, err := parseColumnName(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, Select{Column: col})
	}
	return out, nil
}

func parseJoin(rest string) ([]Line, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return nil, errs.Grammar("join requires: join <table> <table.column>")
	}
	col, err := parseColumnName(fields[1])
	if err != nil {
		return nil, err
	}
	return []Line{Join{Table: fields[0], Column: col}}, nil
}

func parseWhere(rest string) ([]Line, error) {
	segments := orSplit.Split(rest, -1)
	if len(segments) == 0 {
		return nil, errs.Grammar("where requires a clause")
	}

	var column coldb.ColumnName
	var preds []predicate.Predicate
	for i, seg := range segments {
		fields := strings.Fields(seg)
		if len(fields) != 3 {
			return nil, errs.Grammar("where clause must be: <table.column> <op> <value>")
		}
		col, err := parseColumnName(fields[0])
		if err != nil {
			return nil, err
		}
		if i == 0 {
			column = col
		} else if col != column {
			return nil, errs.Grammar("an 'or' chain must repeat the same column on every clause")
		}

		op, err := parseComparator(fields[1])
		if err != nil {
			return nil, err
		}
		val, err := parseValue(fields[2])
		if err != nil {
			return nil, err
		}
		preds = append(preds, predicate.Const{Op: op, Val: val})
	}

	var p predicate.Predicate
	if len(preds) == 1 {
		p = preds[0]
	} else {
		p = predicate.OrFromSlice(preds)
	}
	return []Line{Where{Column: column, Predicate: p}}, nil
}

func parseLimit(rest string) ([]Line, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return nil, errs.Grammar("limit requires an integer: " + rest)
	}
	return []Line{Limit{N: n}}, nil
}

func parseColumnName(tok string) (coldb.ColumnName, error) {
	parts := strings.SplitN(tok, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return coldb.ColumnName{}, errs.Grammar("expected table.column, got: " + tok)
	}
	return coldb.ColumnName{Table: parts[0], Column: parts[1]}, nil
}

func parseComparator(tok string) (coldb.Comparator, error) {
	switch coldb.Comparator(tok) {
	case coldb.Eq, coldb.Gt, coldb.Gte, coldb.Lt, coldb.Lte:
		return coldb.Comparator(tok), nil
	default:
		return "", errs.Grammar("unknown operator: " + tok)
	}
}

func parseValue(tok string) (coldb.Value, error) {
	switch {
	case tok == "true":
		return coldb.NewBool(true), nil
	case tok == "false":
		return coldb.NewBool(false), nil
	case len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"':
		return coldb.NewString(tok[1 : len(tok)-1]), nil
	default:
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return coldb.Value{}, errs.Grammar("unparseable value: " + tok)
		}
		return coldb.NewInt(v), nil
	}
}

// LimitOrDefault returns the last Limit line's value, or 20 if none.
func LimitOrDefault(lines []Line) int {
	limit := 20
	for _, l := range lines {
		if lim, ok := l.(Limit); ok {
			limit = lim.N
		}
	}
	return limit
}

// WithoutLimits returns lines with every Limit line removed, preserving
// order — Limit lines produce no plan nodes of their own.
func WithoutLimits(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if _, ok := l.(Limit); ok {
			continue
		}
		out = append(out, l)
	}
	return out
}
