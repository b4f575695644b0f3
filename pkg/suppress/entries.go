package suppress

import (
	"regexp"

	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
)

// Filter restricts an entry to violations whose rule ID and file match.
// A nil pattern matches everything.
type Filter struct {
	Checks *regexp.Regexp
	Files  *regexp.Regexp
}

func (f Filter) accepts(v check.Violation) bool {
	if f.Checks != nil && !f.Checks.MatchString(v.RuleID) {
		return false
	}

	if f.Files != nil && !f.Files.MatchString(v.File) {
		return false
	}

	return true
}

// QueryEntry suppresses violations located on a node the query selects.
//
// A relative query is evaluated from each item covering the violation,
// innermost first, and fires on the first non-empty result. An absolute
// query is evaluated once per file from the syntax root and from the
// comment root, and fires when any covering item is part of a result.
type QueryEntry struct {
	Filter

	Query *query.Query
}

// Suppresses implements [Entry].
func (e *QueryEntry) Suppresses(v check.Violation, scope *Scope) bool {
	if !e.accepts(v) {
		return false
	}

	covering := scope.CoveringItems(v.Line, v.Col)
	if len(covering) == 0 {
		return false
	}

	if e.Query.Absolute() {
		selected := scope.absoluteResult(e, e.Query.Evaluate)

		for _, item := range covering {
			if _, ok := selected[item.Identity()]; ok {
				return true
			}
		}

		return false
	}

	return coveringMatch(e.Query, covering)
}

// LocationEntry suppresses violations by line and, optionally, column.
type LocationEntry struct {
	Filter

	Lines   Ranges
	Columns Ranges
}

// Suppresses implements [Entry].
func (e *LocationEntry) Suppresses(v check.Violation, _ *Scope) bool {
	if !e.accepts(v) || !e.Lines.Contains(v.Line) {
		return false
	}

	return len(e.Columns) == 0 || e.Columns.Contains(v.Col)
}

// MessageEntry suppresses violations whose rendered message matches.
type MessageEntry struct {
	Filter

	Message *regexp.Regexp
}

// Suppresses implements [Entry].
func (e *MessageEntry) Suppresses(v check.Violation, _ *Scope) bool {
	return e.accepts(v) && e.Message.MatchString(v.Message)
}

var (
	_ Entry = (*QueryEntry)(nil)
	_ Entry = (*LocationEntry)(nil)
	_ Entry = (*MessageEntry)(nil)
	_ Entry = (*Region)(nil)
)

// coveringMatch reports whether q selects anything from one of items.
func coveringMatch(q *query.Query, items []axis.Item) bool {
	for _, item := range items {
		if q.Matches(item) {
			return true
		}
	}

	return false
}
