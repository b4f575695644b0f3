package query

import (
	"errors"
	"fmt"
)

// Sentinel errors for query compilation.
var (
	// ErrSyntax is wrapped by every [SyntaxError].
	ErrSyntax = errors.New("query syntax error")
	// ErrNotNodeSet is returned when a query does not select nodes.
	ErrNotNodeSet = errors.New("query does not select nodes")
	// ErrEmptyQuery is returned for a blank query string.
	ErrEmptyQuery = errors.New("query string is empty")
)

// SyntaxError reports where a query failed to parse.
type SyntaxError struct {
	Query string
	Pos   int
	Msg   string
}

func newSyntaxError(query string, pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Query: query, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", ErrSyntax, e.Pos, e.Query, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
