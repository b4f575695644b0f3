package parser

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every [ParseError].
var ErrParse = errors.New("parse error")

var errPoolType = errors.New("unexpected parser pool type")

// ParseError reports malformed source. Line is 1-based, Col 0-based.
type ParseError struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
