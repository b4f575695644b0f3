package suppress

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every [ConfigError].
var ErrConfig = errors.New("invalid suppression configuration")

// Reasons carried by a [ConfigError].
var (
	errSchema       = errors.New("schema violation")
	errBadRange     = errors.New("invalid range")
	errBadPattern   = errors.New("invalid pattern")
	errBadQuery     = errors.New("invalid query")
	errNoCriterion  = errors.New("entry needs exactly one of query, lines or message")
	errColumnsAlone = errors.New("columns require lines")
)

// ConfigError reports a malformed suppression entry. Index is the 0-based
// position of the entry, or -1 for document-level problems.
type ConfigError struct {
	Index int
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %v", ErrConfig, e.Field, e.Err)
	}

	return fmt.Sprintf("%s: entry %d: %s: %v", ErrConfig, e.Index, e.Field, e.Err)
}

// Unwrap exposes both ErrConfig and the underlying reason.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfig, e.Err}
}
