package check

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeverity is returned when a severity name is not recognized.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity ranks a violation.
type Severity int

// Severities in increasing order.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}

	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity resolves a severity name. An empty name means error.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	}

	return SeverityError, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
