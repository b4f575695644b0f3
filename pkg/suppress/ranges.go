package suppress

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive interval of line or column numbers.
type Range struct {
	From int
	To   int
}

// Contains reports whether value lies within r.
func (r Range) Contains(value int) bool {
	return value >= r.From && value <= r.To
}

func (r Range) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}

	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// Ranges is a set of intervals; an empty set matches nothing.
type Ranges []Range

// Contains reports whether any interval contains value.
func (rs Ranges) Contains(value int) bool {
	for _, r := range rs {
		if r.Contains(value) {
			return true
		}
	}

	return false
}

func (rs Ranges) String() string {
	parts := make([]string, len(rs))
	for idx, r := range rs {
		parts[idx] = r.String()
	}

	return strings.Join(parts, ",")
}

// ParseRanges parses a comma-separated list of numbers and "from-to" spans,
// for example "1,4,10-12".
func ParseRanges(text string) (Ranges, error) {
	var out Ranges

	for _, raw := range strings.Split(text, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			return nil, fmt.Errorf("%w: empty element in %q", errBadRange, text)
		}

		fromText, toText, isSpan := strings.Cut(part, "-")
		if !isSpan {
			toText = fromText
		}

		from, err := strconv.Atoi(strings.TrimSpace(fromText))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadRange, part)
		}

		to, err := strconv.Atoi(strings.TrimSpace(toText))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadRange, part)
		}

		if from < 0 || to < from {
			return nil, fmt.Errorf("%w: %q", errBadRange, part)
		}

		out = append(out, Range{From: from, To: to})
	}

	return out, nil
}
