package suppress

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// Comment markers that open and close a suppression region.
const (
	MarkerOff = "stylewalk:off"
	MarkerOn  = "stylewalk:on"
)

var markerPattern = regexp.MustCompile(`stylewalk:(off|on)(?:[ \t]+(\S+))?`) //nolint:gochecknoglobals // compiled once.

// Region suppresses violations of matching checks between an off marker and
// the next on marker with the same check pattern. An unclosed region runs to
// the end of the file.
type Region struct {
	Checks    *regexp.Regexp
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Open      bool

	pattern string
}

// Suppresses implements [Entry].
func (r *Region) Suppresses(v check.Violation, _ *Scope) bool {
	if r.Checks != nil && !r.Checks.MatchString(v.RuleID) {
		return false
	}

	if v.Line < r.StartLine || (v.Line == r.StartLine && v.Col < r.StartCol) {
		return false
	}

	if r.Open {
		return true
	}

	return v.Line < r.EndLine || (v.Line == r.EndLine && v.Col <= r.EndCol)
}

// CommentRegions scans the comments of a file for off/on marker pairs.
// "stylewalk:off" silences every check; "stylewalk:off Regex" silences
// checks whose ID matches Regex. "stylewalk:on" without a pattern closes
// every open region. A pattern that does not compile is matched literally.
func CommentRegions(contents *source.Contents) []Entry {
	if contents == nil {
		return nil
	}

	var (
		closed []*Region
		open   []*Region
	)

	for _, block := range contents.Comments() {
		for _, match := range markerPattern.FindAllStringSubmatch(block.Text(), -1) {
			kind, pattern := match[1], match[2]

			if kind == "off" {
				open = append(open, &Region{
					Checks:    compileMarkerPattern(pattern),
					pattern:   pattern,
					StartLine: block.StartLine,
					StartCol:  block.StartCol,
					Open:      true,
				})

				continue
			}

			remaining := open[:0]

			for _, region := range open {
				if pattern == "" || region.pattern == pattern {
					region.EndLine, region.EndCol, region.Open = block.EndLine, block.EndCol, false
					closed = append(closed, region)

					continue
				}

				remaining = append(remaining, region)
			}

			open = remaining
		}
	}

	entries := make([]Entry, 0, len(closed)+len(open))
	for _, region := range append(closed, open...) {
		entries = append(entries, region)
	}

	return entries
}

func compileMarkerPattern(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return regexp.MustCompile(regexp.QuoteMeta(strings.TrimSpace(pattern)))
	}

	return re
}
