package suppress

import (
	"regexp"
	"strconv"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// MarkerIgnore suppresses violations on the lines near the comment holding it.
const MarkerIgnore = "stylewalk:ignore"

// ignorePattern captures an optional check regex and a signed line influence.
// A check regex never starts with a sign, so "+2" is always an influence.
var ignorePattern = regexp.MustCompile( //nolint:gochecknoglobals // compiled once.
	regexp.QuoteMeta(MarkerIgnore) + `(?:[ \t]+([^\s+-]\S*))?(?:[ \t]+([+-]\d+))?`)

// Nearby suppresses violations of matching checks on the lines a nearby
// comment influences.
type Nearby struct {
	Checks    *regexp.Regexp
	FirstLine int
	LastLine  int
}

// Suppresses implements [Entry].
func (n *Nearby) Suppresses(v check.Violation, _ *Scope) bool {
	if n.Checks != nil && !n.Checks.MatchString(v.RuleID) {
		return false
	}

	return v.Line >= n.FirstLine && v.Line <= n.LastLine
}

// NearbyComments scans the comments of a file for ignore markers.
//
//	// stylewalk:ignore             the comment's own line
//	// stylewalk:ignore Tab.* +2    that line and the two after it
//	// stylewalk:ignore -1          the line before and the comment's line
//
// Influence counts from the first line of the comment.
func NearbyComments(contents *source.Contents) []Entry {
	if contents == nil {
		return nil
	}

	var entries []Entry

	for _, block := range contents.Comments() {
		for _, match := range ignorePattern.FindAllStringSubmatch(block.Text(), -1) {
			influence := 0
			if match[2] != "" {
				influence, _ = strconv.Atoi(match[2]) //nolint:errcheck // the pattern admits only signed digits.
			}

			first, last := block.StartLine, block.StartLine+influence
			if influence < 0 {
				first, last = last, first
			}

			entries = append(entries, &Nearby{
				Checks:    compileMarkerPattern(match[1]),
				FirstLine: first,
				LastLine:  last,
			})
		}
	}

	return entries
}

var _ Entry = (*Nearby)(nil)
