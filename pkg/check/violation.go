package check

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Message keys emitted by the engine itself.
const (
	KeyInternalError = "internal.error"
	KeyParseError    = "parse.error"
)

// DispatcherID is the rule id attributed to file-level findings.
const DispatcherID = "TreeWalker"

//nolint:gochecknoglobals // Read-only default templates.
var defaultMessages = map[string]string{
	KeyInternalError: "Check {0} failed: {1}",
	KeyParseError:    "Parse error: {0}",
}

// Violation is one finding. It is immutable once emitted.
type Violation struct {
	File     string    `json:"file"`
	Line     int       `json:"line"`
	Col      int       `json:"col"`
	RuleID   string    `json:"rule_id"`
	Key      string    `json:"message_key"`
	Args     []any     `json:"message_args,omitempty"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Kind     node.Kind `json:"kind,omitempty"`
}

// Identity is the key under which violations are deduplicated.
type Identity struct {
	RuleID string
	Line   int
	Col    int
	Key    string
}

// Identity returns the dedup key of v.
func (v Violation) Identity() Identity {
	return Identity{RuleID: v.RuleID, Line: v.Line, Col: v.Col, Key: v.Key}
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s (%s)", v.File, v.Line, v.Col, v.Severity, v.Message, v.RuleID)
}

// Compare orders violations by line, column, rule id and message.
func Compare(a, b Violation) int {
	return cmp.Or(
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Col, b.Col),
		strings.Compare(a.RuleID, b.RuleID),
		strings.Compare(a.Message, b.Message),
	)
}

// Normalize sorts violations and drops repeated identities, keeping the
// first occurrence.
func Normalize(violations []Violation) []Violation {
	slices.SortStableFunc(violations, Compare)

	seen := make(map[Identity]struct{}, len(violations))
	out := violations[:0]

	for _, v := range violations {
		id := v.Identity()
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, v)
	}

	return out
}

// FormatMessage substitutes {N} placeholders in template with args[N].
// Unknown placeholders are left as they are.
func FormatMessage(template string, args []any) string {
	if !strings.Contains(template, "{") {
		return template
	}

	var sb strings.Builder

	for idx := 0; idx < len(template); idx++ {
		if template[idx] != '{' {
			sb.WriteByte(template[idx])

			continue
		}

		end := strings.IndexByte(template[idx:], '}')
		if end < 0 {
			sb.WriteString(template[idx:])

			break
		}

		argIdx, err := strconv.Atoi(template[idx+1 : idx+end])
		if err != nil || argIdx < 0 || argIdx >= len(args) {
			sb.WriteString(template[idx : idx+end+1])
		} else {
			fmt.Fprint(&sb, args[argIdx])
		}

		idx += end
	}

	return sb.String()
}

// Render resolves key against messages, then the built-in templates, and
// formats it with args. A key with no template renders as the key followed
// by its arguments.
func Render(messages map[string]string, key string, args []any) string {
	if template, ok := messages[key]; ok {
		return FormatMessage(template, args)
	}

	if template, ok := defaultMessages[key]; ok {
		return FormatMessage(template, args)
	}

	if len(args) == 0 {
		return key
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, key)

	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}

	return strings.Join(parts, " ")
}
