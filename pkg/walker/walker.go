// Package walker implements the single-pass dispatcher that runs every
// registered check over one syntax tree, delivering enter and leave
// callbacks only for the kinds each check is configured for.
package walker

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// Stack capacity constants for iterative traversal.
const (
	walkStackInitCap = 64
	walkStackGrowth  = 32
)

// Option configures a [Walker].
type Option func(*Walker)

// WithLogger sets the logger used to report check failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// Input is one file prepared for dispatch.
type Input struct {
	File     string
	Contents *source.Contents
	Root     *node.Node
	Comments *node.Node
}

type pass int

const (
	syntaxPass pass = iota
	commentPass
)

type entry struct {
	check    check.Check
	id       string
	kinds    []node.Kind
	severity check.Severity
	messages map[string]string
	pass     pass
	ctx      *check.Context
}

// Walker dispatches registered checks over a tree. A walker holds per-file
// check state, so each goroutine needs its own.
type Walker struct {
	logger  *slog.Logger
	entries []*entry
	index   [2]map[node.Kind][]*entry
}

// New creates a walker with no checks.
func New(opts ...Option) *Walker {
	w := &Walker{
		logger: slog.Default(),
		index: [2]map[node.Kind][]*entry{
			make(map[node.Kind][]*entry),
			make(map[node.Kind][]*entry),
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Register validates and adds c. A nil kinds slice selects the check's
// default kinds. Checks are dispatched in registration order.
func (w *Walker) Register(c check.Check, kinds []node.Kind, severity check.Severity) error {
	id := c.ID()

	if slices.ContainsFunc(w.entries, func(e *entry) bool { return e.id == id }) {
		return &RegistrationError{Check: id, Err: ErrDuplicateCheck}
	}

	if kinds == nil {
		kinds = c.DefaultKinds()
	}

	if err := validateKinds(c, kinds); err != nil {
		return &RegistrationError{Check: id, Err: err}
	}

	e := &entry{
		check:    c,
		id:       id,
		kinds:    slices.Clone(kinds),
		severity: severity,
	}

	if provider, ok := c.(check.MessageProvider); ok {
		e.messages = provider.Messages()
	}

	if check.OnlyComments(kinds) {
		e.pass = commentPass
	}

	w.entries = append(w.entries, e)

	for _, kind := range kinds {
		if !slices.Contains(w.index[e.pass][kind], e) {
			w.index[e.pass][kind] = append(w.index[e.pass][kind], e)
		}
	}

	return nil
}

func validateKinds(c check.Check, kinds []node.Kind) error {
	acceptable := c.AcceptableKinds()

	for _, kind := range kinds {
		if !slices.Contains(acceptable, kind) {
			return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
		}
	}

	for _, kind := range c.RequiredKinds() {
		if !slices.Contains(kinds, kind) {
			return fmt.Errorf("%w: %s", ErrMissingRequiredKind, kind)
		}
	}

	if check.AnyComments(kinds) && !check.OnlyComments(kinds) {
		return ErrMixedKinds
	}

	return nil
}

// Checks returns the registered check ids in registration order.
func (w *Walker) Checks() []string {
	ids := make([]string, 0, len(w.entries))
	for _, e := range w.entries {
		ids = append(ids, e.id)
	}

	return ids
}

// Walk runs every registered check over in and returns the violations in
// emission order. The syntax tree is walked first, then the comment tree
// for checks configured only for comment kinds.
func (w *Walker) Walk(in Input) []check.Violation {
	var violations []check.Violation

	sink := func(v check.Violation) {
		violations = append(violations, v)
	}

	for _, e := range w.entries {
		e.ctx = check.NewContext(check.ContextConfig{
			File:     in.File,
			Contents: in.Contents,
			RuleID:   e.id,
			Severity: e.severity,
			Messages: e.messages,
			Sink:     sink,
		})
	}

	comments := in.Comments
	if comments == nil {
		comments = node.NewBuilder().WithKind(node.KindCommentRoot).Build()
	}

	w.runPass(syntaxPass, in.Root)
	w.runPass(commentPass, comments)

	return violations
}

func (w *Walker) runPass(p pass, root *node.Node) {
	if root == nil {
		return
	}

	entries := make([]*entry, 0, len(w.entries))
	for _, e := range w.entries {
		if e.pass == p {
			entries = append(entries, e)
		}
	}

	if len(entries) == 0 {
		return
	}

	for _, e := range entries {
		w.invoke(e, root, "begin", e.check.BeginTree)
	}

	w.traverse(w.index[p], root)

	for _, e := range entries {
		w.invoke(e, root, "finish", e.check.FinishTree)
	}
}

// walkFrame represents a stack frame for iterative traversal. childIdx is
// the next child to push; -1 means enter has not been fired yet.
type walkFrame struct {
	node     *node.Node
	childIdx int
}

// traverse fires enter before a node's children and leave after all of
// them, for the checks interested in the node's kind, in registration order.
func (w *Walker) traverse(index map[node.Kind][]*entry, root *node.Node) {
	stack := make([]walkFrame, 0, walkStackInitCap)
	stack = append(stack, walkFrame{node: root, childIdx: -1})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.childIdx == -1 {
			for _, e := range index[top.node.Kind] {
				w.invoke(e, top.node, "enter", e.check.Enter)
			}

			top.childIdx = 0
		}

		if top.childIdx < len(top.node.Children) {
			child := top.node.Children[top.childIdx]
			top.childIdx++

			if len(stack) == cap(stack) {
				grown := make([]walkFrame, len(stack), cap(stack)+walkStackGrowth)
				copy(grown, stack)
				stack = grown
			}

			stack = append(stack, walkFrame{node: child, childIdx: -1})

			continue
		}

		current := top.node
		stack = stack[:len(stack)-1]

		for _, e := range index[current.Kind] {
			w.invoke(e, current, "leave", e.check.Leave)
		}
	}
}

// invoke runs one callback. A panic is recovered and turned into a single
// internal-error violation at n attributed to the failing check.
func (w *Walker) invoke(e *entry, n *node.Node, phase string, callback func(*check.Context, *node.Node)) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		w.logger.Warn("check failed",
			"check", e.id,
			"phase", phase,
			"line", n.Pos.StartLine,
			"col", n.Pos.StartCol,
			"error", recovered,
		)

		e.ctx.Focus(n)
		e.ctx.ReportSeverity(check.SeverityError, check.KeyInternalError, e.id, fmt.Sprint(recovered))
	}()

	e.ctx.Focus(n)
	callback(e.ctx, n)
}
