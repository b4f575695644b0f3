// Package check defines the rule plugin contract: the Check interface, the
// per-check Context through which violations are emitted, the Violation
// record and the registry that creates checks by id.
package check

import (
	"slices"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Check is a rule. The dispatcher calls BeginTree once per file, Enter and
// Leave for every node whose kind is among the configured kinds, and
// FinishTree after the traversal. Callbacks for one file run sequentially,
// so a check may keep per-file state and reset it in BeginTree.
type Check interface {
	ID() string
	// AcceptableKinds lists every kind the check can handle.
	AcceptableKinds() []node.Kind
	// DefaultKinds lists the kinds used when configuration does not narrow
	// them. It must be a subset of AcceptableKinds.
	DefaultKinds() []node.Kind
	// RequiredKinds lists kinds that must stay configured. Validation only.
	RequiredKinds() []node.Kind

	BeginTree(ctx *Context, root *node.Node)
	Enter(ctx *Context, n *node.Node)
	Leave(ctx *Context, n *node.Node)
	FinishTree(ctx *Context, root *node.Node)
}

// Configurable is implemented by checks that accept options.
type Configurable interface {
	Configure(options map[string]any) error
}

// OptIn is implemented by checks that only run when configured by their
// exact id, usually because they do nothing without options. Glob patterns
// skip them.
type OptIn interface {
	OptIn() bool
}

// MessageProvider is implemented by checks that ship message templates.
type MessageProvider interface {
	Messages() map[string]string
}

// Base supplies no-op callbacks and an empty required set. Embed it and
// override what the check needs.
type Base struct{}

// RequiredKinds returns nil.
func (Base) RequiredKinds() []node.Kind { return nil }

// BeginTree does nothing.
func (Base) BeginTree(*Context, *node.Node) {}

// Enter does nothing.
func (Base) Enter(*Context, *node.Node) {}

// Leave does nothing.
func (Base) Leave(*Context, *node.Node) {}

// FinishTree does nothing.
func (Base) FinishTree(*Context, *node.Node) {}

// Kinds is a convenience constructor for kind lists.
func Kinds(kinds ...node.Kind) []node.Kind {
	return kinds
}

// OnlyComments reports whether every kind in kinds belongs to the comment tree.
func OnlyComments(kinds []node.Kind) bool {
	if len(kinds) == 0 {
		return false
	}

	for _, kind := range kinds {
		if !kind.IsComment() {
			return false
		}
	}

	return true
}

// AnyComments reports whether any kind in kinds belongs to the comment tree.
func AnyComments(kinds []node.Kind) bool {
	return slices.ContainsFunc(kinds, node.Kind.IsComment)
}
