// Package suppress filters violations against configured suppression
// entries: structural queries evaluated over the tree at the violation's
// location, location ranges, message patterns, and regions delimited by
// suppression comments in the file itself.
package suppress

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// Tree is the per-file view structural entries evaluate against.
type Tree struct {
	Root     *node.Node
	Comments *node.Node
	Contents *source.Contents
}

// Entry decides whether a violation is suppressed. Entries are read-only
// and safe for concurrent use.
type Entry interface {
	Suppresses(v check.Violation, scope *Scope) bool
}

// Set is an ordered, immutable collection of entries.
type Set struct {
	entries []Entry
}

// NewSet creates a set from entries.
func NewSet(entries ...Entry) *Set {
	return &Set{entries: entries}
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Entries returns the entries in configuration order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}

	return append([]Entry(nil), s.entries...)
}

// Filter returns the violations no entry suppresses, in their original
// order. extra entries, such as comment regions of the file, are consulted
// after the set's own. tree may be nil when no structural entry is used.
func (s *Set) Filter(violations []check.Violation, tree *Tree, extra ...Entry) []check.Violation {
	scope := newScope(tree)
	kept := make([]check.Violation, 0, len(violations))

	for _, v := range violations {
		if !s.suppressed(v, scope, extra) {
			kept = append(kept, v)
		}
	}

	return kept
}

// Suppressed reports whether any entry suppresses v.
func (s *Set) Suppressed(v check.Violation, tree *Tree, extra ...Entry) bool {
	return s.suppressed(v, newScope(tree), extra)
}

func (s *Set) suppressed(v check.Violation, scope *Scope, extra []Entry) bool {
	if s != nil {
		for _, e := range s.entries {
			if e.Suppresses(v, scope) {
				return true
			}
		}
	}

	for _, e := range extra {
		if e.Suppresses(v, scope) {
			return true
		}
	}

	return false
}

// Scope caches per-file lookups shared by entries during one Filter call.
type Scope struct {
	tree     *Tree
	absolute map[Entry]map[any]struct{}
}

func newScope(tree *Tree) *Scope {
	return &Scope{tree: tree, absolute: make(map[Entry]map[any]struct{})}
}

// Tree returns the file view, which may be nil.
func (s *Scope) Tree() *Tree {
	return s.tree
}

// CoveringItems returns the items whose span covers (line, col), innermost
// first: comment nodes, then literal text blocks, then syntax nodes.
func (s *Scope) CoveringItems(line, col int) []axis.Item {
	if s.tree == nil {
		return nil
	}

	var items []axis.Item

	for _, n := range s.tree.Comments.CoveringPath(line, col) {
		if n.Kind != node.KindCommentRoot {
			items = append(items, axis.NewElement(n))
		}
	}

	syntaxPath := s.tree.Root.CoveringPath(line, col)

	if s.tree.Contents != nil {
		for _, block := range s.tree.Contents.LiteralBlocks() {
			if block.Contains(line, col) {
				items = append(items, axis.NewBlockElement(block, innermostEnclosing(s.tree.Root, block)))
			}
		}
	}

	for _, n := range syntaxPath {
		items = append(items, axis.NewElement(n))
	}

	return items
}

func innermostEnclosing(root *node.Node, block *node.TextBlock) *node.Node {
	path := root.CoveringPath(block.StartLine, block.StartCol)

	for _, n := range path {
		if n.Pos.Covers(block.EndLine, block.EndCol) {
			return n
		}
	}

	return nil
}

// absoluteResult evaluates an absolute entry once per file against each
// tree root, syntax and comment, and caches the identities it selects.
func (s *Scope) absoluteResult(e Entry, evaluate func(axis.Item) []axis.Item) map[any]struct{} {
	if cached, ok := s.absolute[e]; ok {
		return cached
	}

	selected := make(map[any]struct{})

	if s.tree != nil {
		for _, root := range []*node.Node{s.tree.Root, s.tree.Comments} {
			if root == nil {
				continue
			}

			for _, item := range evaluate(axis.NewElement(root)) {
				selected[item.Identity()] = struct{}{}
			}
		}
	}

	s.absolute[e] = selected

	return selected
}
