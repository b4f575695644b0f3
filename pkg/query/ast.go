package query

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
)

type expr interface {
	isExpr()
}

// nodeTest filters the items produced by an axis.
type nodeTest struct {
	name    string
	any     bool // "*": any named item.
	anyNode bool // "node()": anything, including the document.
}

func (t nodeTest) matches(item axis.Item) bool {
	switch {
	case t.anyNode:
		return true
	case t.any:
		return item.KindName() != ""
	default:
		return item.KindName() == t.name
	}
}

type step struct {
	axis       axis.Axis
	test       nodeTest
	predicates []expr
}

type pathExpr struct {
	absolute bool
	steps    []step
}

type unionExpr struct {
	parts []expr
}

// binaryExpr is a boolean connective ("and", "or") or a comparison.
type binaryExpr struct {
	op    string
	left  expr
	right expr
}

type attrRef struct {
	name string
}

type stringLit struct {
	value string
}

type numberLit struct {
	value float64
}

type funcCall struct {
	name string
	args []expr
}

func (*pathExpr) isExpr()   {}
func (*unionExpr) isExpr()  {}
func (*binaryExpr) isExpr() {}
func (*attrRef) isExpr()    {}
func (*stringLit) isExpr()  {}
func (*numberLit) isExpr()  {}
func (*funcCall) isExpr()   {}

// selectsNodes reports whether e always evaluates to a node set.
func selectsNodes(e expr) bool {
	switch typed := e.(type) {
	case *pathExpr:
		return true
	case *unionExpr:
		for _, part := range typed.parts {
			if !selectsNodes(part) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
