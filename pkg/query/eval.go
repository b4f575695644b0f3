package query

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
)

type valueKind int

const (
	valNodes valueKind = iota
	valString
	valNumber
	valBool
)

type value struct {
	kind  valueKind
	nodes []axis.Item
	str   string
	num   float64
	flag  bool
}

func (v value) truthy() bool {
	switch v.kind {
	case valString:
		return v.str != ""
	case valNumber:
		return v.num != 0
	case valBool:
		return v.flag
	case valNodes:
		return len(v.nodes) > 0
	}

	return false
}

// strings returns the string values a comparison ranges over. A node set
// contributes the text of every item that has one.
func (v value) strings() []string {
	switch v.kind {
	case valString:
		return []string{v.str}
	case valNumber:
		return []string{formatNumber(v.num)}
	case valBool:
		return []string{strconv.FormatBool(v.flag)}
	case valNodes:
		out := make([]string, 0, len(v.nodes))

		for _, item := range v.nodes {
			if text, ok := item.Attribute(axis.AttrText); ok {
				out = append(out, text)
			}
		}

		return out
	}

	return nil
}

// first returns the first string value, or "" for an empty node set.
func (v value) first() string {
	values := v.strings()
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// evalContext is the focus of an expression: the context item and its
// position within the sequence being filtered.
type evalContext struct {
	item     axis.Item
	position int
	size     int
}

func evaluate(e expr, ctx evalContext) value {
	switch typed := e.(type) {
	case *pathExpr:
		return value{kind: valNodes, nodes: evalPath(typed, ctx.item)}
	case *unionExpr:
		var merged []axis.Item

		for _, part := range typed.parts {
			merged = append(merged, evaluate(part, ctx).nodes...)
		}

		return value{kind: valNodes, nodes: documentOrder(merged)}
	case *attrRef:
		if text, ok := ctx.item.Attribute(typed.name); ok {
			return value{kind: valString, str: text}
		}

		return value{kind: valNodes}
	case *stringLit:
		return value{kind: valString, str: typed.value}
	case *numberLit:
		return value{kind: valNumber, num: typed.value}
	case *binaryExpr:
		return evalBinary(typed, ctx)
	case *funcCall:
		return callFunction(typed, ctx)
	}

	return value{kind: valNodes}
}

func evalBinary(e *binaryExpr, ctx evalContext) value {
	switch e.op {
	case "and":
		return value{kind: valBool, flag: evaluate(e.left, ctx).truthy() && evaluate(e.right, ctx).truthy()}
	case "or":
		return value{kind: valBool, flag: evaluate(e.left, ctx).truthy() || evaluate(e.right, ctx).truthy()}
	}

	left := evaluate(e.left, ctx)
	right := evaluate(e.right, ctx)

	// Equality compares numbers only when one side is a number; relational
	// operators always compare numbers.
	numeric := left.kind == valNumber || right.kind == valNumber

	// Existential semantics: true if any pair of values satisfies the operator.
	for _, l := range left.strings() {
		for _, r := range right.strings() {
			if compare(e.op, l, r, numeric) {
				return value{kind: valBool, flag: true}
			}
		}
	}

	return value{kind: valBool}
}

func compare(op, left, right string, numeric bool) bool {
	switch op {
	case "=":
		if numeric {
			return numbersSatisfy(left, right, func(l, r float64) bool { return l == r })
		}

		return left == right
	case "!=":
		if numeric {
			return numbersSatisfy(left, right, func(l, r float64) bool { return l != r })
		}

		return left != right
	case "<":
		return numbersSatisfy(left, right, func(l, r float64) bool { return l < r })
	case "<=":
		return numbersSatisfy(left, right, func(l, r float64) bool { return l <= r })
	case ">":
		return numbersSatisfy(left, right, func(l, r float64) bool { return l > r })
	case ">=":
		return numbersSatisfy(left, right, func(l, r float64) bool { return l >= r })
	}

	return false
}

// numbersSatisfy converts both operands and applies cmp. A string that is
// not a plain decimal number compares false with everything.
func numbersSatisfy(left, right string, cmp func(l, r float64) bool) bool {
	l, ok := parseNumber(left)
	if !ok {
		return false
	}

	r, ok := parseNumber(right)
	if !ok {
		return false
	}

	return cmp(l, r)
}

// parseNumber accepts an optional minus sign, digits and at most one dot.
// Spellings such as NaN, Inf, exponents or hex are not numbers here.
func parseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)

	digits := strings.TrimPrefix(text, "-")
	if digits == "" || digits == "." || strings.Count(digits, ".") > 1 {
		return 0, false
	}

	for _, r := range digits {
		if r != '.' && (r < '0' || r > '9') {
			return 0, false
		}
	}

	num, err := strconv.ParseFloat(text, 64)

	return num, err == nil
}

func evalPath(p *pathExpr, start axis.Item) []axis.Item {
	current := []axis.Item{start}
	if p.absolute {
		current = []axis.Item{newDocument(rootOf(start))}
	}

	for _, st := range p.steps {
		var next []axis.Item

		for _, item := range current {
			next = append(next, evalStep(st, item)...)
		}

		current = documentOrder(next)
	}

	return current
}

func evalStep(st step, item axis.Item) []axis.Item {
	var candidates []axis.Item

	for candidate := range axis.Seq(item.Navigate(st.axis)) {
		if st.test.matches(candidate) {
			candidates = append(candidates, candidate)
		}
	}

	for _, pred := range st.predicates {
		candidates = filter(candidates, pred)
	}

	return candidates
}

// filter applies a predicate. Positions follow axis order, so on reverse
// axes position 1 is the nearest item.
func filter(items []axis.Item, pred expr) []axis.Item {
	kept := items[:0:0]

	for idx, item := range items {
		result := evaluate(pred, evalContext{item: item, position: idx + 1, size: len(items)})

		var keep bool
		if result.kind == valNumber {
			keep = result.num == float64(idx+1)
		} else {
			keep = result.truthy()
		}

		if keep {
			kept = append(kept, item)
		}
	}

	return kept
}

func rootOf(item axis.Item) axis.Item {
	current := item
	for parent := current.Parent(); parent != nil; parent = current.Parent() {
		current = parent
	}

	return current
}

// documentOrder sorts items by tree order and drops duplicates.
func documentOrder(items []axis.Item) []axis.Item {
	if len(items) < 2 {
		return items
	}

	seen := make(map[any]struct{}, len(items))
	unique := make([]axis.Item, 0, len(items))

	for _, item := range items {
		if _, dup := seen[item.Identity()]; dup {
			continue
		}

		seen[item.Identity()] = struct{}{}
		unique = append(unique, item)
	}

	slices.SortStableFunc(unique, func(a, b axis.Item) int {
		return a.Order() - b.Order()
	})

	return unique
}

type functionSpec struct {
	minArgs int
	maxArgs int
	call    func(args []value, ctx evalContext) value
}

//nolint:gochecknoglobals // Static function table.
var functions = map[string]functionSpec{
	"not": {minArgs: 1, maxArgs: 1, call: func(args []value, _ evalContext) value {
		return value{kind: valBool, flag: !args[0].truthy()}
	}},
	"true": {call: func([]value, evalContext) value {
		return value{kind: valBool, flag: true}
	}},
	"false": {call: func([]value, evalContext) value {
		return value{kind: valBool}
	}},
	"starts-with": {minArgs: 2, maxArgs: 2, call: stringPredicate(strings.HasPrefix)},
	"ends-with":   {minArgs: 2, maxArgs: 2, call: stringPredicate(strings.HasSuffix)},
	"contains":    {minArgs: 2, maxArgs: 2, call: stringPredicate(strings.Contains)},
	"name": {call: func(_ []value, ctx evalContext) value {
		return value{kind: valString, str: ctx.item.KindName()}
	}},
	"position": {call: func(_ []value, ctx evalContext) value {
		return value{kind: valNumber, num: float64(ctx.position)}
	}},
	"last": {call: func(_ []value, ctx evalContext) value {
		return value{kind: valNumber, num: float64(ctx.size)}
	}},
	"count": {minArgs: 1, maxArgs: 1, call: func(args []value, _ evalContext) value {
		return value{kind: valNumber, num: float64(len(args[0].nodes))}
	}},
	"string-length": {minArgs: 1, maxArgs: 1, call: func(args []value, _ evalContext) value {
		return value{kind: valNumber, num: float64(len([]rune(args[0].first())))}
	}},
}

func knownFunction(name string) bool {
	_, ok := functions[name]

	return ok
}

func stringPredicate(fn func(s, affix string) bool) func([]value, evalContext) value {
	return func(args []value, _ evalContext) value {
		return value{kind: valBool, flag: fn(args[0].first(), args[1].first())}
	}
}

func callFunction(call *funcCall, ctx evalContext) value {
	args := make([]value, len(call.args))
	for idx, arg := range call.args {
		args[idx] = evaluate(arg, ctx)
	}

	return functions[call.name].call(args, ctx)
}
