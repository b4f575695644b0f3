// Package axis exposes the syntax tree through a generic navigation model:
// items with a kind name and attributes, and lazy iterators over every
// structural axis (child, parent, siblings, ancestors, descendants,
// following and preceding).
package axis

// Axis names a navigation relationship between items.
type Axis int

// Supported axes.
const (
	Child Axis = iota
	Descendant
	DescendantOrSelf
	Parent
	Self
	Ancestor
	AncestorOrSelf
	FollowingSibling
	PrecedingSibling
	Following
	Preceding
)

//nolint:gochecknoglobals // Static lookup table.
var axisNames = map[Axis]string{
	Child:            "child",
	Descendant:       "descendant",
	DescendantOrSelf: "descendant-or-self",
	Parent:           "parent",
	Self:             "self",
	Ancestor:         "ancestor",
	AncestorOrSelf:   "ancestor-or-self",
	FollowingSibling: "following-sibling",
	PrecedingSibling: "preceding-sibling",
	Following:        "following",
	Preceding:        "preceding",
}

func (a Axis) String() string {
	if name, ok := axisNames[a]; ok {
		return name
	}

	return "unknown"
}

// Reverse reports whether the axis yields items in reverse document order.
func (a Axis) Reverse() bool {
	switch a {
	case Parent, Ancestor, AncestorOrSelf, PrecedingSibling, Preceding:
		return true
	case Child, Descendant, DescendantOrSelf, Self, FollowingSibling, Following:
		return false
	}

	return false
}

// ParseAxis resolves an axis by its query-language name.
func ParseAxis(name string) (Axis, bool) {
	for axis, candidate := range axisNames {
		if candidate == name {
			return axis, true
		}
	}

	return 0, false
}
