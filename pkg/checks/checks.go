// Package checks contains the built-in rules. Each one is a small
// [check.Check] registered by [Register].
package checks

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
)

// Register adds every built-in check to registry.
func Register(registry *check.Registry) error {
	builtins := []struct {
		description string
		factory     check.Factory
	}{
		{"Reports tab characters in source lines.", func() check.Check { return NewTabCharacter() }},
		{"Limits the number of lines in a file.", func() check.Check { return NewFileLength() }},
		{"Limits the number of lines in a function or method body.", func() check.Check { return NewFunctionLength() }},
		{"Limits nesting of control flow statements.", func() check.Check { return NewNestingDepth() }},
		{"Reports blocks with neither statements nor comments.", func() check.Check { return NewEmptyBlock() }},
		{"Reports comments matching a task marker.", func() check.Check { return NewTodoComment() }},
		{"Reports every node selected by a configured query.", func() check.Check { return NewMatchQuery() }},
	}

	for _, b := range builtins {
		err := registry.Register(b.description, b.factory)
		if err != nil {
			return err
		}
	}

	return nil
}

// DefaultRegistry returns a registry holding the built-in checks.
func DefaultRegistry() *check.Registry {
	registry := check.NewRegistry()

	err := Register(registry)
	if err != nil {
		panic(err)
	}

	return registry
}
