package walker

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// PlanEntry configures one check for a run.
type PlanEntry struct {
	ID       string
	Kinds    []node.Kind
	Severity check.Severity
	Options  map[string]any
}

// Plan is the validated, immutable check configuration of a run. Workers
// share one plan and build their own walker from it per file.
type Plan struct {
	registry *check.Registry
	entries  []PlanEntry
}

// NewPlan validates entries against registry by building a walker once, so
// configuration errors surface before any file is processed.
func NewPlan(registry *check.Registry, entries []PlanEntry) (*Plan, error) {
	plan := &Plan{registry: registry, entries: make([]PlanEntry, len(entries))}

	for idx, e := range entries {
		plan.entries[idx] = PlanEntry{
			ID:       e.ID,
			Kinds:    slices.Clone(e.Kinds),
			Severity: e.Severity,
			Options:  maps.Clone(e.Options),
		}
	}

	if _, err := plan.NewWalker(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Entries returns a copy of the plan entries.
func (p *Plan) Entries() []PlanEntry {
	return slices.Clone(p.entries)
}

// NewWalker creates fresh check instances and registers them, in plan order,
// on a new walker.
func (p *Plan) NewWalker(opts ...Option) (*Walker, error) {
	w := New(opts...)

	for _, e := range p.entries {
		c, err := p.registry.New(e.ID)
		if err != nil {
			return nil, err
		}

		if configurable, ok := c.(check.Configurable); ok {
			if err := configurable.Configure(e.Options); err != nil {
				return nil, &RegistrationError{Check: e.ID, Err: fmt.Errorf("configure: %w", err)}
			}
		}

		var kinds []node.Kind
		if len(e.Kinds) > 0 {
			kinds = e.Kinds
		}

		if err := w.Register(c, kinds, e.Severity); err != nil {
			return nil, err
		}
	}

	return w, nil
}
