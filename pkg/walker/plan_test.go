package walker_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/walker"
)

var errBadOption = errors.New("bad option")

// counter counts entered nodes and reports the total at the end.
type counter struct {
	check.Base

	count int
	limit int
}

func (c *counter) ID() string                   { return "Counter" }
func (c *counter) AcceptableKinds() []node.Kind { return check.Kinds("stmt", "expr") }
func (c *counter) DefaultKinds() []node.Kind    { return check.Kinds("stmt") }

func (c *counter) Configure(options map[string]any) error {
	if limit, ok := options["limit"].(int); ok {
		if limit < 0 {
			return errBadOption
		}

		c.limit = limit
	}

	return nil
}

func (c *counter) BeginTree(*check.Context, *node.Node) { c.count = 0 }
func (c *counter) Enter(*check.Context, *node.Node)     { c.count++ }

func (c *counter) FinishTree(ctx *check.Context, _ *node.Node) {
	if c.count > c.limit {
		ctx.Report("count", c.count)
	}
}

func newCounterRegistry(t *testing.T) *check.Registry {
	t.Helper()

	registry := check.NewRegistry()
	require.NoError(t, registry.Register("counts nodes", func() check.Check { return &counter{} }))

	return registry
}

func TestPlan_NewWalker(t *testing.T) {
	t.Parallel()

	plan, err := walker.NewPlan(newCounterRegistry(t), []walker.PlanEntry{
		{ID: "Counter", Kinds: check.Kinds("stmt", "expr"), Severity: check.SeverityInfo, Options: map[string]any{"limit": 2}},
	})
	require.NoError(t, err)
	require.Len(t, plan.Entries(), 1)

	first, err := plan.NewWalker()
	require.NoError(t, err)

	second, err := plan.NewWalker()
	require.NoError(t, err)

	tree := newTree()
	firstViolations := first.Walk(walker.Input{Root: tree})
	secondViolations := second.Walk(walker.Input{Root: tree})

	require.Len(t, firstViolations, 1)
	assert.Equal(t, []any{4}, firstViolations[0].Args)
	assert.Equal(t, check.SeverityInfo, firstViolations[0].Severity)
	assert.Equal(t, firstViolations, secondViolations)
}

func TestPlan_DefaultKinds(t *testing.T) {
	t.Parallel()

	plan, err := walker.NewPlan(newCounterRegistry(t), []walker.PlanEntry{{ID: "Counter"}})
	require.NoError(t, err)

	w, err := plan.NewWalker()
	require.NoError(t, err)

	violations := w.Walk(walker.Input{Root: newTree()})
	require.Len(t, violations, 1)
	assert.Equal(t, []any{3}, violations[0].Args)
}

func TestPlan_Errors(t *testing.T) {
	t.Parallel()

	registry := newCounterRegistry(t)

	_, err := walker.NewPlan(registry, []walker.PlanEntry{{ID: "Missing"}})
	require.ErrorIs(t, err, check.ErrUnknownCheck)

	_, err = walker.NewPlan(registry, []walker.PlanEntry{{ID: "Counter", Options: map[string]any{"limit": -1}}})
	require.ErrorIs(t, err, errBadOption)

	_, err = walker.NewPlan(registry, []walker.PlanEntry{{ID: "Counter", Kinds: check.Kinds("decl")}})
	require.ErrorIs(t, err, walker.ErrUnknownKind)

	_, err = walker.NewPlan(registry, []walker.PlanEntry{{ID: "Counter"}, {ID: "Counter"}})
	require.ErrorIs(t, err, walker.ErrDuplicateCheck)
}
