package check

import (
	"errors"
	"fmt"
	pathpkg "path"
	"slices"
	"strings"
)

// Registry errors.
var (
	ErrUnknownCheck   = errors.New("unknown check id")
	ErrDuplicateCheck = errors.New("duplicate check id")
	ErrInvalidGlob    = errors.New("invalid check glob")
)

// Factory creates a fresh check instance.
type Factory func() Check

// Descriptor contains stable check metadata.
type Descriptor struct {
	ID          string
	Description string
	// OptIn is set for checks that glob patterns do not select.
	OptIn bool
}

// Registry maps check ids to factories with deterministic ordering.
type Registry struct {
	ordered   []Descriptor
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the id of the check it creates.
func (r *Registry) Register(description string, factory Factory) error {
	instance := factory()
	id := instance.ID()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, id)
	}

	r.factories[id] = factory
	optIn := false
	if opt, ok := instance.(OptIn); ok {
		optIn = opt.OptIn()
	}

	r.ordered = append(r.ordered, Descriptor{ID: id, Description: description, OptIn: optIn})

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(description string, factory Factory) {
	if err := r.Register(description, factory); err != nil {
		panic(err)
	}
}

// New creates a fresh instance of the check registered under id.
func (r *Registry) New(id string) (Check, error) {
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, id)
	}

	return factory(), nil
}

// All returns all descriptors in registration order.
func (r *Registry) All() []Descriptor {
	return slices.Clone(r.ordered)
}

// IDs returns all ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ordered))
	for _, descriptor := range r.ordered {
		ids = append(ids, descriptor.ID)
	}

	return ids
}

// ExpandPatterns resolves ids and glob patterns against registered ids,
// preserving first-seen order and dropping repeats. Globs never select
// opt-in checks; name those by id.
func (r *Registry) ExpandPatterns(patterns []string) ([]string, error) {
	selected := make([]string, 0, len(r.ordered))
	seen := make(map[string]struct{}, len(r.ordered))

	for _, raw := range patterns {
		ids, err := r.resolvePattern(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}

			seen[id] = struct{}{}
			selected = append(selected, id)
		}
	}

	return selected, nil
}

func (r *Registry) resolvePattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		if _, exists := r.factories[pattern]; !exists {
			if closest := r.closest(pattern); closest != "" {
				return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownCheck, pattern, closest)
			}

			return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, pattern)
		}

		return []string{pattern}, nil
	}

	var (
		matched []string
		skipped int
	)

	for _, descriptor := range r.ordered {
		isMatch, err := pathpkg.Match(pattern, descriptor.ID)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}

		switch {
		case !isMatch:
		case descriptor.OptIn:
			skipped++
		default:
			matched = append(matched, descriptor.ID)
		}
	}

	if len(matched) == 0 && skipped == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, pattern)
	}

	return matched, nil
}
