package flows

import (
	"errors"
	"fmt"

	"github.com/hnrobert/envportal/internal/flow"
)

var ErrUnknownFlow = errors.New("unknown flow")

// Registry holds the flow definitions in display order.
type Registry struct {
	defs []flow.Definition
}

// NewRegistry builds the standard four flows around v. A nil v selects the
// PlaceholderVerifier.
func NewRegistry(v Verifier) (*Registry, error) {
	if v == nil {
		v = PlaceholderVerifier{}
	}
	return NewRegistryOf(
		LoginDefinition(v),
		SignupDefinition(),
		ForgotPasswordDefinition(v),
		ResetPasswordDefinition(v),
	)
}

// NewRegistryOf builds a registry from arbitrary definitions.
func NewRegistryOf(defs ...flow.Definition) (*Registry, error) {
	seen := map[flow.Name]bool{}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate flow %q", flow.ErrInvalidDefinition, d.Name)
		}
		seen[d.Name] = true
	}
	return &Registry{defs: defs}, nil
}

// Get returns the definition named n.
func (r *Registry) Get(n flow.Name) (flow.Definition, error) {
	for _, d := range r.defs {
		if d.Name == n {
			return d, nil
		}
	}
	return flow.Definition{}, fmt.Errorf("%w: %q", ErrUnknownFlow, n)
}

// All returns every definition in display order.
func (r *Registry) All() []flow.Definition {
	return append([]flow.Definition(nil), r.defs...)
}

// Start returns a fresh controller for the flow named n.
func (r *Registry) Start(n flow.Name, opts ...flow.Option) (*flow.Controller, error) {
	d, err := r.Get(n)
	if err != nil {
		return nil, err
	}
	return flow.New(d, opts...), nil
}

// Path returns the route a flow is served on.
func Path(n flow.Name) string {
	return "/" + string(n)
}
