package flow

import (
	"errors"
	"fmt"
)

// Name identifies a flow. It doubles as the flow's route segment.
type Name string

// InputType is the kind of input a field is rendered as.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
)

// Field describes one user-editable text input.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Type        InputType `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Secret reports whether the value must never be echoed back to a page.
func (f Field) Secret() bool {
	return f.Type == InputPassword
}

// Link is an auxiliary link shown under a flow's fields.
type Link struct {
	Name string `json:"name" yaml:"name"`
	To   string `json:"to" yaml:"to"`
}

// Definition configures a Controller for one flow.
type Definition struct {
	Name        Name
	Title       string
	Intro       string
	SubmitLabel string
	Fields      []Field
	// Required lists the field ids that must be non-blank before submission.
	// Nothing is required implicitly.
	Required []string
	Resolver Resolver
	Links    []Link
}

var ErrInvalidDefinition = errors.New("invalid flow definition")

// Validate checks that the definition can drive a Controller.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if d.Resolver == nil {
		return fmt.Errorf("%w: %s: missing resolver", ErrInvalidDefinition, d.Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.ID == "" {
			return fmt.Errorf("%w: %s: field without id", ErrInvalidDefinition, d.Name)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidDefinition, d.Name, f.ID)
		}
		seen[f.ID] = true
	}
	for _, id := range d.Required {
		if !seen[id] {
			return fmt.Errorf("%w: %s: required field %q is not declared", ErrInvalidDefinition, d.Name, id)
		}
	}
	return nil
}

// Field returns the declared field with the given id.
func (d Definition) Field(id string) (Field, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// IsRequired reports whether id gates submission.
func (d Definition) IsRequired(id string) bool {
	for _, r := range d.Required {
		if r == id {
			return true
		}
	}
	return false
}
