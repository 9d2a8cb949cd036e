package schema

import (
	"fmt"
	"strings"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "contact").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct {
	nonBlank bool
}

func (t *StringType) Name() string {
	if t.nonBlank {
		return "id"
	}
	return "string"
}

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if t.nonBlank && strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be blank")
	}
	return nil
}

// ObjectType validates a nested object against its own Schema.
type ObjectType struct {
	name   string
	fields Schema
}

func (t *ObjectType) Name() string { return t.name }

func (t *ObjectType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	return Validate(t.fields, m)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator. The empty string is accepted.
func String() Type { return &StringType{} }

// ID creates a validator for identifiers: non-blank strings.
func ID() Type { return &StringType{nonBlank: true} }

// Object creates a validator for a nested object.
func Object(name string, fields Schema) Type {
	return &ObjectType{name: name, fields: fields}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
