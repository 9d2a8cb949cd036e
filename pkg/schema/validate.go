package schema

import (
	"sort"
	"strings"
)

// Schema is a map of field names to their expected types.
// Example: {"id": ID(), "name": String()}
type Schema map[string]Type

// Fields returns the field names in lexical order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String describes the schema as "field:type" pairs, e.g. "id:id name:string".
func (s Schema) String() string {
	parts := make([]string, 0, len(s))
	for _, name := range s.Fields() {
		parts = append(parts, name+":"+s[name].Name())
	}
	return strings.Join(parts, " ")
}

// Validate checks that every field of schema is present in data with the right type.
// Extra fields are ignored. Failures are reported together, in field order.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for _, fieldName := range schema.Fields() {
		value, exists := data[fieldName]
		if !exists || value == nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := schema[fieldName].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
