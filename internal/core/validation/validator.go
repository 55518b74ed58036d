// Package validation gates every write with a two-phase check: first a
// generic completeness pass over the entity's own field enumeration,
// then entity-specific business rules evaluated in declaration order.
package validation

import "strings"

// NullPropertiesMessage is the single fixed message raised when the
// completeness phase finds an absent field. The rule phase never runs in
// that case.
const NullPropertiesMessage = "some or all properties of the entity were null"

// Entity is implemented by every persistable type. FieldValues returns
// the entity's declared fields with nil pointers and nil maps normalised
// to untyped nil, so no runtime reflection is needed.
type Entity interface {
	FieldValues() []any
}

// Error carries the composite violation message for an invalid entity.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

func newError(message string) *Error {
	return &Error{message: message}
}

// Validator checks one entity type against its rule set.
type Validator[T Entity] struct {
	rules func(T) []string
}

// New builds a Validator from a rule function returning one violation
// string per failed predicate, in declaration order.
func New[T Entity](rules func(T) []string) Validator[T] {
	return Validator[T]{rules: rules}
}

// Validate runs the completeness phase and, only if every field is
// present, the rule phase. Rule violations are joined with newlines into
// a single Error.
func (v Validator[T]) Validate(entity T) error {
	for _, field := range entity.FieldValues() {
		if field == nil {
			return newError(NullPropertiesMessage)
		}
	}
	if violations := v.rules(entity); len(violations) > 0 {
		return newError(strings.Join(violations, "\n"))
	}
	return nil
}
