package constraint

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constants"
	"github.com/ygrebnov/checktype/errors"
)

// Kind tells which variant a Constraint is.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindWildcard
	KindSingle
	KindAlternatives
)

func (k Kind) String() string {
	switch k {
	case KindWildcard:
		return "wildcard"
	case KindSingle:
		return "single"
	case KindAlternatives:
		return "alternatives"
	default:
		return "invalid"
	}
}

// None is the marker type standing for an untyped nil in alternatives,
// e.g. OneOf(reflect.TypeOf(0), NoneType) accepts an int or nil.
type None struct{}

// NoneType is the reflect.Type of None.
var NoneType = reflect.TypeOf(None{})

// Constraint is an immutable predicate over runtime types.
// The zero value is invalid and never matches.
type Constraint struct {
	kind  Kind
	types []reflect.Type
}

// Any returns the wildcard constraint.
func Any() Constraint {
	return Constraint{kind: KindWildcard}
}

// Of returns a single-type constraint for t.
func Of(t reflect.Type) (Constraint, error) {
	if t == nil {
		return Constraint{}, errorc.With(
			errors.ErrMalformedConstraint,
			errorc.String(errors.ErrorFieldReason, "nil type"),
		)
	}
	return Constraint{kind: KindSingle, types: []reflect.Type{t}}, nil
}

// For returns a single-type constraint for T. T may be an interface type.
func For[T any]() Constraint {
	// Capture the static type of T even when T is an interface.
	return Constraint{kind: KindSingle, types: []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()}}
}

// OneOf returns an alternatives constraint. Declaration order is kept and
// repeated types are dropped. A single distinct type yields a Single constraint.
func OneOf(types ...reflect.Type) (Constraint, error) {
	if len(types) == 0 {
		return Constraint{}, errorc.With(
			errors.ErrMalformedConstraint,
			errorc.String(errors.ErrorFieldReason, "no alternatives"),
		)
	}
	out := make([]reflect.Type, 0, len(types))
	for i, t := range types {
		if t == nil {
			return Constraint{}, errorc.With(
				errors.ErrMalformedConstraint,
				errorc.String(errors.ErrorFieldReason, "nil type"),
				errorc.String(errors.ErrorFieldParamPosition, strconv.Itoa(i)),
			)
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	if len(out) == 1 {
		return Constraint{kind: KindSingle, types: out}, nil
	}
	return Constraint{kind: KindAlternatives, types: out}, nil
}

// Union merges constraints into one. A wildcard member makes the union a wildcard.
func Union(cs ...Constraint) (Constraint, error) {
	var types []reflect.Type
	for _, c := range cs {
		switch c.kind {
		case KindWildcard:
			return Any(), nil
		case KindSingle, KindAlternatives:
			types = append(types, c.types...)
		default:
			return Constraint{}, errorc.With(
				errors.ErrMalformedConstraint,
				errorc.String(errors.ErrorFieldReason, "invalid member"),
			)
		}
	}
	return OneOf(types...)
}

// Must panics if err is non-nil. Intended for package-level declarations.
func Must(c Constraint, err error) Constraint {
	if err != nil {
		panic(err)
	}
	return c
}

func (c Constraint) Kind() Kind { return c.kind }

// Types returns a copy of the declared types (empty for the wildcard).
func (c Constraint) Types() []reflect.Type { return slices.Clone(c.types) }

// Valid reports whether c is well-formed.
func (c Constraint) Valid() bool {
	switch c.kind {
	case KindWildcard:
		return true
	case KindSingle:
		return len(c.types) == 1 && c.types[0] != nil
	case KindAlternatives:
		return len(c.types) > 1 && !slices.Contains(c.types, nil)
	default:
		return false
	}
}

func (c Constraint) IsWildcard() bool { return c.kind == KindWildcard }

// Equal reports whether both constraints have the same variant and types in the same order.
func (c Constraint) Equal(o Constraint) bool {
	return c.kind == o.kind && slices.Equal(c.types, o.types)
}

// String renders c the way descriptors spell it: "any", "int", "int | string".
func (c Constraint) String() string {
	switch c.kind {
	case KindWildcard:
		return constants.TypeAny
	case KindSingle, KindAlternatives:
		names := make([]string, len(c.types))
		for i, t := range c.types {
			names[i] = TypeName(t)
		}
		return strings.Join(names, " "+constants.TypeSeparator+" ")
	default:
		return "<invalid>"
	}
}

// TypeName renders a runtime type, using "nil" for untyped nil and NoneType.
func TypeName(t reflect.Type) string {
	if t == nil || t == NoneType {
		return constants.TypeNil
	}
	return t.String()
}
