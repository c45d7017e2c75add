package descriptor

import (
	"reflect"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constants"
	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/errors"
)

// ParseType parses a type expression such as "int | string", "*time.Time",
// "[]any" or "map[string]int" into a constraint. "any" alone is the
// wildcard and "nil" admits untyped nil. A nil registry means DefaultTypes.
func ParseType(expr string, types *Types) (constraint.Constraint, error) {
	types = types.orDefault()

	terms := splitTerms(expr)
	if len(terms) == 0 {
		return constraint.Constraint{}, errorc.With(
			errors.ErrMalformedConstraint,
			errorc.String(errors.ErrorFieldTypeExpr, expr),
			errorc.String(errors.ErrorFieldReason, "empty type expression"),
		)
	}

	var (
		ts       []reflect.Type
		wildcard bool
	)
	for _, term := range terms {
		switch term {
		case "":
			return constraint.Constraint{}, errorc.With(
				errors.ErrMalformedConstraint,
				errorc.String(errors.ErrorFieldTypeExpr, expr),
				errorc.String(errors.ErrorFieldReason, "empty alternative"),
			)
		case constants.TypeAny:
			wildcard = true
		case constants.TypeNil:
			ts = append(ts, constraint.NoneType)
		default:
			t, err := resolve(term, expr, types)
			if err != nil {
				return constraint.Constraint{}, err
			}
			ts = append(ts, t)
		}
	}
	if wildcard {
		return constraint.Any(), nil
	}
	return constraint.OneOf(ts...)
}

// splitTerms splits on top-level separators only; separators inside
// brackets do not split.
func splitTerms(expr string) []string {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	var terms []string
	depth, start := 0, 0
	for i, r := range expr {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case rune(constants.TypeSeparator[0]):
			if depth == 0 {
				terms = append(terms, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	return append(terms, strings.TrimSpace(expr[start:]))
}

// resolve maps a single type term to a Go type.
func resolve(term, expr string, types *Types) (reflect.Type, error) {
	term = strings.TrimSpace(term)
	switch {
	case strings.HasPrefix(term, "*"):
		elem, err := resolve(term[1:], expr, types)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil

	case strings.HasPrefix(term, "[]"):
		elem, err := resolve(term[2:], expr, types)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil

	case strings.HasPrefix(term, "map["):
		end := closingBracket(term, len("map"))
		if end < 0 {
			return nil, malformed(expr, "unbalanced brackets in "+term)
		}
		key, err := resolve(term[len("map["):end], expr, types)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, malformed(expr, "map key "+key.String()+" is not comparable")
		}
		elem, err := resolve(term[end+1:], expr, types)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}

	if t, ok := types.Lookup(term); ok {
		return t, nil
	}
	return nil, errorc.With(
		errors.ErrUnknownType,
		errorc.String(errors.ErrorFieldTypeName, term),
		errorc.String(errors.ErrorFieldTypeExpr, expr),
	)
}

// closingBracket returns the index of the bracket closing the one at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func malformed(expr, reason string) error {
	return errorc.With(
		errors.ErrMalformedConstraint,
		errorc.String(errors.ErrorFieldTypeExpr, expr),
		errorc.String(errors.ErrorFieldReason, reason),
	)
}
