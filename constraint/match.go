package constraint

import "reflect"

// TypeOf returns the runtime type of v, or nil for an untyped nil.
func TypeOf(v any) reflect.Type {
	return reflect.TypeOf(v)
}

// Matches reports whether a value of the observed runtime type satisfies c.
// A nil observed type stands for an untyped nil value.
// Selection strategy for every declared type T:
//  1. observed == T short-circuits to true.
//  2. Untyped nil matches NoneType and nillable kinds.
//  3. Otherwise observed must be assignable to T (interfaces included).
func Matches(observed reflect.Type, c Constraint) bool {
	switch c.kind {
	case KindWildcard:
		return true
	case KindSingle, KindAlternatives:
		for _, t := range c.types {
			if matchesType(observed, t) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MatchesValue is Matches applied to the runtime type of v.
func MatchesValue(v any, c Constraint) bool {
	return Matches(TypeOf(v), c)
}

func matchesType(observed, declared reflect.Type) bool {
	if observed == declared {
		return true
	}
	if observed == nil {
		return declared == NoneType || nillable(declared)
	}
	if declared == NoneType || declared == nil {
		return false
	}
	return assignable(observed, declared)
}

// AssignableTo reports whether every value accepted by c can be passed where
// a t is expected. A wildcard only fits an empty interface.
func (c Constraint) AssignableTo(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch c.kind {
	case KindWildcard:
		return t.Kind() == reflect.Interface && t.NumMethod() == 0
	case KindSingle, KindAlternatives:
		for _, m := range c.types {
			if m == NoneType {
				if !nillable(t) {
					return false
				}
				continue
			}
			if !m.AssignableTo(t) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Overlaps reports whether some value of type t could satisfy c.
func (c Constraint) Overlaps(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch c.kind {
	case KindWildcard:
		return true
	case KindSingle, KindAlternatives:
		for _, m := range c.types {
			if m == NoneType {
				if nillable(t) {
					return true
				}
				continue
			}
			if m.AssignableTo(t) || t.AssignableTo(m) {
				return true
			}
			// A value may implement two unrelated interfaces at once.
			if m.Kind() == reflect.Interface && t.Kind() == reflect.Interface {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
