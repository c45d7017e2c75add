// Package hints reads what a callable declares about its parameters and result.
//
// Compiled Go funcs do not keep parameter names, so a declaration always
// comes from one of: a Describer implementation, an explicit Hints value, or
// FromFunc with the names supplied by the caller.
package hints

import (
	"slices"

	"github.com/ygrebnov/checktype/constraint"
)

// Param is one formal parameter of a declaration.
type Param struct {
	Name string
	// Type is the declared constraint; nil means undeclared (always passes).
	Type *constraint.Constraint
	// Optional parameters may be left unbound by a call.
	Optional bool
}

// Hints is the declaration of a callable: its identity, its ordered
// parameters and an optional return constraint.
type Hints struct {
	Name   string
	Doc    string
	Params []Param
	// Variadic marks the last parameter as a catch-all for extra positional
	// arguments. Its Type, if any, applies to every extra argument.
	Variadic bool
	// Return is the declared result constraint; nil means undeclared.
	Return *constraint.Constraint
}

// Describer is implemented by callables that can declare themselves.
type Describer interface {
	Describe() (Hints, error)
}

// Declared returns a pointer to a copy of c, for use in Param.Type and Hints.Return.
func Declared(c constraint.Constraint) *constraint.Constraint {
	return &c
}

// Names returns the parameter names in declaration order.
func (h Hints) Names() []string {
	names := make([]string, len(h.Params))
	for i, p := range h.Params {
		names[i] = p.Name
	}
	return names
}

// Clone returns a deep copy of h.
func (h Hints) Clone() Hints {
	out := h
	out.Params = slices.Clone(h.Params)
	for i, p := range out.Params {
		if p.Type != nil {
			out.Params[i].Type = Declared(*p.Type)
		}
	}
	if h.Return != nil {
		out.Return = Declared(*h.Return)
	}
	return out
}
