package core

import (
	"slices"
	"strconv"
)

// Binding maps the parameters of one call to the values supplied for them.
// It lives for a single invocation.
type Binding struct {
	values []any
	bound  []bool
	extras []any
}

// Value returns the value bound to the fixed parameter at position i.
func (b Binding) Value(i int) (any, bool) {
	if i < 0 || i >= len(b.values) || !b.bound[i] {
		return nil, false
	}
	return b.values[i], true
}

// Extras returns the positional arguments collected by the variadic parameter.
func (b Binding) Extras() []any { return slices.Clone(b.extras) }

// Len returns the number of bound values, extras included.
func (b Binding) Len() int {
	n := len(b.extras)
	for _, ok := range b.bound {
		if ok {
			n++
		}
	}
	return n
}

// Positional returns the bound values in parameter order followed by the extras.
// Unbound optional parameters yield nil.
func (b Binding) Positional() []any {
	out := make([]any, 0, len(b.values)+len(b.extras))
	out = append(out, b.values...)
	return append(out, b.extras...)
}

// Bind merges positional arguments, matched by position, with named
// arguments, matched by name, into a Binding.
func (s *Service) Bind(args []any, kwargs map[string]any) (Binding, error) {
	fixed := s.sig.Fixed()
	b := Binding{
		values: make([]any, fixed),
		bound:  make([]bool, fixed),
	}

	for i, a := range args {
		switch {
		case i < fixed:
			b.values[i] = a
			b.bound[i] = true
		case s.sig.Variadic():
			b.extras = append(b.extras, a)
		default:
			return Binding{}, s.bindingError("", "got "+strconv.Itoa(len(args))+
				" positional arguments for "+strconv.Itoa(fixed)+" parameters")
		}
	}

	// Sorted for a deterministic first error.
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		p, i, ok := s.sig.Lookup(name)
		switch {
		case !ok:
			return Binding{}, s.bindingError(name, "unknown parameter")
		case p.Variadic:
			return Binding{}, s.bindingError(name, "variadic parameter cannot be named")
		case b.bound[i]:
			return Binding{}, s.bindingError(name, "multiple values for parameter")
		}
		b.values[i] = kwargs[name]
		b.bound[i] = true
	}

	for i := 0; i < fixed; i++ {
		if p := s.sig.Param(i); !b.bound[i] && !p.Optional {
			return Binding{}, s.bindingError(p.Name, "missing argument")
		}
	}
	return b, nil
}

func (s *Service) bindingError(param, reason string) error {
	return &ArgumentBindingError{Callable: s.sig.Name(), Param: param, Reason: reason}
}
