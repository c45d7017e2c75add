package core

import (
	"strconv"

	"github.com/ygrebnov/checktype/constraint"
)

// CheckArguments checks every bound argument that has a declared constraint,
// in parameter order, and returns the first mismatch.
func (s *Service) CheckArguments(b Binding) error {
	var first error
	s.walkArguments(b, func(err error) bool {
		first = err
		return false
	})
	return first
}

// walkArguments checks the bound arguments in parameter order, variadic
// extras last as name[i], and passes each mismatch to report. The walk stops
// when report returns false.
func (s *Service) walkArguments(b Binding, report func(error) bool) {
	for i := 0; i < s.sig.Fixed(); i++ {
		p := s.sig.Param(i)
		v, ok := b.Value(i)
		if !p.Declared || !ok {
			continue
		}
		if err := s.checkValue(p.Name, v, p.Constraint); err != nil && !report(err) {
			return
		}
	}

	if !s.sig.Variadic() {
		return
	}
	p := s.sig.Param(s.sig.Len() - 1)
	if !p.Declared {
		return
	}
	for i, v := range b.extras {
		if err := s.checkValue(p.Name+"["+strconv.Itoa(i)+"]", v, p.Constraint); err != nil && !report(err) {
			return
		}
	}
}

// CheckResult checks a result against the declared return constraint, if any.
func (s *Service) CheckResult(result any) error {
	ret, ok := s.sig.Return()
	if !ok {
		return nil
	}
	if observed := constraint.TypeOf(result); !constraint.Matches(observed, ret) {
		return &ReturnTypeError{
			Callable: s.sig.Name(),
			Declared: ret,
			Observed: observed,
		}
	}
	return nil
}

// CheckAll binds the arguments and checks every one of them without
// stopping at the first mismatch. A binding failure is returned alone.
func (s *Service) CheckAll(args []any, kwargs map[string]any) []error {
	b, err := s.Bind(args, kwargs)
	if err != nil {
		return []error{err}
	}

	var errs []error
	s.walkArguments(b, func(err error) bool {
		errs = append(errs, err)
		return true
	})
	return errs
}

func (s *Service) checkValue(name string, v any, c constraint.Constraint) error {
	if observed := constraint.TypeOf(v); !constraint.Matches(observed, c) {
		return &ArgumentTypeError{
			Callable: s.sig.Name(),
			Param:    name,
			Declared: c,
			Observed: observed,
		}
	}
	return nil
}
