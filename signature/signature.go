package signature

import (
	"strconv"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/errors"
	"github.com/ygrebnov/checktype/hints"
)

// Param is one formal parameter of a Signature.
type Param struct {
	Name       string
	Constraint constraint.Constraint // valid only when Declared
	Declared   bool
	Optional   bool
	Variadic   bool
}

// Signature is the immutable record of a callable's parameter names, their
// constraints and the return constraint. It is safe for concurrent use.
type Signature struct {
	name      string
	doc       string
	params    []Param
	index     map[string]int
	variadic  bool
	ret       constraint.Constraint
	hasReturn bool
}

// New builds a Signature from a declaration. Names must be non-empty and
// unique, and every declared constraint must be well-formed.
func New(h hints.Hints) (*Signature, error) {
	if h.Variadic && len(h.Params) == 0 {
		return nil, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, h.Name),
			errorc.String(errors.ErrorFieldReason, "variadic declaration without parameters"),
		)
	}

	s := &Signature{
		name:     h.Name,
		doc:      h.Doc,
		params:   make([]Param, len(h.Params)),
		index:    make(map[string]int, len(h.Params)),
		variadic: h.Variadic,
	}
	for i, hp := range h.Params {
		if hp.Name == "" {
			return nil, errorc.With(
				errors.ErrSignatureExtraction,
				errorc.String(errors.ErrorFieldCallableName, h.Name),
				errorc.String(errors.ErrorFieldParamPosition, strconv.Itoa(i)),
				errorc.String(errors.ErrorFieldReason, "empty parameter name"),
			)
		}
		if _, exists := s.index[hp.Name]; exists {
			return nil, errorc.With(
				errors.ErrSignatureExtraction,
				errorc.String(errors.ErrorFieldCallableName, h.Name),
				errorc.String(errors.ErrorFieldParamName, hp.Name),
				errorc.String(errors.ErrorFieldReason, "duplicate parameter name"),
			)
		}
		p := Param{
			Name:     hp.Name,
			Optional: hp.Optional,
			Variadic: h.Variadic && i == len(h.Params)-1,
		}
		if hp.Type != nil {
			if !hp.Type.Valid() {
				return nil, errorc.With(
					errors.ErrMalformedConstraint,
					errorc.String(errors.ErrorFieldCallableName, h.Name),
					errorc.String(errors.ErrorFieldParamName, hp.Name),
				)
			}
			p.Constraint = *hp.Type
			p.Declared = true
		}
		s.params[i] = p
		s.index[hp.Name] = i
	}

	if h.Return != nil {
		if !h.Return.Valid() {
			return nil, errorc.With(
				errors.ErrMalformedConstraint,
				errorc.String(errors.ErrorFieldCallableName, h.Name),
				errorc.String(errors.ErrorFieldReason, "return"),
			)
		}
		s.ret = *h.Return
		s.hasReturn = true
	}
	return s, nil
}

func (s *Signature) Name() string { return s.name }

func (s *Signature) Doc() string { return s.doc }

// Len returns the number of formal parameters, the variadic one included.
func (s *Signature) Len() int { return len(s.params) }

// Fixed returns the number of parameters that positional arguments fill one to one.
func (s *Signature) Fixed() int {
	if s.variadic {
		return len(s.params) - 1
	}
	return len(s.params)
}

func (s *Signature) Variadic() bool { return s.variadic }

// Param returns the parameter at position i.
func (s *Signature) Param(i int) Param { return s.params[i] }

// Names returns the parameter names in declaration order.
func (s *Signature) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the parameter named name and its position.
func (s *Signature) Lookup(name string) (Param, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, -1, false
	}
	return s.params[i], i, true
}

// Constraint returns the declared constraint of the named parameter.
func (s *Signature) Constraint(name string) (constraint.Constraint, bool) {
	p, _, ok := s.Lookup(name)
	if !ok || !p.Declared {
		return constraint.Constraint{}, false
	}
	return p.Constraint, true
}

// Return returns the declared return constraint, if any.
func (s *Signature) Return() (constraint.Constraint, bool) {
	return s.ret, s.hasReturn
}

// Hints returns a declaration equivalent to s.
func (s *Signature) Hints() hints.Hints {
	h := hints.Hints{
		Name:     s.name,
		Doc:      s.doc,
		Params:   make([]hints.Param, len(s.params)),
		Variadic: s.variadic,
	}
	for i, p := range s.params {
		h.Params[i] = hints.Param{Name: p.Name, Optional: p.Optional}
		if p.Declared {
			h.Params[i].Type = hints.Declared(p.Constraint)
		}
	}
	if s.hasReturn {
		h.Return = hints.Declared(s.ret)
	}
	return h
}

// String renders s in a Go-like form, e.g. "func(a int, b int | string, rest ...any) int".
// Undeclared parameters show their name only; optional ones end with "?".
func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteString("?")
		}
		if !p.Declared && !p.Variadic {
			continue
		}
		b.WriteString(" ")
		if p.Variadic {
			b.WriteString("...")
		}
		if p.Declared {
			b.WriteString(p.Constraint.String())
		} else {
			b.WriteString("any")
		}
	}
	b.WriteString(")")
	if s.hasReturn {
		b.WriteString(" ")
		b.WriteString(s.ret.String())
	}
	return b.String()
}
