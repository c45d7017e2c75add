package checktype

import (
	"encoding/json"
	stderrors "errors"
	"strings"
)

// Violation is a single contract failure found by Wrapper.Check.
// It unwraps to the underlying typed error so callers can use errors.Is/As.
type Violation struct {
	Param string // parameter name; "rest[i]" for extra variadic arguments
	Stage Stage
	Err   error
}

func (v Violation) Error() string { return v.Err.Error() }

func (v Violation) Unwrap() error { return v.Err }

// MarshalJSON exports a Violation as an object with param, stage and message fields.
func (v Violation) MarshalJSON() ([]byte, error) {
	msg := ""
	if v.Err != nil {
		msg = v.Err.Error()
	}
	return json.Marshal(struct {
		Param   string `json:"param,omitempty"`
		Stage   string `json:"stage"`
		Message string `json:"message"`
	}{
		Param:   v.Param,
		Stage:   v.Stage.String(),
		Message: msg,
	})
}

// Violations accumulates every failure found by one Wrapper.Check.
// It unwraps to errors.Join of the underlying causes.
type Violations struct {
	issues []Violation
}

func newViolations(errs []error) *Violations {
	if len(errs) == 0 {
		return nil
	}
	vs := &Violations{issues: make([]Violation, 0, len(errs))}
	for _, err := range errs {
		v := Violation{Err: err, Stage: StageArgChecking}
		var (
			ate *ArgumentTypeError
			abe *ArgumentBindingError
		)
		switch {
		case stderrors.As(err, &ate):
			v.Param = ate.Param
		case stderrors.As(err, &abe):
			v.Param, v.Stage = abe.Param, StageBinding
		}
		vs.issues = append(vs.issues, v)
	}
	return vs
}

// Len returns the number of accumulated violations.
func (vs *Violations) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.issues)
}

// All returns a copy of the accumulated violations in argument order.
func (vs *Violations) All() []Violation {
	if vs == nil {
		return nil
	}
	return append([]Violation(nil), vs.issues...)
}

// Error returns a human-readable, multi-line description of all violations.
func (vs *Violations) Error() string {
	switch vs.Len() {
	case 0:
		return ""
	case 1:
		return vs.issues[0].Error()
	}
	var b strings.Builder
	b.WriteString("contract violated (\n")
	for i, v := range vs.issues {
		b.WriteString("  ")
		b.WriteString(v.Error())
		if i < len(vs.issues)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n)")
	return b.String()
}

func (vs *Violations) Unwrap() error {
	if vs == nil {
		return nil
	}
	errs := make([]error, 0, len(vs.issues))
	for _, v := range vs.issues {
		errs = append(errs, v.Err)
	}
	return stderrors.Join(errs...)
}

// ForParam returns the violations reported for a given parameter.
func (vs *Violations) ForParam(name string) []Violation {
	if vs == nil {
		return nil
	}
	var out []Violation
	for _, v := range vs.issues {
		if v.Param == name {
			out = append(out, v)
		}
	}
	return out
}

// Params returns the names of the parameters with violations, unique, in
// order of first occurrence.
func (vs *Violations) Params() []string {
	if vs == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range vs.issues {
		if _, ok := seen[v.Param]; !ok {
			seen[v.Param] = struct{}{}
			out = append(out, v.Param)
		}
	}
	return out
}

// MarshalJSON exports Violations as a list of violation objects.
func (vs *Violations) MarshalJSON() ([]byte, error) {
	if vs == nil {
		return []byte("null"), nil
	}
	return json.Marshal(vs.issues)
}
