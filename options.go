package checktype

import (
	"log/slog"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/hints"
)

// Option configures a Wrapper at Build time.
type Option func(*options)

type options struct {
	decl       hints.Hints
	declared   bool
	names      []string
	paramTypes []namedConstraint
	ret        *constraint.Constraint
	name       string
	doc        string
	observer   Observer
	logger     *slog.Logger
}

type namedConstraint struct {
	name string
	c    constraint.Constraint
}

// WithHints supplies an explicit declaration, e.g. one loaded from a
// descriptor file. For Go funcs it narrows the types read from the func.
func WithHints(h hints.Hints) Option {
	return func(o *options) {
		o.decl = h.Clone()
		o.declared = true
	}
}

// WithParams names the callable's parameters in declaration order.
func WithParams(names ...string) Option {
	return func(o *options) {
		o.names = append([]string(nil), names...)
		o.declared = true
	}
}

// WithParamType declares the constraint of one named parameter.
func WithParamType(name string, c constraint.Constraint) Option {
	return func(o *options) {
		o.paramTypes = append(o.paramTypes, namedConstraint{name: name, c: c})
	}
}

// WithReturnType declares the return constraint.
func WithReturnType(c constraint.Constraint) Option {
	return func(o *options) { o.ret = hints.Declared(c) }
}

// WithName sets the display name reported by the Wrapper.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDoc sets the documentation reported by the Wrapper.
func WithDoc(doc string) Option {
	return func(o *options) { o.doc = doc }
}

// WithObserver registers a sink for per-invocation outcomes.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger used for contract violations (Debug level).
// If not specified, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// override returns the explicit declaration of a Callable target, with
// WithParams names applied on top of WithHints.
func (o *options) override() (hints.Hints, error) {
	h := o.decl.Clone()
	if len(h.Params) == 0 && len(o.names) > 0 {
		h.Params = make([]hints.Param, len(o.names))
	}
	return o.rename(h)
}

// rename applies WithParams names to a merged declaration. It renames only
// and leaves types, Optional and Variadic as they are.
func (o *options) rename(h hints.Hints) (hints.Hints, error) {
	if len(o.names) == 0 {
		return h, nil
	}
	if len(h.Params) != len(o.names) {
		return hints.Hints{}, extractionError("WithParams names do not match the declared parameters")
	}
	for i, name := range o.names {
		h.Params[i].Name = name
	}
	return h, nil
}

// patch applies the per-item options to a merged declaration.
func (o *options) patch(h hints.Hints) (hints.Hints, error) {
	for _, pt := range o.paramTypes {
		i := indexOf(h, pt.name)
		if i < 0 {
			return hints.Hints{}, extractionError("WithParamType names unknown parameter " + pt.name)
		}
		h.Params[i].Type = hints.Declared(pt.c)
	}
	if o.ret != nil {
		h.Return = hints.Declared(*o.ret)
	}
	if o.name != "" {
		h.Name = o.name
	}
	if o.doc != "" {
		h.Doc = o.doc
	}
	return h, nil
}

func indexOf(h hints.Hints, name string) int {
	for i, p := range h.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
