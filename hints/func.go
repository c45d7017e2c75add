package hints

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func is a reflected Go func ready to be called with bound arguments.
type Func struct {
	fn        reflect.Value
	typ       reflect.Type
	hasResult bool
	hasError  bool
}

// FromFunc extracts a declaration from a Go func value. One name must be
// given per parameter. Supported result shapes are (), (T), (error) and
// (T, error); a trailing error is the func's own failure, not its result.
func FromFunc(fn any, names ...string) (Hints, *Func, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return Hints{}, nil, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableKind, kindName(v)),
			errorc.String(errors.ErrorFieldReason, "not a func"),
		)
	}
	if v.IsNil() {
		return Hints{}, nil, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldReason, "nil func"),
		)
	}

	typ := v.Type()
	f := &Func{fn: v, typ: typ}
	if err := f.readResults(); err != nil {
		return Hints{}, nil, err
	}

	if len(names) != typ.NumIn() {
		reason := "parameter names not declared"
		if len(names) > 0 {
			reason = "got " + strconv.Itoa(len(names)) + " parameter names for " + strconv.Itoa(typ.NumIn()) + " parameters"
		}
		return Hints{}, nil, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, funcName(v)),
			errorc.String(errors.ErrorFieldReason, reason),
		)
	}

	h := Hints{
		Name:     funcName(v),
		Params:   make([]Param, typ.NumIn()),
		Variadic: typ.IsVariadic(),
	}
	for i := range h.Params {
		h.Params[i] = Param{Name: names[i], Type: Declared(fromGoType(f.ParamType(i)))}
	}
	if f.hasResult {
		h.Return = Declared(fromGoType(typ.Out(0)))
	}
	return h, f, nil
}

func (f *Func) readResults() error {
	switch n := f.typ.NumOut(); {
	case n == 0:
	case n == 1 && f.typ.Out(0) == errorType:
		f.hasError = true
	case n == 1:
		f.hasResult = true
	case n == 2 && f.typ.Out(1) == errorType:
		f.hasResult = true
		f.hasError = true
	default:
		return errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, funcName(f.fn)),
			errorc.String(errors.ErrorFieldReason, "unsupported results "+f.typ.String()),
		)
	}
	return nil
}

// Type returns the Go func type.
func (f *Func) Type() reflect.Type { return f.typ }

// NumIn returns the number of declared parameters.
func (f *Func) NumIn() int { return f.typ.NumIn() }

// ParamType returns the type an argument at position i must be assignable to.
// Positions at or past a variadic parameter use its element type.
func (f *Func) ParamType(i int) reflect.Type {
	n := f.typ.NumIn()
	if f.typ.IsVariadic() && i >= n-1 {
		return f.typ.In(n - 1).Elem()
	}
	return f.typ.In(i)
}

// Narrow checks that a declaration can be enforced on top of the Go types:
// every declared parameter constraint must only admit values the Go
// parameter accepts, and a declared return must be reachable by the Go result.
func (f *Func) Narrow(h Hints) error {
	if len(h.Params) != f.typ.NumIn() || h.Variadic != f.typ.IsVariadic() {
		return f.narrowError("", "declaration does not match "+f.typ.String())
	}
	for i, p := range h.Params {
		if p.Optional {
			return f.narrowError(p.Name, "go funcs require every argument")
		}
		if p.Type == nil {
			return f.narrowError(p.Name, "parameter type not declared")
		}
		if !p.Type.AssignableTo(f.ParamType(i)) {
			return f.narrowError(p.Name, p.Type.String()+" does not fit "+f.ParamType(i).String())
		}
	}
	if h.Return != nil {
		if !f.hasResult {
			return f.narrowError("", "return declared for a func without result")
		}
		if !h.Return.Overlaps(f.typ.Out(0)) {
			return f.narrowError("", "return "+h.Return.String()+" never fits "+f.typ.Out(0).String())
		}
	}
	return nil
}

func (f *Func) narrowError(param, reason string) error {
	if param == "" {
		return errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, funcName(f.fn)),
			errorc.String(errors.ErrorFieldReason, reason),
		)
	}
	return errorc.With(
		errors.ErrSignatureExtraction,
		errorc.String(errors.ErrorFieldCallableName, funcName(f.fn)),
		errorc.String(errors.ErrorFieldParamName, param),
		errorc.String(errors.ErrorFieldReason, reason),
	)
}

// Call invokes the func with positional values. Untyped nil values become
// the zero value of their parameter type. The trailing error result, if any,
// is returned as is.
func (f *Func) Call(args []any) (any, error) {
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(f.ParamType(i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	out := f.fn.Call(in)

	var (
		result any
		err    error
	)
	if f.hasResult {
		result = out[0].Interface()
	}
	if f.hasError {
		if ev := out[len(out)-1]; !ev.IsNil() {
			err = ev.Interface().(error)
		}
	}
	return result, err
}

// fromGoType maps a Go parameter or result type to its constraint.
// The empty interface declares nothing, so it is the wildcard.
func fromGoType(t reflect.Type) constraint.Constraint {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return constraint.Any()
	}
	return constraint.Must(constraint.Of(t))
}

// funcName returns the runtime name of a func without its import path,
// e.g. "checktype.add" or "mypkg.(*T).Method-fm".
func funcName(v reflect.Value) string {
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func kindName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Kind().String()
}
