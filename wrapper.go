package checktype

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/errors"
	"github.com/ygrebnov/checktype/hints"
	"github.com/ygrebnov/checktype/internal/core"
	"github.com/ygrebnov/checktype/signature"
)

// Callable is anything invocable with ordered positional values plus named values.
type Callable interface {
	Call(args []any, kwargs map[string]any) (any, error)
}

// CallableFunc adapts a func to Callable.
type CallableFunc func(args []any, kwargs map[string]any) (any, error)

func (f CallableFunc) Call(args []any, kwargs map[string]any) (any, error) { return f(args, kwargs) }

// Wrapper enforces a Signature around calls to a callable. It reports the
// wrapped callable's name and documentation. A Wrapper is read-only after
// Build and may be invoked concurrently if the callable allows it.
type Wrapper struct {
	name     string
	doc      string
	svc      *core.Service
	target   core.Target
	observer Observer
	observe  bool
	logger   *slog.Logger
}

// Build reads the callable's declaration once and returns a Wrapper
// enforcing it. Accepted callables, in order of precedence:
//   - a hints.Describer that is also a Callable, such as another *Wrapper;
//   - a Callable together with WithHints or WithParams;
//   - a Go func, with parameter names from WithParams or WithHints.
//
// Build fails with a *SignatureExtractionError if no declaration can be read.
func Build(callable any, opts ...Option) (*Wrapper, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	decl, target, err := extract(callable, o)
	if err == nil {
		decl, err = o.patch(decl)
	}
	if err != nil {
		return nil, &SignatureExtractionError{Callable: displayName(decl, o), Cause: err}
	}

	if fn, ok := target.fn(); ok {
		if err = fn.Narrow(decl); err != nil {
			return nil, &SignatureExtractionError{Callable: decl.Name, Cause: err}
		}
	}

	sig, err := signature.New(decl)
	if err != nil {
		return nil, &SignatureExtractionError{Callable: decl.Name, Cause: err}
	}

	w := &Wrapper{
		name:     decl.Name,
		doc:      decl.Doc,
		svc:      core.NewService(sig),
		target:   target.call,
		observer: o.observer,
		observe:  o.observer != nil,
		logger:   o.logger,
	}
	if w.observer == nil {
		w.observer = noopObserver{}
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(callable any, opts ...Option) *Wrapper {
	w, err := Build(callable, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

type target struct {
	call core.Target
	f    *hints.Func
}

func (t target) fn() (*hints.Func, bool) { return t.f, t.f != nil }

func extract(callable any, o *options) (hints.Hints, target, error) {
	switch c := callable.(type) {
	case nil:
		return hints.Hints{}, target{}, extractionError("nil callable")

	case hints.Describer:
		cl, ok := callable.(Callable)
		if !ok {
			return hints.Hints{}, target{}, extractionError("describer is not callable")
		}
		base, err := c.Describe()
		if err != nil {
			return hints.Hints{}, target{}, err
		}
		decl, err := merge(base, o)
		return decl, target{call: forward(cl)}, err

	case Callable:
		if !o.declared {
			return hints.Hints{}, target{}, extractionError("callable without declaration")
		}
		decl, err := o.override()
		return decl, target{call: forward(c)}, err

	default:
		names := o.names
		if len(names) == 0 {
			names = o.decl.Names()
		}
		base, fn, err := hints.FromFunc(callable, names...)
		if err != nil {
			return hints.Hints{}, target{}, err
		}
		decl, err := merge(base, o)
		return decl, target{call: positional(fn), f: fn}, err
	}
}

// merge overlays WithHints on a read declaration, then applies WithParams names.
func merge(base hints.Hints, o *options) (hints.Hints, error) {
	decl, err := hints.Overlay(base, o.decl)
	if err != nil {
		return hints.Hints{}, err
	}
	return o.rename(decl)
}

// forward passes the original arguments through unchanged.
func forward(c Callable) core.Target {
	return func(_ core.Binding, args []any, kwargs map[string]any) (any, error) {
		return c.Call(args, kwargs)
	}
}

// positional calls a Go func with the bound values in parameter order.
func positional(fn *hints.Func) core.Target {
	return func(b core.Binding, _ []any, _ map[string]any) (any, error) {
		return fn.Call(b.Positional())
	}
}

func extractionError(reason string) error {
	return errorc.With(errors.ErrSignatureExtraction, errorc.String(errors.ErrorFieldReason, reason))
}

func displayName(h hints.Hints, o *options) string {
	if o.name != "" {
		return o.name
	}
	return h.Name
}

// Invoke binds args and kwargs to the parameters, checks every declared
// argument, calls the wrapped callable once, and checks its result.
// Binding and argument type failures happen before the callable runs; a
// return type failure happens after it has run. An error returned by the
// callable itself is returned unchanged, along with its result.
func (w *Wrapper) Invoke(args []any, kwargs map[string]any) (any, error) {
	start := time.Now()
	out := w.svc.Invoke(w.target, args, kwargs)
	w.report(out, time.Since(start))

	switch {
	case out.Err == nil:
		return out.Result, nil
	case out.Stage == StageExecuting:
		return out.Result, out.Err
	default:
		return nil, out.Err
	}
}

// Call is Invoke; it makes a Wrapper a Callable.
func (w *Wrapper) Call(args []any, kwargs map[string]any) (any, error) {
	return w.Invoke(args, kwargs)
}

// Check binds and checks arguments without calling the wrapped callable.
// Unlike Invoke it reports every argument mismatch, as a *Violations.
func (w *Wrapper) Check(args []any, kwargs map[string]any) error {
	if vs := newViolations(w.svc.CheckAll(args, kwargs)); vs != nil {
		return vs
	}
	return nil
}

// Describe returns the enforced declaration, so a Wrapper can be wrapped again.
func (w *Wrapper) Describe() (hints.Hints, error) {
	h := w.svc.Signature().Hints()
	h.Name, h.Doc = w.name, w.doc
	return h, nil
}

// Name returns the wrapped callable's display name.
func (w *Wrapper) Name() string { return w.name }

// Doc returns the wrapped callable's documentation.
func (w *Wrapper) Doc() string { return w.doc }

// Signature returns the enforced Signature.
func (w *Wrapper) Signature() *signature.Signature { return w.svc.Signature() }

func (w *Wrapper) String() string {
	if w.name == "" {
		return w.Signature().String()
	}
	return w.name + " " + w.Signature().String()
}

func (w *Wrapper) report(out core.Outcome, elapsed time.Duration) {
	obs := InvokeObservation{
		Callable: w.name,
		Stage:    out.Stage,
		Outcome:  outcomeOf(out),
		Duration: elapsed,
	}
	var (
		ate *ArgumentTypeError
		rte *ReturnTypeError
		abe *ArgumentBindingError
	)
	switch {
	case stderrors.As(out.Err, &ate):
		obs.Param, obs.Declared, obs.Observed = ate.Param, ate.Declared.String(), constraint.TypeName(ate.Observed)
	case stderrors.As(out.Err, &rte):
		obs.Declared, obs.Observed = rte.Declared.String(), constraint.TypeName(rte.Observed)
	case stderrors.As(out.Err, &abe):
		obs.Param = abe.Param
	}

	if obs.Outcome.Violation() && w.logger.Enabled(context.Background(), slog.LevelDebug) {
		w.logger.Debug("contract violation",
			slog.String(string(errors.ErrorFieldCallableName), obs.Callable),
			slog.String("stage", obs.Stage.String()),
			slog.String(string(errors.ErrorFieldParamName), obs.Param),
			slog.String(string(errors.ErrorFieldParamDeclared), obs.Declared),
			slog.String(string(errors.ErrorFieldParamObserved), obs.Observed),
			slog.Any("error", out.Err),
		)
	}

	if !w.observe {
		return
	}
	obs.CallID = uuid.NewString()
	w.observer.ObserveInvoke(obs)
}

func outcomeOf(out core.Outcome) Outcome {
	switch out.Stage {
	case StageDone:
		return OutcomeOK
	case StageBinding:
		return OutcomeBindingError
	case StageArgChecking:
		return OutcomeArgumentTypeError
	case StageReturnChecking:
		return OutcomeReturnTypeError
	default:
		return OutcomeCallError
	}
}
