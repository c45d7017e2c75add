package checktype

import (
	"time"

	"github.com/ygrebnov/checktype/internal/core"
)

// Stage is a step of one invocation. A failed call reports the stage it
// failed in; a successful one reports StageDone.
type Stage = core.Stage

const (
	StageBinding        = core.StageBinding
	StageArgChecking    = core.StageArgChecking
	StageExecuting      = core.StageExecuting
	StageReturnChecking = core.StageReturnChecking
	StageDone           = core.StageDone
)

// Outcome classifies how an invocation ended.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeBindingError      Outcome = "binding_error"
	OutcomeArgumentTypeError Outcome = "argument_type_error"
	OutcomeReturnTypeError   Outcome = "return_type_error"
	OutcomeCallError         Outcome = "call_error"
)

// Violation reports whether the outcome is a contract violation, as opposed
// to success or the callable's own failure.
func (o Outcome) Violation() bool {
	switch o {
	case OutcomeBindingError, OutcomeArgumentTypeError, OutcomeReturnTypeError:
		return true
	default:
		return false
	}
}

// InvokeObservation captures one Invoke.
type InvokeObservation struct {
	CallID   string
	Callable string
	Stage    Stage
	Outcome  Outcome
	// Param, Declared and Observed describe the offending parameter or
	// result for type errors; Param is set for binding errors too.
	Param    string
	Declared string
	Observed string
	Duration time.Duration
}

// Observer receives per-invocation outcomes.
type Observer interface {
	ObserveInvoke(observation InvokeObservation)
}

// ObserverFunc adapts a func to Observer.
type ObserverFunc func(InvokeObservation)

func (f ObserverFunc) ObserveInvoke(o InvokeObservation) { f(o) }

type noopObserver struct{}

func (noopObserver) ObserveInvoke(InvokeObservation) {}
