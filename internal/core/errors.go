package core

import (
	"reflect"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/errors"
)

// SignatureExtractionError reports that a callable could not be instrumented.
// It unwraps to errors.ErrSignatureExtraction and to its cause.
type SignatureExtractionError struct {
	Callable string
	Cause    error
}

func (e *SignatureExtractionError) Error() string {
	if e.Cause == nil {
		return errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, e.Callable),
		).Error()
	}
	return errorc.With(
		errors.ErrSignatureExtraction,
		errorc.String(errors.ErrorFieldCallableName, e.Callable),
		errorc.Error(errors.ErrorFieldCause, e.Cause),
	).Error()
}

func (e *SignatureExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{errors.ErrSignatureExtraction}
	}
	return []error{errors.ErrSignatureExtraction, e.Cause}
}

// ArgumentBindingError reports call arguments that do not fit the parameter
// names: an unknown name, a duplicate binding, a missing required argument
// or too many positional arguments.
type ArgumentBindingError struct {
	Callable string
	Param    string
	Reason   string
}

func (e *ArgumentBindingError) Error() string {
	return errorc.With(
		errors.ErrArgumentBinding,
		errorc.String(errors.ErrorFieldCallableName, e.Callable),
		errorc.String(errors.ErrorFieldParamName, e.Param),
		errorc.String(errors.ErrorFieldReason, e.Reason),
	).Error()
}

func (e *ArgumentBindingError) Unwrap() error { return errors.ErrArgumentBinding }

// ArgumentTypeError reports an argument whose runtime type does not satisfy
// its declared constraint. Extra variadic arguments are named "rest[i]".
type ArgumentTypeError struct {
	Callable string
	Param    string
	Declared constraint.Constraint
	Observed reflect.Type // nil for an untyped nil
}

func (e *ArgumentTypeError) Error() string {
	return errorc.With(
		errors.ErrArgumentType,
		errorc.String(errors.ErrorFieldCallableName, e.Callable),
		errorc.String(errors.ErrorFieldParamName, e.Param),
		errorc.String(errors.ErrorFieldParamDeclared, e.Declared.String()),
		errorc.String(errors.ErrorFieldParamObserved, constraint.TypeName(e.Observed)),
	).Error()
}

func (e *ArgumentTypeError) Unwrap() error { return errors.ErrArgumentType }

// ReturnTypeError reports a result that does not satisfy the declared return
// constraint. The callable has already run when it is returned.
type ReturnTypeError struct {
	Callable string
	Declared constraint.Constraint
	Observed reflect.Type
}

func (e *ReturnTypeError) Error() string {
	return errorc.With(
		errors.ErrReturnType,
		errorc.String(errors.ErrorFieldCallableName, e.Callable),
		errorc.String(errors.ErrorFieldReturnDeclared, e.Declared.String()),
		errorc.String(errors.ErrorFieldReturnObserved, constraint.TypeName(e.Observed)),
	).Error()
}

func (e *ReturnTypeError) Unwrap() error { return errors.ErrReturnType }
