package checktype

import (
	"github.com/ygrebnov/checktype/errors"
	"github.com/ygrebnov/checktype/internal/core"
)

// Sentinel errors. Use errors.Is to match.
var (
	ErrSignatureExtraction = errors.ErrSignatureExtraction
	ErrArgumentBinding     = errors.ErrArgumentBinding
	ErrArgumentType        = errors.ErrArgumentType
	ErrReturnType          = errors.ErrReturnType
	ErrMalformedConstraint = errors.ErrMalformedConstraint
)

// Typed errors. Use errors.As to read their fields.
type (
	// SignatureExtractionError is returned by Build when the callable's
	// declaration cannot be read; the callable is not wrapped.
	SignatureExtractionError = core.SignatureExtractionError
	// ArgumentBindingError is returned by Invoke before any check or execution.
	ArgumentBindingError = core.ArgumentBindingError
	// ArgumentTypeError is returned by Invoke before the callable executes.
	ArgumentTypeError = core.ArgumentTypeError
	// ReturnTypeError is returned by Invoke after the callable has executed.
	ReturnTypeError = core.ReturnTypeError
)
