package errors

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/constants"
)

var namespace = errorc.Namespace(constants.Namespace)

// Sentinel errors. Use errors.Is to match.
var (
	ErrSignatureExtraction = namespace.NewError("cannot extract signature")
	ErrArgumentBinding     = namespace.NewError("cannot bind arguments")
	ErrArgumentType        = namespace.NewError("argument type mismatch")
	ErrReturnType          = namespace.NewError("return type mismatch")
	ErrMalformedConstraint = namespace.NewError("malformed type constraint")
	ErrUnknownType         = namespace.NewError("unknown type name")
	ErrDuplicateType       = namespace.NewError("duplicate type name")
	ErrDescriptor          = namespace.NewError("invalid signature descriptor")
)

var newKey = errorc.KeyFactory(constants.ErrorFieldNamespace)

// Internal hierarchical segments used to build dotted keys.
const (
	keySegmentParam    = "param"
	keySegmentReturn   = "return"
	keySegmentCallable = "callable"
	keySegmentType     = "type"
)

// Exported structured error field keys
var (
	ErrorFieldParamName     = newKey("name", keySegmentParam)     // checktype.param.name
	ErrorFieldParamDeclared = newKey("declared", keySegmentParam) // checktype.param.declared
	ErrorFieldParamObserved = newKey("observed", keySegmentParam) // checktype.param.observed
	ErrorFieldParamPosition = newKey("position", keySegmentParam) // checktype.param.position
)

var (
	ErrorFieldReturnDeclared = newKey("declared", keySegmentReturn) // checktype.return.declared
	ErrorFieldReturnObserved = newKey("observed", keySegmentReturn) // checktype.return.observed
)

var (
	ErrorFieldCallableName = newKey("name", keySegmentCallable) // checktype.callable.name
	ErrorFieldCallableKind = newKey("kind", keySegmentCallable) // checktype.callable.kind
)

var (
	ErrorFieldTypeName = newKey("name", keySegmentType) // checktype.type.name
	ErrorFieldTypeExpr = newKey("expr", keySegmentType) // checktype.type.expr
)

var (
	ErrorFieldReason = newKey("reason")
	ErrorFieldSource = newKey("source")
	ErrorFieldCause  = newKey("cause")
)
