package constants

const Namespace = "checktype"

// ErrorFieldNamespace for all exported error field keys.
const ErrorFieldNamespace = Namespace

// Type expression tokens understood by descriptors and constraint rendering.
const (
	TypeAny       = "any"
	TypeNil       = "nil"
	TypeSeparator = "|"
)

// Invocation stages, in the order a call moves through them.
const (
	StageBinding        = "binding"
	StageArgChecking    = "arg_checking"
	StageExecuting      = "executing"
	StageReturnChecking = "return_checking"
	StageDone           = "done"
)
