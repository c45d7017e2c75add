package core

// Target runs the wrapped callable once. It receives the call's Binding
// together with the original arguments so it can forward whichever shape
// the callable expects.
type Target func(b Binding, args []any, kwargs map[string]any) (any, error)

// Outcome is the result of one invocation and the stage it ended in.
type Outcome struct {
	Result any
	Stage  Stage
	Err    error
}

// Invoke binds and checks the arguments, runs target exactly once if they
// pass, then checks the result. An error returned by target itself is
// propagated unchanged and skips the result check.
func (s *Service) Invoke(target Target, args []any, kwargs map[string]any) Outcome {
	b, err := s.Bind(args, kwargs)
	if err != nil {
		return Outcome{Stage: StageBinding, Err: err}
	}
	if err = s.CheckArguments(b); err != nil {
		return Outcome{Stage: StageArgChecking, Err: err}
	}

	result, err := target(b, args, kwargs)
	if err != nil {
		return Outcome{Result: result, Stage: StageExecuting, Err: err}
	}

	if err = s.CheckResult(result); err != nil {
		return Outcome{Result: result, Stage: StageReturnChecking, Err: err}
	}
	return Outcome{Result: result, Stage: StageDone}
}
