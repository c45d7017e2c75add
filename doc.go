// Package checktype enforces declared type contracts on calls at runtime.
//
// Build reads a callable's declaration once: parameter names, an optional
// type constraint per parameter and an optional return constraint. The
// returned Wrapper checks every call against it. Arguments are bound to
// parameters and checked before the callable runs; the result is checked
// after it has run.
//
//	add := func(a, b int) int { return a + b }
//	w, err := checktype.Build(add, checktype.WithParams("a", "b"))
//	if err != nil {
//		return err
//	}
//	sum, err := w.Invoke([]any{2, 3}, nil) // 5, nil
//	_, err = w.Invoke([]any{2, "x"}, nil)  // *ArgumentTypeError for b
//
// Constraints are built with the constraint package. Declarations can also
// be supplied explicitly with WithHints, for example from a descriptor file
// loaded with the descriptor package.
package checktype
