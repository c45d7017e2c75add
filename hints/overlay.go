package hints

import (
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/errors"
)

// Overlay applies an explicit declaration on top of base. Parameter names
// and non-nil types, return, name and doc from override win; everything
// override leaves empty is taken from base. A parameter is optional if
// either side marks it so. When override declares parameters it must
// declare all of them.
func Overlay(base, override Hints) (Hints, error) {
	out := base.Clone()
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Doc != "" {
		out.Doc = override.Doc
	}
	if override.Return != nil {
		out.Return = Declared(*override.Return)
	}

	if len(override.Params) == 0 {
		return out, nil
	}
	if len(override.Params) != len(base.Params) {
		return Hints{}, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, out.Name),
			errorc.String(errors.ErrorFieldReason, "declared "+strconv.Itoa(len(override.Params))+
				" parameters, callable has "+strconv.Itoa(len(base.Params))),
		)
	}
	if override.Variadic != base.Variadic {
		return Hints{}, errorc.With(
			errors.ErrSignatureExtraction,
			errorc.String(errors.ErrorFieldCallableName, out.Name),
			errorc.String(errors.ErrorFieldReason, "variadic declaration mismatch"),
		)
	}
	for i, p := range override.Params {
		if p.Name != "" {
			out.Params[i].Name = p.Name
		}
		if p.Type != nil {
			out.Params[i].Type = Declared(*p.Type)
		}
		out.Params[i].Optional = base.Params[i].Optional || p.Optional
	}
	return out, nil
}
