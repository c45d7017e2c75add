package hints

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ygrebnov/checktype/constraint"
	checktypeerrors "github.com/ygrebnov/checktype/errors"
)

func sample(a int, s string, v any, rest ...float64) (string, error) { return "", nil }

func TestFromFunc(t *testing.T) {
	h, f, err := FromFunc(sample, "a", "s", "v", "rest")
	if err != nil {
		t.Fatalf("FromFunc: %v", err)
	}
	if !strings.HasSuffix(h.Name, ".sample") {
		t.Fatalf("Name = %q, want suffix .sample", h.Name)
	}
	if !h.Variadic {
		t.Fatalf("expected variadic declaration")
	}
	want := []string{"int", "string", "any", "float64"}
	for i, p := range h.Params {
		if p.Type == nil {
			t.Fatalf("param %s has no type", p.Name)
		}
		if got := p.Type.String(); got != want[i] {
			t.Fatalf("param %s type = %q, want %q", p.Name, got, want[i])
		}
	}
	if !h.Params[2].Type.IsWildcard() {
		t.Fatalf("empty interface param must be the wildcard")
	}
	if h.Return == nil || h.Return.String() != "string" {
		t.Fatalf("Return = %v, want string", h.Return)
	}
	if f.NumIn() != 4 || f.ParamType(5) != reflect.TypeOf(0.0) {
		t.Fatalf("unexpected func shape: %v", f.Type())
	}
}

func TestFromFunc_ResultShapes(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		names   []string
		wantRet bool
		wantErr bool
	}{
		{name: "no results", fn: func() {}, wantRet: false},
		{name: "error only", fn: func() error { return nil }, wantRet: false},
		{name: "value", fn: func() int { return 0 }, wantRet: true},
		{name: "value and error", fn: func() (int, error) { return 0, nil }, wantRet: true},
		{name: "two values", fn: func() (int, int) { return 0, 0 }, wantErr: true},
		{name: "error first", fn: func() (error, int) { return nil, 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, err := FromFunc(tt.fn, tt.names...)
			if tt.wantErr {
				if !errors.Is(err, checktypeerrors.ErrSignatureExtraction) {
					t.Fatalf("expected ErrSignatureExtraction, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromFunc: %v", err)
			}
			if (h.Return != nil) != tt.wantRet {
				t.Fatalf("Return declared = %v, want %v", h.Return != nil, tt.wantRet)
			}
		})
	}
}

func TestFromFunc_Errors(t *testing.T) {
	var nilFn func(int)
	tests := []struct {
		name   string
		fn     any
		names  []string
		reason string
	}{
		{name: "not a func", fn: "hello", reason: "not a func"},
		{name: "nil value", fn: nil, reason: "not a func"},
		{name: "nil func", fn: nilFn, reason: "nil func"},
		{name: "no names", fn: func(int) {}, reason: "parameter names not declared"},
		{name: "wrong count", fn: func(int) {}, names: []string{"a", "b"}, reason: "got 2 parameter names for 1 parameters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromFunc(tt.fn, tt.names...)
			if !errors.Is(err, checktypeerrors.ErrSignatureExtraction) {
				t.Fatalf("expected ErrSignatureExtraction, got %v", err)
			}
			needle := string(checktypeerrors.ErrorFieldReason) + ": " + tt.reason
			if !strings.Contains(err.Error(), needle) {
				t.Fatalf("expected %q in %q", needle, err.Error())
			}
		})
	}
}

func TestFunc_Narrow(t *testing.T) {
	fn := func(v any, n int) any { return nil }
	base, f, err := FromFunc(fn, "v", "n")
	if err != nil {
		t.Fatalf("FromFunc: %v", err)
	}
	intOrString := constraint.Must(constraint.OneOf(reflect.TypeOf(0), reflect.TypeOf("")))

	tests := []struct {
		name    string
		mutate  func(h *Hints)
		wantErr bool
	}{
		{name: "as read", mutate: func(*Hints) {}},
		{name: "narrow any to alternatives", mutate: func(h *Hints) { h.Params[0].Type = Declared(intOrString) }},
		{name: "narrow return", mutate: func(h *Hints) { h.Return = Declared(constraint.For[string]()) }},
		{name: "widen int", mutate: func(h *Hints) { h.Params[1].Type = Declared(intOrString) }, wantErr: true},
		{name: "optional", mutate: func(h *Hints) { h.Params[1].Optional = true }, wantErr: true},
		{name: "untyped", mutate: func(h *Hints) { h.Params[1].Type = nil }, wantErr: true},
		{name: "arity", mutate: func(h *Hints) { h.Params = h.Params[:1] }, wantErr: true},
		{name: "variadic", mutate: func(h *Hints) { h.Variadic = true }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := base.Clone()
			tt.mutate(&h)
			err := f.Narrow(h)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Narrow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, checktypeerrors.ErrSignatureExtraction) {
				t.Fatalf("expected ErrSignatureExtraction, got %v", err)
			}
		})
	}

	_, noResult, _ := FromFunc(func(int) {}, "n")
	h := Hints{Params: []Param{{Name: "n", Type: Declared(constraint.For[int]())}}, Return: Declared(constraint.Any())}
	if err := noResult.Narrow(h); err == nil {
		t.Fatalf("expected error for return declared on a func without result")
	}

	_, intResult, _ := FromFunc(func() int { return 0 })
	if err := intResult.Narrow(Hints{Return: Declared(constraint.For[string]())}); err == nil {
		t.Fatalf("expected error for a return that never fits")
	}
}

func TestFunc_Call(t *testing.T) {
	boom := errors.New("boom")
	fn := func(p *int, rest ...string) (int, error) {
		if p == nil {
			return len(rest), boom
		}
		return *p + len(rest), nil
	}
	_, f, err := FromFunc(fn, "p", "rest")
	if err != nil {
		t.Fatalf("FromFunc: %v", err)
	}

	one := 1
	got, err := f.Call([]any{&one, "a", "b"})
	if err != nil || got != 3 {
		t.Fatalf("Call = (%v, %v), want (3, nil)", got, err)
	}
	got, err = f.Call([]any{nil, nil})
	if err != boom || got != 1 {
		t.Fatalf("Call = (%v, %v), want (1, boom)", got, err)
	}
}

func TestOverlay(t *testing.T) {
	base := Hints{
		Name:   "base",
		Doc:    "base doc",
		Params: []Param{{Name: "a", Type: Declared(constraint.Any())}, {Name: "b"}},
	}

	got, err := Overlay(base, Hints{Doc: "new doc"})
	if err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if got.Name != "base" || got.Doc != "new doc" || len(got.Params) != 2 {
		t.Fatalf("unexpected overlay %+v", got)
	}

	got, err = Overlay(base, Hints{
		Params: []Param{{Type: Declared(constraint.For[int]())}, {Name: "c", Optional: true}},
		Return: Declared(constraint.For[string]()),
	})
	if err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if got.Params[0].Name != "a" || got.Params[0].Type.String() != "int" {
		t.Fatalf("param 0 = %+v", got.Params[0])
	}
	if got.Params[1].Name != "c" || !got.Params[1].Optional || got.Params[1].Type != nil {
		t.Fatalf("param 1 = %+v", got.Params[1])
	}
	if got.Return == nil || got.Return.String() != "string" {
		t.Fatalf("Return = %v", got.Return)
	}
	if base.Params[0].Type.String() != "any" {
		t.Fatalf("base was modified")
	}

	optional := Hints{Params: []Param{{Name: "a"}, {Name: "b", Optional: true}}}
	got, err = Overlay(optional, Hints{Params: []Param{{Name: "x"}, {Name: "y"}}})
	if err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if got.Params[1].Name != "y" || !got.Params[1].Optional {
		t.Fatalf("names-only override dropped Optional: %+v", got.Params[1])
	}

	if _, err = Overlay(base, Hints{Params: []Param{{Name: "x"}}}); !errors.Is(err, checktypeerrors.ErrSignatureExtraction) {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
	if _, err = Overlay(base, Hints{Params: []Param{{}, {}}, Variadic: true}); !errors.Is(err, checktypeerrors.ErrSignatureExtraction) {
		t.Fatalf("expected variadic mismatch error, got %v", err)
	}
}

func TestHints_Clone(t *testing.T) {
	h := Hints{
		Params: []Param{{Name: "a", Type: Declared(constraint.For[int]())}},
		Return: Declared(constraint.Any()),
	}
	c := h.Clone()
	c.Params[0].Name = "z"
	*c.Params[0].Type = constraint.For[string]()
	*c.Return = constraint.For[bool]()

	if h.Params[0].Name != "a" || h.Params[0].Type.String() != "int" || !h.Return.IsWildcard() {
		t.Fatalf("Clone shares state with the original: %+v", h)
	}
	if got := h.Names(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Names() = %v", got)
	}
}
