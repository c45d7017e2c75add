package descriptor

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ygrebnov/checktype/constraint"
	checktypeerrors "github.com/ygrebnov/checktype/errors"
)

type widget struct{}

func TestParseType(t *testing.T) {
	types := NewTypes()
	if err := RegisterType[widget](types, "Widget"); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	tests := []struct {
		expr string
		want constraint.Constraint
	}{
		{expr: "any", want: constraint.Any()},
		{expr: "int | any", want: constraint.Any()},
		{expr: "int", want: constraint.For[int]()},
		{expr: "  int  |  string ", want: constraint.Must(constraint.OneOf(reflect.TypeOf(0), reflect.TypeOf("")))},
		{expr: "int | int", want: constraint.For[int]()},
		{expr: "nil", want: constraint.Must(constraint.Of(constraint.NoneType))},
		{expr: "*Widget | nil", want: constraint.Must(constraint.OneOf(reflect.TypeOf(&widget{}), constraint.NoneType))},
		{expr: "[]any", want: constraint.For[[]any]()},
		{expr: "map[string][]int", want: constraint.For[map[string][]int]()},
		{expr: "map[string]int | []string", want: constraint.Must(constraint.OneOf(
			reflect.TypeOf(map[string]int{}), reflect.TypeOf([]string{}),
		))},
		{expr: "fmt.Stringer", want: constraint.For[fmt.Stringer]()},
		{expr: "time.Duration", want: constraint.For[time.Duration]()},
		{expr: "error", want: constraint.For[error]()},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseType(tt.expr, types)
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.expr, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseType(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	tests := []struct {
		expr     string
		sentinel error
	}{
		{expr: "", sentinel: checktypeerrors.ErrMalformedConstraint},
		{expr: "int |", sentinel: checktypeerrors.ErrMalformedConstraint},
		{expr: "Widget", sentinel: checktypeerrors.ErrUnknownType},
		{expr: "[]nil", sentinel: checktypeerrors.ErrUnknownType},
		{expr: "map[string", sentinel: checktypeerrors.ErrMalformedConstraint},
		{expr: "map[[]int]string", sentinel: checktypeerrors.ErrMalformedConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if _, err := ParseType(tt.expr, nil); !errors.Is(err, tt.sentinel) {
				t.Fatalf("ParseType(%q) error = %v, want %v", tt.expr, err, tt.sentinel)
			}
		})
	}
}

func TestParseType_Matches(t *testing.T) {
	c, err := ParseType("fmt.Stringer | nil", nil)
	if err != nil {
		t.Fatalf("ParseType: %v", err)
	}
	if !constraint.MatchesValue(time.Second, c) {
		t.Fatalf("time.Duration implements fmt.Stringer")
	}
	if !constraint.MatchesValue(nil, c) {
		t.Fatalf("nil must match")
	}
	if constraint.MatchesValue(1, c) {
		t.Fatalf("int does not implement fmt.Stringer")
	}
}

func TestTypes_Register(t *testing.T) {
	types := NewTypes()

	if err := types.Register("Widget", reflect.TypeOf(widget{})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := RegisterType[int](types, "Widget")
	if !errors.Is(err, checktypeerrors.ErrDuplicateType) {
		t.Fatalf("expected ErrDuplicateType, got %v", err)
	}
	if err = types.Register("", reflect.TypeOf(0)); err == nil {
		t.Fatalf("expected error for an empty name")
	}
	if err = types.Register("nothing", nil); err == nil {
		t.Fatalf("expected error for a nil type")
	}

	if got, ok := types.Lookup("Widget"); !ok || got != reflect.TypeOf(widget{}) {
		t.Fatalf("Lookup(Widget) = %v %v", got, ok)
	}
	if _, ok := DefaultTypes().Lookup("Widget"); ok {
		t.Fatalf("registries must be independent")
	}

	names := types.Names()
	if names[0] != "Widget" {
		t.Fatalf("Names() not sorted: %v", names)
	}
}

func TestTypes_Concurrent(t *testing.T) {
	types := NewTypes()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = types.Register("T"+string(rune('a'+i)), reflect.TypeOf(i))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = ParseType("int | string", types)
		}()
	}
	wg.Wait()
	if _, ok := types.Lookup("Tp"); !ok {
		t.Fatalf("concurrent registration lost a type")
	}
}
