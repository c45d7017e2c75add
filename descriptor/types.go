package descriptor

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/checktype/errors"
)

// Types resolves type names used in descriptors to Go types.
// It is safe for concurrent use.
type Types struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypes returns a registry preloaded with the predeclared Go types,
// "error", "any", "fmt.Stringer", "time.Duration" and "time.Time".
func NewTypes() *Types {
	r := &Types{types: make(map[string]reflect.Type, len(builtinTypes))}
	for name, t := range builtinTypes {
		r.types[name] = t
	}
	return r
}

var defaultTypes = NewTypes()

// DefaultTypes returns the process-wide registry used when nil is passed
// to Parse, Decode or LoadFile.
func DefaultTypes() *Types { return defaultTypes }

var builtinTypes = map[string]reflect.Type{
	"bool":          typeOf[bool](),
	"string":        typeOf[string](),
	"int":           typeOf[int](),
	"int8":          typeOf[int8](),
	"int16":         typeOf[int16](),
	"int32":         typeOf[int32](),
	"int64":         typeOf[int64](),
	"uint":          typeOf[uint](),
	"uint8":         typeOf[uint8](),
	"uint16":        typeOf[uint16](),
	"uint32":        typeOf[uint32](),
	"uint64":        typeOf[uint64](),
	"uintptr":       typeOf[uintptr](),
	"float32":       typeOf[float32](),
	"float64":       typeOf[float64](),
	"complex64":     typeOf[complex64](),
	"complex128":    typeOf[complex128](),
	"byte":          typeOf[byte](),
	"rune":          typeOf[rune](),
	"error":         typeOf[error](),
	"any":           typeOf[any](),
	"fmt.Stringer":  typeOf[fmt.Stringer](),
	"time.Duration": typeOf[time.Duration](),
	"time.Time":     typeOf[time.Time](),
}

// typeOf captures the static type of T even when T is an interface.
func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Register adds a named type. Names must be unique within the registry.
func (r *Types) Register(name string, t reflect.Type) error {
	if name == "" || t == nil {
		return errorc.With(
			errors.ErrMalformedConstraint,
			errorc.String(errors.ErrorFieldTypeName, name),
			errorc.String(errors.ErrorFieldReason, "type registration requires a name and a type"),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.types[name]; exists {
		return errorc.With(
			errors.ErrDuplicateType,
			errorc.String(errors.ErrorFieldTypeName, name),
			errorc.String(errors.ErrorFieldTypeExpr, existing.String()),
		)
	}
	r.types[name] = t
	return nil
}

// RegisterType adds T under name.
func RegisterType[T any](r *Types, name string) error {
	return r.Register(name, typeOf[T]())
}

// Lookup returns the type registered under name.
func (r *Types) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names, sorted.
func (r *Types) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Types) orDefault() *Types {
	if r == nil {
		return defaultTypes
	}
	return r
}
