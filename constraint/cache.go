package constraint

import (
	"reflect"
	"sync"
)

// assignKey identifies one observed/declared type pair.
type assignKey struct {
	observed reflect.Type
	declared reflect.Type
}

var assignCache sync.Map // map[assignKey]bool

// assignable reports observed.AssignableTo(declared). Results for interface
// targets, which require a method set walk, are cached. Types are static
// for a compiled program, so entries never go stale.
func assignable(observed, declared reflect.Type) bool {
	if declared.Kind() != reflect.Interface {
		return observed.AssignableTo(declared)
	}
	key := assignKey{observed: observed, declared: declared}
	if v, ok := assignCache.Load(key); ok {
		return v.(bool)
	}
	ok := observed.AssignableTo(declared)
	assignCache.Store(key, ok)
	return ok
}
