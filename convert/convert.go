// Package convert maps typed Go values to and from tree Values. A
// Registry holds one Converter per target type; the binder and the path
// setter resolve through it, falling back to structural handling for
// sequence and mapping shaped types that have no exact entry.
package convert

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ibuildthecloud/rjson/value"
)

// Converter is an encode/decode function pair for one target type.
// Encode accepts the target type (or nil) and produces a Value; Decode
// accepts a Value and produces the target type. Both directions map
// absence to absence: a nil input encodes to Null and a Null decodes to
// the type's absent form.
type Converter struct {
	Encode func(v any) (value.Value, error)
	Decode func(v value.Value) (any, error)
}

// NoConverterError is a configuration error: a member's declared type
// has no registered converter and no structural fallback applies.
type NoConverterError struct {
	Type reflect.Type
}

func (e *NoConverterError) Error() string {
	return fmt.Sprintf("no converter registered for type %s", e.Type)
}

// Registry maps target types to converters. Register everything during
// process start; after that the table is read-only and any number of
// goroutines may resolve concurrently.
type Registry struct {
	lock    sync.RWMutex
	entries map[reflect.Type]Converter
}

func NewRegistry() *Registry {
	r := &Registry{
		entries: map[reflect.Type]Converter{},
	}
	registerBuiltin(r)
	return r
}

// Default is the process-wide registry consulted when no explicit one is
// supplied.
var Default = NewRegistry()

func (r *Registry) Register(t reflect.Type, c Converter) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries[t] = c
}

func (r *Registry) Lookup(t reflect.Type) (Converter, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.entries[t]
	return c, ok
}

func (r *Registry) Resolve(t reflect.Type) (Converter, error) {
	if c, ok := r.Lookup(t); ok {
		return c, nil
	}
	return Converter{}, &NoConverterError{Type: t}
}
