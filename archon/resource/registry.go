// Package resource implements the typed singleton registry the core engine
// holds as a sibling to its archetype storage: global, non-entity state
// such as configuration or frame-wide counters, keyed by component-type
// identity rather than by entity.
package resource

import (
	"fmt"
	"reflect"
)

// Registry is a map from a type's identity to one owned heap value of that
// type. Its lifetime matches the Database it is attached to as a sibling
// field; the engine core never reaches into it directly, treating it as an
// external collaborator.
type Registry struct {
	values map[reflect.Type]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[reflect.Type]any)}
}

func typeKey[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// Register stores value as the singleton instance of T. A later Register
// for the same T overwrites the previous value.
func Register[T any](r *Registry, value T) {
	r.values[typeKey[T]()] = value
}

// Get returns the current singleton instance of T, or false if none has
// been registered.
func Get[T any](r *Registry) (T, bool) {
	var zero T
	v, ok := r.values[typeKey[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// GetOrInit returns the current singleton instance of T, registering it
// with init() (or a zero value if init is omitted) on first access.
func GetOrInit[T any](r *Registry, init ...func() T) T {
	if v, ok := Get[T](r); ok {
		return v
	}
	var value T
	if len(init) > 0 {
		value = init[0]()
	}
	Register(r, value)
	return value
}

// Has reports whether a singleton instance of T has been registered.
func Has[T any](r *Registry) bool {
	_, ok := r.values[typeKey[T]()]
	return ok
}

// Remove deletes T's singleton instance, if any, and reports whether one
// was present.
func Remove[T any](r *Registry) bool {
	key := typeKey[T]()
	if _, ok := r.values[key]; !ok {
		return false
	}
	delete(r.values, key)
	return true
}

// Len returns the number of singleton values currently held.
func (r *Registry) Len() int { return len(r.values) }

// NotFoundError is returned by call sites that require a singleton already
// be present (unlike Get, which simply reports absence via its bool).
type NotFoundError struct {
	TypeName string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("archon/resource: singleton %q not found", e.TypeName)
}

// MustGet returns T's singleton instance or panics with a NotFoundError.
// Intended for wiring code (e.g. a scheduler injecting required resources)
// where an absent singleton signals a setup bug rather than a recoverable
// condition.
func MustGet[T any](r *Registry) T {
	v, ok := Get[T](r)
	if !ok {
		var zero T
		panic(NotFoundError{TypeName: fmt.Sprintf("%T", zero)})
	}
	return v
}
