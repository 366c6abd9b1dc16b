// Package event provides a typed publish/subscribe bus for notifying
// interested systems of occurrences that are not modeled as entities or
// components (e.g. "collision happened", "level loaded").
package event

import "github.com/archon-ecs/archon"

// Bus dispatches events of any registered type to every handler subscribed
// for that type. Event identity is derived the same way component identity
// is: via archon.ComponentMetaOf's type-name hash, so an event type and a
// component type of the same Go type would collide under the hash the same
// way they would as archetype members — in practice no conflict arises
// since a type used as an event is never also stored as a component.
type Bus struct {
	handlers map[archon.ComponentId][]any
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[archon.ComponentId][]any)}
}

// Subscribe registers handler to be called on every future Publish of T.
func Subscribe[T any](bus *Bus, handler func(T)) {
	id := archon.ComponentMetaOf[T]().ID
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish calls every handler subscribed for T, in subscription order.
func Publish[T any](bus *Bus, ev T) {
	id := archon.ComponentMetaOf[T]().ID
	for _, h := range bus.handlers[id] {
		h.(func(T))(ev)
	}
}

// HandlerCount returns the number of handlers currently subscribed for T.
// Intended for tests and diagnostics.
func HandlerCount[T any](bus *Bus) int {
	id := archon.ComponentMetaOf[T]().ID
	return len(bus.handlers[id])
}
