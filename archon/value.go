package archon

import "reflect"

// ComponentValue pairs a registered component's metadata with a snapshot
// of one value. Database and Transaction methods that create entities or
// add components take ComponentValue, built with Of.
type ComponentValue struct {
	Meta ComponentMeta
	raw  reflect.Value
}

// Of captures value against T's registered ComponentMeta, registering T
// first if necessary. value is copied into a freshly allocated, addressable
// holder of T's own type rather than punned into raw bytes, so component
// types carrying strings, slices, maps, or pointers stay visible to the
// garbage collector all the way into archetype storage.
func Of[T any](value T) ComponentValue {
	meta := ComponentMetaOf[T]()
	holder := reflect.New(meta.Type).Elem()
	holder.Set(reflect.ValueOf(value))
	return ComponentValue{Meta: meta, raw: holder}
}

func (v ComponentValue) payload() componentPayload {
	return componentPayload{ID: v.Meta.ID, Value: v.raw}
}

func payloadsOf(values []ComponentValue) []componentPayload {
	out := make([]componentPayload, len(values))
	for i, v := range values {
		out[i] = v.payload()
	}
	return out
}

func setOf(values []ComponentValue) ComponentSet {
	metas := make([]ComponentMeta, len(values))
	for i, v := range values {
		metas[i] = v.Meta
	}
	return NewComponentSetFromMetas(metas...)
}
