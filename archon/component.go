package archon

import (
	"fmt"
	"hash/fnv"
	"reflect"
	"unsafe"
)

// ComponentId is a stable 64-bit identifier for one component type, derived
// deterministically from the type's fully qualified name. Two distinct
// types yield distinct ids with overwhelming probability; the same type
// yields the same id across every call site in the process.
type ComponentId uint64

// TraitKind distinguishes the flavors of virtual trait a component can
// declare. Only KindGrouped carries a group key.
type TraitKind uint8

const (
	// KindNone means the component declares no trait.
	KindNone TraitKind = iota
	// KindGrouped means the component participates in a trait that is
	// organized into groups keyed by a signed 32-bit group key.
	KindGrouped
)

// TraitDescriptor carries the optional trait metadata a component type may
// declare: a virtual trait id shared by every type that participates in
// the trait, and (for grouped traits) a group key used to partition
// archetypes that carry the trait.
type TraitDescriptor struct {
	TraitID  ComponentId
	Kind     TraitKind
	GroupKey int32
}

// ComponentMeta is the identity and layout of one component type:
// (id, size, alignment, stride, optional trait). stride is size rounded up
// to a multiple of alignment, or zero for a zero-sized component. Type is
// the component's reflect.Type, kept so columns can be allocated as real
// typed arrays instead of raw bytes. Two metas are equal iff id, size,
// alignment, stride, and type all match.
type ComponentMeta struct {
	ID        ComponentId
	Size      uintptr
	Alignment uintptr
	Stride    uintptr
	Type      reflect.Type
	Trait     *TraitDescriptor
}

// Equal reports whether two metas describe the same identity and layout.
func (m ComponentMeta) Equal(other ComponentMeta) bool {
	return m.ID == other.ID && m.Size == other.Size &&
		m.Alignment == other.Alignment && m.Stride == other.Stride &&
		m.Type == other.Type
}

func alignUp(size, alignment uintptr) uintptr {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) &^ (alignment - 1)
}

// componentIdentity returns the hash input used to derive a ComponentId: a
// type's fully qualified name (package path plus type name). Unnamed types
// (e.g. anonymous structs) fall back to String(), which is still stable
// for a given source file across a process's lifetime.
func componentIdentity(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// hashIdentity derives a ComponentId from a type-identity string using
// 64-bit FNV-1a, the same non-cryptographic hash family the engine uses
// for ComponentSet's canonical archetype id.
func hashIdentity(identity string) ComponentId {
	h := fnv.New64a()
	_, _ = h.Write([]byte(identity))
	return ComponentId(h.Sum64())
}

var metaRegistry = make(map[ComponentId]ComponentMeta)

// ResetGlobalRegistry clears the package-level component metadata
// registry. Intended for tests that need a clean slate between runs.
func ResetGlobalRegistry() {
	metaRegistry = make(map[ComponentId]ComponentMeta)
}

// RegisterComponent registers component type T and returns its
// ComponentMeta. Calling it more than once for the same T returns the same
// meta. The id is derived from T's fully qualified name, so it is stable
// across registration order and across packages.
func RegisterComponent[T any]() ComponentMeta {
	var zero T
	t := reflect.TypeOf(zero)
	id := hashIdentity(componentIdentity(t))
	if existing, ok := metaRegistry[id]; ok {
		return existing
	}
	size := unsafe.Sizeof(zero)
	align := uintptr(1)
	if size > 0 {
		align = uintptr(reflect.TypeOf(zero).Align())
	}
	stride := uintptr(0)
	if size > 0 {
		stride = alignUp(size, align)
	}
	meta := ComponentMeta{ID: id, Size: size, Alignment: align, Stride: stride, Type: t}
	metaRegistry[id] = meta
	return meta
}

// RegisterTraitComponent registers T the same way RegisterComponent does,
// then attaches trait metadata so archetypes containing T participate in
// grouping by traitID (see GroupByResult).
func RegisterTraitComponent[T any](traitID ComponentId, kind TraitKind, groupKey int32) ComponentMeta {
	meta := RegisterComponent[T]()
	meta.Trait = &TraitDescriptor{TraitID: traitID, Kind: kind, GroupKey: groupKey}
	metaRegistry[meta.ID] = meta
	return meta
}

// ComponentMetaOf returns the registered meta for T, registering it first
// if necessary.
func ComponentMetaOf[T any]() ComponentMeta {
	return RegisterComponent[T]()
}

// LookupMeta returns the registered meta for id, if any.
func LookupMeta(id ComponentId) (ComponentMeta, bool) {
	m, ok := metaRegistry[id]
	return m, ok
}

// mustLookupMeta panics if id was never registered. Used internally where
// an id arriving from a ComponentSet must already have a registered meta.
func mustLookupMeta(id ComponentId) ComponentMeta {
	m, ok := metaRegistry[id]
	if !ok {
		panic(fmt.Sprintf("archon: component id %d was never registered", id))
	}
	return m
}
