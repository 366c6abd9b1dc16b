package archon

// EntityID is drawn from a monotonic per-Database counter. Ids are never
// reused within a database's lifetime.
type EntityID uint64

// ArchetypeID is the canonical id of an archetype's ComponentSet.
type ArchetypeID uint64

// EntityLocation is the authoritative record of where an entity's row
// lives. It is invalidated only by documented operations (swap-remove,
// structural move).
type EntityLocation struct {
	EntityID    EntityID
	ArchetypeID ArchetypeID
	Row         int
}

// EntityHandle is a value-typed, non-owning view of an entity's current
// location. It must not be used across a structural mutation of its
// archetype: such a mutation may swap-remove or move the row the handle
// points at, after which Valid reports false and EntityGet and Components
// return nothing rather than re-resolving the entity.
type EntityHandle struct {
	ID       EntityID
	location EntityLocation
	db       *Database
}

// Valid reports whether the handle's id still resolves to the same
// location it was created with. It does not re-resolve the entity; a
// handle that has gone stale due to a structural mutation elsewhere
// reports false once the location on record no longer matches.
func (h EntityHandle) Valid() bool {
	if h.db == nil {
		return false
	}
	loc, ok := h.db.entities.Get(h.ID)
	if !ok {
		return false
	}
	return loc == h.location
}

// EntityGet copies component T's bytes for this entity into a new T value.
// It returns false if the entity does not carry T or the handle is stale.
func EntityGet[T any](h EntityHandle) (T, bool) {
	var zero T
	if !h.Valid() {
		return zero, false
	}
	meta := ComponentMetaOf[T]()
	arch, ok := h.db.archetypes.Get(h.location.ArchetypeID)
	if !ok {
		return zero, false
	}
	col := arch.GetColumn(meta.ID)
	if col == nil {
		return zero, false
	}
	ptr := col.Get(h.location.Row)
	if ptr == nil {
		return zero, meta.Size == 0
	}
	return *(*T)(ptr), true
}

// Components returns the sorted component metas of the archetype this
// handle's entity currently belongs to, or nil if the handle is stale.
func (h EntityHandle) Components() []ComponentMeta {
	if !h.Valid() {
		return nil
	}
	arch, ok := h.db.archetypes.Get(h.location.ArchetypeID)
	if !ok {
		return nil
	}
	return arch.set.Metas()
}
