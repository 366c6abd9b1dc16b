package archon

import "reflect"

// Archetype is a table: a ComponentSet worth of columns plus a row-aligned
// vector of entity ids. Column order matches the sorted id order of the
// set, and archetypeID equals the set's canonical id.
type Archetype struct {
	id        ArchetypeID
	set       ComponentSet
	columns   []ComponentArray
	entityIDs []EntityID
}

// NewArchetypeFromComponentSet builds an archetype with one empty column
// per meta in set, in set order, with no rows.
func NewArchetypeFromComponentSet(set ComponentSet) *Archetype {
	columns := make([]ComponentArray, set.Len())
	for i, meta := range set.Metas() {
		columns[i] = NewComponentArray(meta)
	}
	return &Archetype{
		id:      set.CanonicalID(),
		set:     set,
		columns: columns,
	}
}

// ID returns the archetype's canonical id.
func (a *Archetype) ID() ArchetypeID { return a.id }

// ComponentSet returns the archetype's component set.
func (a *Archetype) ComponentSet() *ComponentSet { return &a.set }

// Len returns the number of rows (== number of live entities) in the
// archetype.
func (a *Archetype) Len() int { return len(a.entityIDs) }

// EntityIDs returns the archetype's row-indexed entity ids. The returned
// slice must not be mutated by the caller.
func (a *Archetype) EntityIDs() []EntityID { return a.entityIDs }

// HasComponents reports whether every id in required is present.
func (a *Archetype) HasComponents(required []ComponentId) bool {
	for _, id := range required {
		if !a.set.Has(id) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one id in forbidden is present.
func (a *Archetype) HasAny(forbidden []ComponentId) bool {
	for _, id := range forbidden {
		if a.set.Has(id) {
			return true
		}
	}
	return false
}

// GetColumnIndex returns the column index for id, or -1 if the archetype
// does not carry id. It is an O(k) linear scan, k being the (small) number
// of columns.
func (a *Archetype) GetColumnIndex(id ComponentId) int {
	for i, m := range a.set.metas {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// GetColumn returns a pointer to the column for id, or nil.
func (a *Archetype) GetColumn(id ComponentId) *ComponentArray {
	idx := a.GetColumnIndex(id)
	if idx < 0 {
		return nil
	}
	return &a.columns[idx]
}

// componentPayload pairs a component id with its value, looked up by id
// among a loosely ordered slice of pairs. Used by AddEntity.
type componentPayload struct {
	ID    ComponentId
	Value reflect.Value
}

// AddEntity appends a new row for entityID using components, which must
// match the archetype's set exactly (same ids, any order). It returns the
// new row index.
func (a *Archetype) AddEntity(entityID EntityID, components []componentPayload) (int, error) {
	if len(components) != len(a.columns) {
		return 0, ComponentSetMismatchError{ArchetypeID: a.id}
	}
	for _, c := range components {
		if !a.set.Has(c.ID) {
			return 0, ComponentSetMismatchError{ArchetypeID: a.id}
		}
	}
	row := len(a.entityIDs)
	for i := range a.columns {
		id := a.columns[i].meta.ID
		var value reflect.Value
		for _, c := range components {
			if c.ID == id {
				value = c.Value
				break
			}
		}
		if err := a.columns[i].Append(value); err != nil {
			// Roll back columns already appended this call so every
			// column stays the same length on a failure mid-way.
			for j := 0; j < i; j++ {
				_ = a.columns[j].SwapRemove(a.columns[j].Len() - 1)
			}
			return 0, err
		}
	}
	a.entityIDs = append(a.entityIDs, entityID)
	return row, nil
}

// CopyRowTo copies, for every column in a whose id also exists in dst, the
// value at srcRow into the matching destination column, and appends
// entityID to dst's entity id vector. Columns that exist only in dst get a
// zero-value row; the caller overwrites it. It returns the new destination
// row index.
func (a *Archetype) CopyRowTo(srcRow int, dst *Archetype, entityID EntityID) (int, error) {
	// Reserve a row in every destination column that has no counterpart
	// in the source, so the column stays in lockstep with entityIDs;
	// the caller is responsible for overwriting these reserved rows.
	dstRow := len(dst.entityIDs)
	for i := range dst.columns {
		id := dst.columns[i].meta.ID
		srcCol := a.GetColumn(id)
		if srcCol == nil {
			if err := dst.columns[i].Append(zeroValue(dst.columns[i].meta.Type)); err != nil {
				rollbackColumns(dst.columns, dstRow)
				return 0, err
			}
			continue
		}
		value, _ := srcCol.GetValue(srcRow)
		if err := dst.columns[i].Append(value); err != nil {
			rollbackColumns(dst.columns, dstRow)
			return 0, err
		}
	}
	dst.entityIDs = append(dst.entityIDs, entityID)
	return dstRow, nil
}

func zeroValue(t reflect.Type) reflect.Value {
	return reflect.New(t).Elem()
}

func rollbackColumns(columns []ComponentArray, row int) {
	for i := range columns {
		if columns[i].Len() > row {
			_ = columns[i].SwapRemove(columns[i].Len() - 1)
		}
	}
}

// RemoveRowBySwap swap-removes row from entityIDs and from every column.
// It returns the entity id that previously occupied row. If that id
// differs from the id that occupied the last row before the swap, the
// entity previously at len-1 now occupies row, and the caller (the owning
// Database) must update its location record for that entity.
func (a *Archetype) RemoveRowBySwap(row int) (EntityID, error) {
	if row < 0 || row >= len(a.entityIDs) {
		return 0, IndexOutOfBoundsError{Index: row, Len: len(a.entityIDs)}
	}
	evicted := a.entityIDs[row]
	last := len(a.entityIDs) - 1
	if row != last {
		a.entityIDs[row] = a.entityIDs[last]
	}
	a.entityIDs = a.entityIDs[:last]
	for i := range a.columns {
		if err := a.columns[i].SwapRemove(row); err != nil {
			return 0, err
		}
	}
	return evicted, nil
}

// MovedEntityID returns the entity id currently occupying row, or false if
// row is out of range. Called with the last row before RemoveRowBySwap, it
// names the entity the swap will move; it does not itself tell whether a
// swap moved anything.
func (a *Archetype) MovedEntityID(row int) (EntityID, bool) {
	if row < 0 || row >= len(a.entityIDs) {
		return 0, false
	}
	return a.entityIDs[row], true
}
