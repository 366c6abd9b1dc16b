package archon

import (
	"github.com/archon-ecs/archon/resource"
	"github.com/kamstrup/intmap"
)

// DatabaseOptions configures a new Database.
type DatabaseOptions struct {
	// InitialArchetypeCapacity is a hint for the archetype and entity
	// lookup maps' initial size. Zero uses a small built-in default.
	InitialArchetypeCapacity int
}

const defaultInitialArchetypeCapacity = 32

// Database owns every archetype and the entity-to-location index. It is
// the sole implementation of structural mutation: creating and removing
// entities, and adding or removing components (which move an entity's row
// between archetypes).
type Database struct {
	archetypes     *intmap.Map[ArchetypeID, *Archetype]
	archetypesList []*Archetype // insertion order, for query enumeration
	entities       *intmap.Map[EntityID, EntityLocation]
	nextEntityID   EntityID

	// Resources is the sibling singleton registry: global, non-entity
	// state such as configuration or frame-wide counters. The core never
	// reaches into it; it exists for user code and the scheduler.
	Resources *resource.Registry
}

// NewDatabase creates an empty Database with default options.
func NewDatabase() *Database {
	return NewDatabaseWithOptions(DatabaseOptions{})
}

// NewDatabaseWithOptions creates an empty Database.
func NewDatabaseWithOptions(opts DatabaseOptions) *Database {
	cap := opts.InitialArchetypeCapacity
	if cap <= 0 {
		cap = defaultInitialArchetypeCapacity
	}
	return &Database{
		archetypes: intmap.New[ArchetypeID, *Archetype](cap),
		entities:   intmap.New[EntityID, EntityLocation](cap),
		Resources:  resource.NewRegistry(),
	}
}

// getOrCreateArchetype returns the archetype for set, creating it (and
// recording it at the end of the insertion-order list) if absent.
func (db *Database) getOrCreateArchetype(set ComponentSet) *Archetype {
	id := set.CanonicalID()
	if arch, ok := db.archetypes.Get(id); ok {
		return arch
	}
	arch := NewArchetypeFromComponentSet(set)
	db.archetypes.Put(id, arch)
	db.archetypesList = append(db.archetypesList, arch)
	return arch
}

// ReserveEntityID returns a fresh entity id without creating any storage
// for it. Used by Transaction so callers receive an id synchronously
// before the entity's row actually exists.
func (db *Database) ReserveEntityID() EntityID {
	id := db.nextEntityID
	db.nextEntityID++
	return id
}

// CreateEntity reserves a new id, builds the ComponentSet for components,
// and inserts a row into the looked-up-or-created archetype.
func (db *Database) CreateEntity(components ...ComponentValue) (EntityID, error) {
	id := db.ReserveEntityID()
	if err := db.CreateEntityWithID(id, components...); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateEntityWithID is CreateEntity using a pre-reserved id.
func (db *Database) CreateEntityWithID(id EntityID, components ...ComponentValue) error {
	set := setOf(components)
	arch := db.getOrCreateArchetype(set)
	row, err := arch.AddEntity(id, payloadsOf(components))
	if err != nil {
		return err
	}
	db.entities.Put(id, EntityLocation{EntityID: id, ArchetypeID: arch.id, Row: row})
	return nil
}

// GetEntity returns a handle to id's current location, or false if id is
// not alive.
func (db *Database) GetEntity(id EntityID) (EntityHandle, bool) {
	loc, ok := db.entities.Get(id)
	if !ok {
		return EntityHandle{}, false
	}
	return EntityHandle{ID: id, location: loc, db: db}, true
}

// RemoveEntity deletes id's row via swap-remove and fixes up the location
// of whichever entity the swap relocated, then prunes the archetype if it
// is now empty.
func (db *Database) RemoveEntity(id EntityID) error {
	loc, ok := db.entities.Get(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	arch, ok := db.archetypes.Get(loc.ArchetypeID)
	if !ok {
		return ArchetypeNotFoundError{ID: loc.ArchetypeID}
	}

	movedID, hasMoved := arch.MovedEntityID(arch.Len() - 1)
	moved := hasMoved && movedID != id && arch.Len()-1 != loc.Row

	if _, err := arch.RemoveRowBySwap(loc.Row); err != nil {
		return err
	}
	if moved {
		movedLoc, ok := db.entities.Get(movedID)
		if ok {
			movedLoc.Row = loc.Row
			db.entities.Put(movedID, movedLoc)
		}
	}
	db.entities.Del(id)
	db.pruneIfEmpty(arch)
	return nil
}

// AddComponents moves id into the archetype for its current set unioned
// with components' set. If the union equals the current set, the
// components are overwritten in place with no archetype change.
func (db *Database) AddComponents(id EntityID, components ...ComponentValue) error {
	if len(components) == 0 {
		return nil
	}
	loc, ok := db.entities.Get(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	source, ok := db.archetypes.Get(loc.ArchetypeID)
	if !ok {
		return ArchetypeNotFoundError{ID: loc.ArchetypeID}
	}

	newSet := setOf(components)
	target := source.set.Union(&newSet)
	targetID := target.CanonicalID()

	if targetID == source.id {
		for _, cv := range components {
			col := source.GetColumn(cv.Meta.ID)
			if col == nil {
				return ComponentSetMismatchError{ArchetypeID: source.id}
			}
			if err := col.Set(loc.Row, cv.raw); err != nil {
				return err
			}
		}
		return nil
	}

	targetArch := db.getOrCreateArchetype(target)

	dstRow, err := source.CopyRowTo(loc.Row, targetArch, id)
	if err != nil {
		return err
	}

	for _, cv := range components {
		col := targetArch.GetColumn(cv.Meta.ID)
		if col == nil {
			rollbackColumns(targetArch.columns, dstRow)
			targetArch.entityIDs = targetArch.entityIDs[:dstRow]
			return ComponentSetMismatchError{ArchetypeID: targetArch.id}
		}
		if err := col.Set(dstRow, cv.raw); err != nil {
			rollbackColumns(targetArch.columns, dstRow)
			targetArch.entityIDs = targetArch.entityIDs[:dstRow]
			return err
		}
	}

	if err := db.finishMove(id, loc, source, targetArch, dstRow); err != nil {
		return err
	}
	return nil
}

// RemoveComponents moves id into the archetype for its current set minus
// toRemove's ids. Fails CannotRemoveAllComponentsError if that difference
// is empty. If the difference equals the current set (none of toRemove
// was present), it is a no-op.
func (db *Database) RemoveComponents(id EntityID, toRemove ...ComponentValue) error {
	if len(toRemove) == 0 {
		return nil
	}
	loc, ok := db.entities.Get(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	source, ok := db.archetypes.Get(loc.ArchetypeID)
	if !ok {
		return ArchetypeNotFoundError{ID: loc.ArchetypeID}
	}

	removalSet := setOf(toRemove)
	target := source.set.Difference(&removalSet)
	if target.Len() == 0 {
		return CannotRemoveAllComponentsError{ID: id}
	}
	targetID := target.CanonicalID()
	if targetID == source.id {
		return nil
	}

	targetArch := db.getOrCreateArchetype(target)
	dstRow, err := source.CopyRowTo(loc.Row, targetArch, id)
	if err != nil {
		return err
	}

	return db.finishMove(id, loc, source, targetArch, dstRow)
}

// finishMove swap-removes the entity's old row from source (fixing up any
// entity the swap relocated), prunes source if now empty, and rewrites
// id's location to point at targetArch/dstRow.
func (db *Database) finishMove(id EntityID, loc EntityLocation, source, targetArch *Archetype, dstRow int) error {
	movedID, hasMoved := source.MovedEntityID(source.Len() - 1)
	moved := hasMoved && movedID != id && source.Len()-1 != loc.Row

	if _, err := source.RemoveRowBySwap(loc.Row); err != nil {
		// Roll back the orphaned row we just appended to targetArch.
		rollbackOrphanRow(targetArch, dstRow)
		return err
	}
	if moved {
		movedLoc, ok := db.entities.Get(movedID)
		if ok {
			movedLoc.Row = loc.Row
			db.entities.Put(movedID, movedLoc)
		}
	}
	db.pruneIfEmpty(source)
	db.entities.Put(id, EntityLocation{EntityID: id, ArchetypeID: targetArch.id, Row: dstRow})
	return nil
}

func rollbackOrphanRow(arch *Archetype, row int) {
	if row == len(arch.entityIDs)-1 {
		_, _ = arch.RemoveRowBySwap(row)
	}
}

// pruneIfEmpty removes arch from the database if it now has zero rows.
func (db *Database) pruneIfEmpty(arch *Archetype) {
	if arch.Len() != 0 {
		return
	}
	db.archetypes.Del(arch.id)
	for i, a := range db.archetypesList {
		if a == arch {
			db.archetypesList = append(db.archetypesList[:i], db.archetypesList[i+1:]...)
			break
		}
	}
}

// ArchetypeCount returns the number of live (non-empty) archetypes.
func (db *Database) ArchetypeCount() int { return db.archetypes.Len() }

// EntityCount returns the number of live entities.
func (db *Database) EntityCount() int { return db.entities.Len() }
