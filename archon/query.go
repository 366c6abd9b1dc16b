package archon

// Without marks a component type as forbidden in a call to
// Database.QueryWithout: matched archetypes must carry every required id
// and none of the forbidden ones.
type Without struct {
	ID ComponentId
}

// WithoutType returns a Without marker for T, registering T first if
// necessary.
func WithoutType[T any]() Without {
	return Without{ID: ComponentMetaOf[T]().ID}
}

// QueryResult is a snapshot of the archetypes matching a predicate at the
// time Query or QueryWithout was called, paired with a back-reference to
// the database. Its entity iterator walks (archetype, row) pairs, skipping
// archetypes that have since been pruned; beyond that, a held QueryResult
// makes no promises across further structural mutation of the database.
type QueryResult struct {
	db         *Database
	archetypes []*Archetype
}

// Query selects archetypes that carry every id in required.
func (db *Database) Query(required ...ComponentId) QueryResult {
	return db.QueryWithout(required, nil)
}

// QueryWithout selects archetypes that carry every id in required and none
// of the ids in forbidden.
func (db *Database) QueryWithout(required, forbidden []ComponentId) QueryResult {
	var matched []*Archetype
	for _, arch := range db.archetypesList {
		if arch.HasComponents(required) && !arch.HasAny(forbidden) {
			matched = append(matched, arch)
		}
	}
	return QueryResult{db: db, archetypes: matched}
}

// Count returns the sum of row counts across matched archetypes still
// live in the database.
func (r QueryResult) Count() int {
	total := 0
	for _, arch := range r.archetypes {
		if r.isLive(arch) {
			total += arch.Len()
		}
	}
	return total
}

// First returns the first entity yielded by iteration, or false if the
// result is empty.
func (r QueryResult) First() (EntityHandle, bool) {
	for h := range r.Iter() {
		return h, true
	}
	return EntityHandle{}, false
}

func (r QueryResult) isLive(arch *Archetype) bool {
	live, ok := r.db.archetypes.Get(arch.id)
	return ok && live == arch
}

// Iter returns an iterator over every entity in every matched archetype
// still live in the database. Archetypes pruned since the query was built
// are skipped silently.
func (r QueryResult) Iter() func(yield func(EntityHandle) bool) {
	return func(yield func(EntityHandle) bool) {
		for _, arch := range r.archetypes {
			if !r.isLive(arch) {
				continue
			}
			for row, id := range arch.entityIDs {
				h := EntityHandle{
					ID:       id,
					location: EntityLocation{EntityID: id, ArchetypeID: arch.id, Row: row},
					db:       r.db,
				}
				if !yield(h) {
					return
				}
			}
		}
	}
}

// GroupBy partitions r's matched archetypes into groups keyed by the
// group key each archetype's traitID-bearing column carries. See
// GroupByResult for ordering guarantees.
func (r QueryResult) GroupBy(traitID ComponentId) GroupByResult {
	return groupArchetypes(r.db, r.archetypes, traitID)
}

// GroupBy partitions every archetype in the database into groups keyed by
// the group key each archetype's traitID-bearing column carries.
func (db *Database) GroupBy(traitID ComponentId) GroupByResult {
	return groupArchetypes(db, db.archetypesList, traitID)
}
