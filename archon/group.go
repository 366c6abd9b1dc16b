package archon

import "sort"

// Group is a per-key view over every archetype assigned to that group key.
type Group struct {
	db         *Database
	Key        int32
	archetypes []*Archetype
}

// Iter yields every entity in every archetype assigned to this group.
func (g Group) Iter() func(yield func(EntityHandle) bool) {
	r := QueryResult{db: g.db, archetypes: g.archetypes}
	return r.Iter()
}

// Query restricts required-component matching to this group's archetypes.
func (g Group) Query(required ...ComponentId) QueryResult {
	var matched []*Archetype
	for _, arch := range g.archetypes {
		if arch.HasComponents(required) {
			matched = append(matched, arch)
		}
	}
	return QueryResult{db: g.db, archetypes: matched}
}

// GroupByResult holds every group produced by a grouping pass, kept in a
// slice sorted by key as groups are inserted, so iteration is always in
// strictly ascending key order regardless of the order archetypes were
// discovered in.
type GroupByResult struct {
	groups []*Group
}

// Groups returns the groups in strictly ascending key order. The returned
// slice must not be mutated by the caller.
func (g GroupByResult) Groups() []*Group { return g.groups }

// Group returns the group for key, if any archetype carries it.
func (g GroupByResult) Group(key int32) (*Group, bool) {
	i := sort.Search(len(g.groups), func(i int) bool { return g.groups[i].Key >= key })
	if i < len(g.groups) && g.groups[i].Key == key {
		return g.groups[i], true
	}
	return nil, false
}

func (g *GroupByResult) insertSorted(db *Database, key int32, arch *Archetype) {
	i := sort.Search(len(g.groups), func(i int) bool { return g.groups[i].Key >= key })
	if i < len(g.groups) && g.groups[i].Key == key {
		grp := g.groups[i]
		if n := len(grp.archetypes); n > 0 && grp.archetypes[n-1] == arch {
			return
		}
		grp.archetypes = append(grp.archetypes, arch)
		return
	}
	grp := &Group{db: db, Key: key, archetypes: []*Archetype{arch}}
	g.groups = append(g.groups, nil)
	copy(g.groups[i+1:], g.groups[i:])
	g.groups[i] = grp
}

// groupArchetypes walks archetypes and, for each column whose meta carries
// traitID with TraitKind Grouped, assigns the archetype to the group for
// that column's group key. Multiple archetypes may map to the same group,
// and an archetype whose columns carry several keys joins each of those
// groups once.
func groupArchetypes(db *Database, archetypes []*Archetype, traitID ComponentId) GroupByResult {
	var result GroupByResult
	for _, arch := range archetypes {
		for _, meta := range arch.set.Metas() {
			if meta.Trait == nil || meta.Trait.Kind != KindGrouped || meta.Trait.TraitID != traitID {
				continue
			}
			result.insertSorted(db, meta.Trait.GroupKey, arch)
		}
	}
	return result
}
