package archon_test

import (
	"testing"

	"github.com/archon-ecs/archon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Seven distinct marker types, one per archetype, each carrying the same
// trait id with a different group key. Registration (and therefore
// archetype creation) order deliberately does not match ascending key
// order, to exercise the insertion-sorted grouping container.
type groupMarkerA struct{}
type groupMarkerB struct{}
type groupMarkerC struct{}
type groupMarkerD struct{}
type groupMarkerE struct{}
type groupMarkerF struct{}
type groupMarkerG struct{}

func TestGroupByAscendingKeyOrderIrrespectiveOfInsertionOrder(t *testing.T) {
	archon.ResetGlobalRegistry()
	const traitID = archon.ComponentId(0xC0FFEE)

	archon.RegisterTraitComponent[groupMarkerA](traitID, archon.KindGrouped, 5)
	archon.RegisterTraitComponent[groupMarkerB](traitID, archon.KindGrouped, 3)
	archon.RegisterTraitComponent[groupMarkerC](traitID, archon.KindGrouped, 8)
	archon.RegisterTraitComponent[groupMarkerD](traitID, archon.KindGrouped, 1)
	archon.RegisterTraitComponent[groupMarkerE](traitID, archon.KindGrouped, 9)
	archon.RegisterTraitComponent[groupMarkerF](traitID, archon.KindGrouped, 2)
	archon.RegisterTraitComponent[groupMarkerG](traitID, archon.KindGrouped, 7)

	db := archon.NewDatabase()
	_, _ = db.CreateEntity(archon.Of(groupMarkerA{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerB{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerC{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerD{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerE{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerF{}))
	_, _ = db.CreateEntity(archon.Of(groupMarkerG{}))

	result := db.GroupBy(traitID)

	var keys []int32
	for _, g := range result.Groups() {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []int32{1, 2, 3, 5, 7, 8, 9}, keys)
}

func TestGroupByQueryRestrictsToGroupArchetypes(t *testing.T) {
	archon.ResetGlobalRegistry()
	const traitID = archon.ComponentId(0xBEEF)
	archon.RegisterTraitComponent[groupMarkerA](traitID, archon.KindGrouped, 1)
	posMeta := archon.RegisterComponent[position]()

	db := archon.NewDatabase()
	_, _ = db.CreateEntity(archon.Of(groupMarkerA{}), archon.Of(position{X: 1}))
	_, _ = db.CreateEntity(archon.Of(position{X: 2})) // not in the group

	result := db.GroupBy(traitID)
	group, ok := result.Group(1)
	require.True(t, ok)

	assert.Equal(t, 1, group.Query(posMeta.ID).Count())
}

func TestGroupByUnknownKeyNotFound(t *testing.T) {
	archon.ResetGlobalRegistry()
	const traitID = archon.ComponentId(0x1234)
	archon.RegisterTraitComponent[groupMarkerA](traitID, archon.KindGrouped, 1)

	db := archon.NewDatabase()
	_, _ = db.CreateEntity(archon.Of(groupMarkerA{}))

	result := db.GroupBy(traitID)
	_, ok := result.Group(99)
	assert.False(t, ok)
}
