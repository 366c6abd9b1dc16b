package archon_test

import (
	"testing"

	"github.com/archon-ecs/archon"
	"github.com/stretchr/testify/assert"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }
type tag struct{}

func TestRegisterComponentIsDeterministic(t *testing.T) {
	archon.ResetGlobalRegistry()
	a := archon.RegisterComponent[position]()
	archon.ResetGlobalRegistry()
	b := archon.RegisterComponent[position]()

	assert.Equal(t, a.ID, b.ID, "id must not depend on registration order")
}

func TestRegisterComponentDistinctTypes(t *testing.T) {
	archon.ResetGlobalRegistry()
	pos := archon.RegisterComponent[position]()
	vel := archon.RegisterComponent[velocity]()

	assert.NotEqual(t, pos.ID, vel.ID)
}

func TestRegisterComponentIdempotent(t *testing.T) {
	archon.ResetGlobalRegistry()
	first := archon.RegisterComponent[position]()
	second := archon.RegisterComponent[position]()

	assert.Equal(t, first, second)
}

func TestRegisterComponentLayout(t *testing.T) {
	archon.ResetGlobalRegistry()
	meta := archon.RegisterComponent[position]()

	assert.EqualValues(t, 8, meta.Size)
	assert.Greater(t, meta.Stride, uintptr(0))
}

func TestRegisterComponentZeroSized(t *testing.T) {
	archon.ResetGlobalRegistry()
	meta := archon.RegisterComponent[tag]()

	assert.EqualValues(t, 0, meta.Size)
	assert.EqualValues(t, 0, meta.Stride)
}

func TestComponentMetaEqual(t *testing.T) {
	archon.ResetGlobalRegistry()
	a := archon.RegisterComponent[position]()
	b := archon.RegisterComponent[position]()
	c := archon.RegisterComponent[velocity]()

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestLookupMeta(t *testing.T) {
	archon.ResetGlobalRegistry()
	meta := archon.RegisterComponent[position]()

	found, ok := archon.LookupMeta(meta.ID)
	assert.True(t, ok)
	assert.Equal(t, meta, found)

	_, ok = archon.LookupMeta(archon.ComponentId(0xdeadbeef))
	assert.False(t, ok)
}

func TestRegisterTraitComponent(t *testing.T) {
	archon.ResetGlobalRegistry()
	traitID := archon.ComponentId(42)
	meta := archon.RegisterTraitComponent[position](traitID, archon.KindGrouped, 7)

	if assert.NotNil(t, meta.Trait) {
		assert.Equal(t, traitID, meta.Trait.TraitID)
		assert.Equal(t, archon.KindGrouped, meta.Trait.Kind)
		assert.EqualValues(t, 7, meta.Trait.GroupKey)
	}
}
