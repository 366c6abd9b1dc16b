package resource_test

import (
	"testing"

	"github.com/archon-ecs/archon/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameConfig struct {
	MaxPlayers int
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := resource.NewRegistry()

	resource.Register(r, gameConfig{MaxPlayers: 4})

	cfg, ok := resource.Get[gameConfig](r)
	require.True(t, ok)
	assert.Equal(t, 4, cfg.MaxPlayers)
}

func TestRegistryGetAbsent(t *testing.T) {
	r := resource.NewRegistry()

	_, ok := resource.Get[gameConfig](r)
	assert.False(t, ok)
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	r := resource.NewRegistry()

	resource.Register(r, gameConfig{MaxPlayers: 4})
	resource.Register(r, gameConfig{MaxPlayers: 8})

	cfg, ok := resource.Get[gameConfig](r)
	require.True(t, ok)
	assert.Equal(t, 8, cfg.MaxPlayers)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryGetOrInit(t *testing.T) {
	r := resource.NewRegistry()

	cfg := resource.GetOrInit(r, func() gameConfig { return gameConfig{MaxPlayers: 2} })
	assert.Equal(t, 2, cfg.MaxPlayers)

	// a second call must not re-run the initializer.
	again := resource.GetOrInit(r, func() gameConfig { return gameConfig{MaxPlayers: 99} })
	assert.Equal(t, 2, again.MaxPlayers)
}

func TestRegistryHasAndRemove(t *testing.T) {
	r := resource.NewRegistry()
	resource.Register(r, gameConfig{MaxPlayers: 4})

	assert.True(t, resource.Has[gameConfig](r))
	assert.True(t, resource.Remove[gameConfig](r))
	assert.False(t, resource.Has[gameConfig](r))
	assert.False(t, resource.Remove[gameConfig](r))
}

func TestRegistryMustGetPanicsWhenAbsent(t *testing.T) {
	r := resource.NewRegistry()

	assert.Panics(t, func() {
		resource.MustGet[gameConfig](r)
	})
}
