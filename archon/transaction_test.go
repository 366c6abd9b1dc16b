package archon_test

import (
	"testing"

	"github.com/archon-ecs/archon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionQueuesAreNotVisibleUntilExecute(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	tx := archon.NewTransaction(db)

	id := tx.CreateEntity(archon.Of(position{X: 1}))
	_, ok := tx.GetEntity(id)
	assert.False(t, ok, "queued mutations must not be visible to passthrough reads before Execute")

	require.NoError(t, tx.Execute())

	_, ok = tx.GetEntity(id)
	assert.True(t, ok)
}

func TestTransactionFIFOOrder(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	tx := archon.NewTransaction(db)

	id := tx.CreateEntity(archon.Of(position{X: 1}))
	tx.AddComponents(id, archon.Of(velocity{DX: 1}))
	tx.RemoveComponents(id, archon.Of(velocity{}))

	require.NoError(t, tx.Execute())

	h, ok := db.GetEntity(id)
	require.True(t, ok)
	_, hasVel := archon.EntityGet[velocity](h)
	assert.False(t, hasVel, "commands must apply strictly in FIFO order")
}

func TestTransactionDoubleExecuteErrors(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	tx := archon.NewTransaction(db)
	tx.CreateEntity(archon.Of(position{X: 1}))

	require.NoError(t, tx.Execute())

	err := tx.Execute()
	assert.ErrorIs(t, err, archon.ErrTransactionAlreadyExecuted)
}

func TestTransactionDropWithoutExecuteDoesNotMutateDatabase(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	tx := archon.NewTransaction(db)

	id := tx.CreateEntity(archon.Of(position{X: 1}))
	tx.Drop()

	_, ok := db.GetEntity(id)
	assert.False(t, ok)

	// Drop after Drop must also be safe (no double cleanup panic).
	assert.NotPanics(t, func() { tx.Drop() })
}

func TestTransactionStopsOnFirstError(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	tx := archon.NewTransaction(db)

	id := tx.CreateEntity(archon.Of(position{X: 1}))
	tx.RemoveEntity(id)
	// Removing the entity twice: the second RemoveEntity fails since the
	// entity is already gone by the time Execute reaches it.
	tx.RemoveEntity(id)
	laterID := tx.CreateEntity(archon.Of(position{X: 2}))

	err := tx.Execute()
	require.Error(t, err)
	assert.IsType(t, archon.EntityNotFoundError{}, err)

	// Execution stops at the first failing command, so a command queued
	// after it never runs.
	_, ok := db.GetEntity(laterID)
	assert.False(t, ok)
}
