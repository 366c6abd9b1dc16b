package sched_test

import (
	"testing"

	"github.com/archon-ecs/archon"
	"github.com/archon-ecs/archon/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedPosition struct{ X, Y float32 }
type schedVelocity struct{ DX, DY float32 }

type spawnSystem struct {
	executed bool
}

func (s *spawnSystem) Execute(frame *sched.Frame) {
	s.executed = true
	frame.Tx.CreateEntity(archon.Of(schedPosition{X: 1, Y: 2}))
	frame.Tx.CreateEntity(archon.Of(schedPosition{X: 3, Y: 4}))
}

type moveSystem struct {
	entity archon.EntityID
}

func (s *moveSystem) Execute(frame *sched.Frame) {
	frame.Tx.AddComponents(s.entity, archon.Of(schedVelocity{DX: 1, DY: 1}))
}

type panicSystem struct{}

func (s *panicSystem) Execute(frame *sched.Frame) {
	panic("boom")
}

func TestSchedulerOnceRunsSystemsAndFlushesCommands(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	posMeta := archon.RegisterComponent[schedPosition]()
	scheduler := sched.NewScheduler(db)

	system := &spawnSystem{}
	scheduler.Register(system)

	assert.Equal(t, 0, db.Query(posMeta.ID).Count())

	scheduler.Once(1.0)

	assert.True(t, system.executed)
	assert.Equal(t, 2, db.Query(posMeta.ID).Count())
}

func TestSchedulerOnceAppliesQueuedAddComponents(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	id, err := db.CreateEntity(archon.Of(schedPosition{X: 1, Y: 2}))
	require.NoError(t, err)

	scheduler := sched.NewScheduler(db)
	scheduler.Register(&moveSystem{entity: id})
	scheduler.Once(1.0)

	h, ok := db.GetEntity(id)
	require.True(t, ok)
	_, hasVel := archon.EntityGet[schedVelocity](h)
	assert.True(t, hasVel)
}

func TestSchedulerRecoversSystemPanic(t *testing.T) {
	archon.ResetGlobalRegistry()
	db := archon.NewDatabase()
	scheduler := sched.NewScheduler(db)
	scheduler.Register(&panicSystem{})

	assert.NotPanics(t, func() { scheduler.Once(1.0) })
}
