// Package sched runs user systems against an archon.Database at a cadence
// it controls, injecting a fresh Transaction per frame so structural
// mutations queued by one system in a frame are never visible to another
// system in the same frame.
package sched

import (
	"context"
	"log"
	"time"

	"github.com/archon-ecs/archon"
)

// Frame is handed to every System.Execute call for one scheduler tick.
type Frame struct {
	DeltaTime float64
	Tx        *archon.Transaction
}

// System is user-defined behavior run once per scheduler tick. Systems
// queue structural mutations through Frame.Tx rather than mutating the
// database directly, so that every system in a frame observes the same
// pre-frame state.
type System interface {
	Execute(frame *Frame)
}

// Scheduler runs a fixed, ordered list of systems against a Database, once
// per tick.
type Scheduler struct {
	db      *archon.Database
	systems []System
}

// NewScheduler returns a Scheduler driving db.
func NewScheduler(db *archon.Database) *Scheduler {
	return &Scheduler{db: db}
}

// Register appends system to the scheduler's ordered system list.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
}

// Once runs every registered system once, in registration order, against
// one shared Transaction, then executes that transaction against the
// database. A system panic is recovered and logged; the transaction is
// still executed with whatever commands were queued before the panic, and
// a transaction execute error is logged rather than propagated, since a
// Scheduler has no caller to return it to.
func (s *Scheduler) Once(dt float64) {
	tx := archon.NewTransaction(s.db)
	frame := &Frame{DeltaTime: dt, Tx: tx}

	for _, system := range s.systems {
		s.runSystem(system, frame)
	}

	if err := tx.Execute(); err != nil {
		log.Printf("archon/sched: transaction execute failed: %v", err)
	}
}

func (s *Scheduler) runSystem(system System, frame *Frame) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("archon/sched: system panic recovered: %v", r)
		}
	}()
	system.Execute(frame)
}

// Run calls Once at interval until ctx is cancelled, passing the elapsed
// wall-clock time since the previous tick as delta time.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}
