package archon

// command is a single queued structural mutation: execute applies it to
// db, and cleanup releases its context. cleanup must run exactly once
// regardless of whether execute ran (see Transaction's double-free-safety
// guarantee).
type command struct {
	execute func(db *Database) error
	cleanup func()
}

// Transaction buffers structural mutations (CreateEntity, RemoveEntity,
// AddComponents, RemoveComponents) so that systems running against a
// snapshot of the Database never observe each other's structural changes
// mid-pass. Passthrough reads (GetEntity, Query, QueryWithout, GroupBy)
// bypass the queue and run immediately against the live Database.
//
// A Transaction is single-use: Execute runs every queued command in FIFO
// order and marks the transaction consumed. Calling Execute again returns
// ErrTransactionAlreadyExecuted. If a queued command fails, Execute stops
// and returns that error, but every command's cleanup (both the ones that
// ran and the ones that didn't) still runs exactly once.
type Transaction struct {
	db       *Database
	commands []command
	executed bool
}

// NewTransaction returns a Transaction queuing mutations against db.
func NewTransaction(db *Database) *Transaction {
	return &Transaction{db: db}
}

// CreateEntity reserves an entity id synchronously and queues the actual
// row insertion. The returned id is valid immediately for use as a target
// of further queued operations on this transaction, but the entity does
// not exist in the database until Execute runs.
func (tx *Transaction) CreateEntity(components ...ComponentValue) EntityID {
	id := tx.db.ReserveEntityID()
	tx.commands = append(tx.commands, command{
		execute: func(db *Database) error {
			return db.CreateEntityWithID(id, components...)
		},
		cleanup: func() {},
	})
	return id
}

// RemoveEntity queues an entity removal.
func (tx *Transaction) RemoveEntity(id EntityID) {
	tx.commands = append(tx.commands, command{
		execute: func(db *Database) error { return db.RemoveEntity(id) },
		cleanup: func() {},
	})
}

// AddComponents queues a component addition.
func (tx *Transaction) AddComponents(id EntityID, components ...ComponentValue) {
	tx.commands = append(tx.commands, command{
		execute: func(db *Database) error { return db.AddComponents(id, components...) },
		cleanup: func() {},
	})
}

// RemoveComponents queues a component removal.
func (tx *Transaction) RemoveComponents(id EntityID, components ...ComponentValue) {
	tx.commands = append(tx.commands, command{
		execute: func(db *Database) error { return db.RemoveComponents(id, components...) },
		cleanup: func() {},
	})
}

// GetEntity is a passthrough read against the live database; it does not
// see mutations queued on tx until Execute runs.
func (tx *Transaction) GetEntity(id EntityID) (EntityHandle, bool) { return tx.db.GetEntity(id) }

// Query is a passthrough read; see GetEntity.
func (tx *Transaction) Query(required ...ComponentId) QueryResult { return tx.db.Query(required...) }

// QueryWithout is a passthrough read; see GetEntity.
func (tx *Transaction) QueryWithout(required, forbidden []ComponentId) QueryResult {
	return tx.db.QueryWithout(required, forbidden)
}

// GroupBy is a passthrough read; see GetEntity.
func (tx *Transaction) GroupBy(traitID ComponentId) GroupByResult { return tx.db.GroupBy(traitID) }

// Execute runs every queued command against the underlying database in
// FIFO order. If a command's execute fails, Execute stops running further
// commands and returns that error, but every command's cleanup still runs
// exactly once before Execute returns. Calling Execute on an
// already-executed transaction returns ErrTransactionAlreadyExecuted
// without touching the database or running cleanup again.
func (tx *Transaction) Execute() error {
	if tx.executed {
		return ErrTransactionAlreadyExecuted
	}
	tx.executed = true

	var firstErr error
	for _, cmd := range tx.commands {
		if firstErr == nil {
			if err := cmd.execute(tx.db); err != nil {
				firstErr = err
			}
		}
	}
	// Every command's context is released exactly once, whether or not it
	// ran: a command skipped after firstErr was set still owns state it
	// queued at CreateEntity/AddComponents time that must be freed.
	for _, cmd := range tx.commands {
		cmd.cleanup()
	}
	tx.commands = nil
	return firstErr
}

// Drop releases every queued command's context without executing any of
// them. It is a no-op if the transaction has already been executed, since
// Execute already ran cleanup for every command exactly once. Callers that
// construct a Transaction and decide not to use it should call Drop so
// commands closing over heap state (e.g. pooled buffers) are not leaked.
func (tx *Transaction) Drop() {
	if tx.executed {
		return
	}
	tx.executed = true
	for _, cmd := range tx.commands {
		cmd.cleanup()
	}
	tx.commands = nil
}
