package archon

import (
	"errors"
	"fmt"
)

// ErrTransactionAlreadyExecuted is returned by Transaction.Execute when it is
// called a second time on the same transaction.
var ErrTransactionAlreadyExecuted = errors.New("archon: transaction already executed")

// EntityNotFoundError is returned by any Database or Transaction operation
// that references an entity id that is not (or no longer) alive.
type EntityNotFoundError struct {
	ID EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("archon: entity %d not found", e.ID)
}

// ArchetypeNotFoundError indicates an entity's location points at an
// archetype the database does not own. This should never occur outside a
// programming error in this package.
type ArchetypeNotFoundError struct {
	ID ArchetypeID
}

func (e ArchetypeNotFoundError) Error() string {
	return fmt.Sprintf("archon: archetype %d not found", e.ID)
}

// IndexOutOfBoundsError is returned by ComponentArray operations addressing
// a row outside [0, len).
type IndexOutOfBoundsError struct {
	Index int
	Len   int
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("archon: index %d out of bounds (len %d)", e.Index, e.Len)
}

// TypeMismatchError is returned when a value handed to a ComponentArray is
// not of the column's component type. Expected and Got are the byte sizes
// of the two types, which may be equal.
type TypeMismatchError struct {
	Expected int
	Got      int
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("archon: type mismatch: expected %d bytes, got %d", e.Expected, e.Got)
}

// CannotRemoveAllComponentsError is returned by Database.RemoveComponents
// when the difference between the entity's current component set and the
// components being removed is empty, i.e. the entity would be left with
// no components at all.
type CannotRemoveAllComponentsError struct {
	ID EntityID
}

func (e CannotRemoveAllComponentsError) Error() string {
	return fmt.Sprintf("archon: removing requested components from entity %d would leave no components", e.ID)
}

// ComponentSetMismatchError is returned by Archetype.AddEntity when the
// caller's components do not exactly match the archetype's component set.
type ComponentSetMismatchError struct {
	ArchetypeID ArchetypeID
}

func (e ComponentSetMismatchError) Error() string {
	return fmt.Sprintf("archon: components do not match archetype %d's set", e.ArchetypeID)
}
