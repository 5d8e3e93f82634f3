package types

import (
	"errors"
	"time"
)

// Store defines the storage collaborator for todo records. Implementations
// provide plain CRUD keyed by id with a secondary index by owner; they assign
// ids, never validate tree invariants, and never cascade. Both the in-memory
// and the SQLite backends satisfy this interface, and the tree engine works
// against either without change.
type Store interface {
	// Insert persists a new todo, assigning a fresh unique id.
	// Returns the stored record with the id filled in.
	Insert(todo Todo) (Todo, error)

	// Get retrieves the todo with the given id.
	// Returns ErrNotFound if no todo exists with that id.
	Get(id int64) (Todo, error)

	// ListByOwner returns every todo belonging to the owner in insertion
	// (id) order; callers that need sibling order sort on OrderNumber.
	ListByOwner(ownerID int64) ([]Todo, error)

	// Update overwrites only the fields set on the patch.
	// Returns the updated record, or ErrNotFound.
	Update(id int64, patch TodoPatch) (Todo, error)

	// Delete removes a single todo. It does not cascade; subtree deletion
	// is the tree engine's concern. Returns ErrNotFound if absent.
	Delete(id int64) error

	// Close releases backend resources. Operations after Close return
	// ErrStoreClosed.
	Close() error
}

// TodoPatch is a partial update: nil fields are left unchanged.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Deadline    *time.Time
	OrderNumber *int
	Path        *string
	Parent      *ParentPatch
}

// ParentPatch requests a ParentID change. A nil ID re-parents to the root
// level; the wrapper distinguishes "set to null" from "leave unchanged".
type ParentPatch struct {
	ID *int64
}

// IsZero reports whether the patch carries no changes at all.
func (p TodoPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Deadline == nil && p.OrderNumber == nil && p.Path == nil && p.Parent == nil
}

// Store operation errors.
var (
	ErrNotFound    = errors.New("todo not found")
	ErrStoreClosed = errors.New("store is closed")
)

// Tree operation errors.
var (
	ErrUnauthorized         = errors.New("todo does not belong to the acting owner")
	ErrParentNotFound       = errors.New("parent todo not found")
	ErrTargetParentNotFound = errors.New("target parent not found")
	ErrInvalidMove          = errors.New("cannot move todo under itself or its descendants")
	ErrInvalidSiblingSet    = errors.New("todos do not all share the claimed parent")
)
