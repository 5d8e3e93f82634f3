package types

import (
	"errors"
	"time"
)

// Todo represents a single task record. Roots (ParentID == nil) are the
// "Goals" a user organizes work under; non-roots are nested sub-todos.
//
// Path and OrderNumber are denormalized structure fields owned by the tree
// engine: Path is always recomputable as the parent's path plus the parent's
// id (or the record's own order number for roots), and OrderNumber is the
// record's 1-based position among the siblings sharing its ParentID.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"creatorId"`
	Completed   bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	Deadline    time.Time `json:"deadline"`
	ParentID    *int64    `json:"parentId"`
	Path        string    `json:"path"`
	OrderNumber int       `json:"orderNumber"`
}

// Entity validation errors.
var (
	ErrTitleEmpty = errors.New("title must not be empty")
)

// IsRoot reports whether the todo is a root-level Goal.
func (t Todo) IsRoot() bool {
	return t.ParentID == nil
}

// Validate checks the caller-supplied fields of a todo. Structural fields
// (Path, OrderNumber) are assigned by the tree engine and not checked here.
func (t Todo) Validate() error {
	if t.Title == "" {
		return ErrTitleEmpty
	}
	return nil
}

// SameParent reports whether the todo's parent matches the given parent id,
// where a nil parentID means the root level.
func (t Todo) SameParent(parentID *int64) bool {
	if t.ParentID == nil || parentID == nil {
		return t.ParentID == nil && parentID == nil
	}
	return *t.ParentID == *parentID
}
