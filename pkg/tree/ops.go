package tree

import (
	"time"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// CreateRequest carries the caller-supplied fields for a new todo. A nil
// ParentID creates a root-level Goal.
type CreateRequest struct {
	Title       string
	Description string
	Deadline    time.Time
	ParentID    *int64
}

// Create inserts a new todo as a root or beneath an existing parent. The
// new record is appended to its sibling set; no other record changes.
// Returns the owner's updated collection.
func (e *Engine) Create(ownerID int64, req CreateRequest) ([]types.Todo, error) {
	lock := e.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	if req.Title == "" {
		return nil, types.ErrTitleEmpty
	}

	todos, err := e.store.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	todo := types.Todo{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
		CreatedAt:   now(),
		Deadline:    req.Deadline,
		ParentID:    req.ParentID,
	}

	if req.ParentID != nil {
		parent, err := e.store.Get(*req.ParentID)
		if err != nil || parent.OwnerID != ownerID {
			return nil, types.ErrParentNotFound
		}
		todo.OrderNumber = len(childrenOf(todos, req.ParentID)) + 1
		todo.Path = types.ChildPath(parent.Path, parent.ID)
	} else {
		todo.OrderNumber = len(childrenOf(todos, nil)) + 1
		todo.Path = types.RootPath(todo.OrderNumber)
	}

	if _, err := e.store.Insert(todo); err != nil {
		return nil, err
	}
	return e.Collection(ownerID)
}

// Update applies a partial update to one todo. Plain fields are written
// directly; a ParentID change that differs from the current parent is
// performed as a move, so path and order maintenance applies. Returns the
// owner's updated collection.
func (e *Engine) Update(ownerID, id int64, patch types.TodoPatch) ([]types.Todo, error) {
	lock := e.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	todo, err := e.getOwned(ownerID, id, types.ErrNotFound)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, types.ErrTitleEmpty
	}

	reparent := patch.Parent != nil && !todo.SameParent(patch.Parent.ID)
	targetParentID := (*int64)(nil)
	if reparent {
		targetParentID = patch.Parent.ID
		// Validate the move before any plain-field write so a rejected
		// re-parent leaves the record fully unchanged.
		if _, err := e.planMove(ownerID, []int64{id}, targetParentID); err != nil {
			return nil, err
		}
	}

	// Structural fields stay with the engine; drop them from the direct write.
	plain := patch
	plain.Parent = nil
	plain.Path = nil
	if !plain.IsZero() {
		if _, err := e.store.Update(id, plain); err != nil {
			return nil, err
		}
	}

	if reparent {
		if err := e.executeMove(ownerID, []int64{id}, targetParentID); err != nil {
			return nil, err
		}
	}
	return e.Collection(ownerID)
}

// Delete removes a todo and its entire descendant subtree, then restores
// contiguous numbering among the remaining siblings. Returns the owner's
// updated collection.
func (e *Engine) Delete(ownerID, id int64) ([]types.Todo, error) {
	lock := e.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	todo, err := e.getOwned(ownerID, id, types.ErrNotFound)
	if err != nil {
		return nil, err
	}

	todos, err := e.store.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	for _, d := range descendantsOf(todos, todo) {
		if err := e.store.Delete(d.ID); err != nil {
			return nil, err
		}
	}
	if err := e.store.Delete(todo.ID); err != nil {
		return nil, err
	}

	if err := e.renumberSiblings(ownerID, todo.ParentID, nil); err != nil {
		return nil, err
	}
	return e.Collection(ownerID)
}
