package tree

import (
	"strconv"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// Reorder permutes a complete sibling set into the order given by todoIDs.
// Membership never changes: the ids must be exactly the todos sharing
// parentID, each owned by the caller. Non-root reorders only rewrite order
// numbers; root reorders also rewrite the roots' paths, which embed the
// order number, and cascade the rewrite through their subtrees. Returns the
// owner's updated collection.
func (e *Engine) Reorder(ownerID int64, todoIDs []int64, parentID *int64) ([]types.Todo, error) {
	lock := e.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	todos, err := e.store.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(todoIDs))
	moved := make([]types.Todo, 0, len(todoIDs))
	for _, id := range todoIDs {
		if seen[id] {
			return nil, types.ErrInvalidSiblingSet
		}
		seen[id] = true

		todo, err := e.getOwned(ownerID, id, types.ErrNotFound)
		if err != nil {
			return nil, err
		}
		if !todo.SameParent(parentID) {
			return nil, types.ErrInvalidSiblingSet
		}
		moved = append(moved, todo)
	}

	// A permutation covers the whole sibling set, or the numbering would
	// end up with duplicates.
	if len(moved) != len(childrenOf(todos, parentID)) {
		return nil, types.ErrInvalidSiblingSet
	}

	for i, todo := range moved {
		want := i + 1
		if todo.OrderNumber == want {
			continue
		}

		patch := types.TodoPatch{OrderNumber: &want}
		if todo.IsRoot() {
			newPath := types.RootPath(want)
			patch.Path = &newPath
			if err := e.rewriteSubtree(todos, todo, todo.Path, newPath); err != nil {
				return nil, err
			}
		}
		if _, err := e.store.Update(todo.ID, patch); err != nil {
			return nil, err
		}
	}
	return e.Collection(ownerID)
}

// Move re-parents the given todos beneath targetParentID (nil promotes them
// to roots). Surviving target siblings keep their relative order ahead of
// the moved todos, every moved subtree has its paths rebased, and the
// source sibling sets are renumbered back to contiguity. Returns the
// owner's updated collection.
func (e *Engine) Move(ownerID int64, todoIDs []int64, targetParentID *int64) ([]types.Todo, error) {
	lock := e.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.executeMove(ownerID, todoIDs, targetParentID); err != nil {
		return nil, err
	}
	return e.Collection(ownerID)
}

// movePlan holds the validated inputs of a move: the todos to relocate in
// request order (pre-move state) and the resolved target parent.
type movePlan struct {
	moved  []types.Todo
	target *types.Todo // nil when moving to the root level
}

// planMove validates a move against a snapshot without writing anything:
// target parent existence and ownership, moved todo existence and
// ownership, and the cycle rules (no self-parent, no move beneath an own
// descendant).
func (e *Engine) planMove(ownerID int64, todoIDs []int64, targetParentID *int64) (*movePlan, error) {
	plan := &movePlan{}

	if targetParentID != nil {
		target, err := e.getOwned(ownerID, *targetParentID, types.ErrTargetParentNotFound)
		if err != nil {
			return nil, err
		}
		plan.target = &target
	}

	seen := make(map[int64]bool, len(todoIDs))
	for _, id := range todoIDs {
		if seen[id] {
			return nil, types.ErrInvalidMove
		}
		seen[id] = true

		todo, err := e.getOwned(ownerID, id, types.ErrNotFound)
		if err != nil {
			return nil, err
		}
		if plan.target != nil {
			if id == plan.target.ID {
				return nil, types.ErrInvalidMove
			}
			if types.IsAncestorPath(todo.Path, todo.ID, plan.target.Path) {
				return nil, types.ErrInvalidMove
			}
		}
		plan.moved = append(plan.moved, todo)
	}
	return plan, nil
}

// executeMove validates and performs a move. Callers hold the owner lock.
func (e *Engine) executeMove(ownerID int64, todoIDs []int64, targetParentID *int64) error {
	plan, err := e.planMove(ownerID, todoIDs, targetParentID)
	if err != nil {
		return err
	}

	todos, err := e.store.ListByOwner(ownerID)
	if err != nil {
		return err
	}

	movedSet := make(map[int64]bool, len(plan.moved))
	for _, m := range plan.moved {
		movedSet[m.ID] = true
	}

	// Surviving target siblings close ranks at 1..E before the moved todos
	// are appended after them.
	survivors := 0
	for _, s := range childrenOf(todos, targetParentID) {
		if !movedSet[s.ID] {
			survivors++
		}
	}
	if err := e.renumberSiblings(ownerID, targetParentID, movedSet); err != nil {
		return err
	}

	for i, m := range plan.moved {
		// Re-read: an earlier iteration may have rebased this todo's path
		// when it sits inside another moved subtree.
		current, err := e.store.Get(m.ID)
		if err != nil {
			return err
		}

		newOrder := survivors + i + 1
		var newPath string
		if plan.target != nil {
			newPath = types.ChildPath(plan.target.Path, plan.target.ID)
		} else {
			newPath = types.RootPath(newOrder)
		}

		snapshot, err := e.store.ListByOwner(ownerID)
		if err != nil {
			return err
		}

		patch := types.TodoPatch{
			Parent:      &types.ParentPatch{ID: targetParentID},
			OrderNumber: &newOrder,
			Path:        &newPath,
		}
		if _, err := e.store.Update(current.ID, patch); err != nil {
			return err
		}
		if err := e.rewriteSubtree(snapshot, current, current.Path, newPath); err != nil {
			return err
		}
	}

	// The vacated sibling sets are renumbered last: when a moved todo was a
	// root, compacting the root set rewrites root paths and the cascade
	// reaches the relocated subtrees as well.
	renumbered := map[string]bool{siblingKey(targetParentID): true}
	for _, m := range plan.moved {
		key := siblingKey(m.ParentID)
		if renumbered[key] {
			continue
		}
		renumbered[key] = true
		if err := e.renumberSiblings(ownerID, m.ParentID, nil); err != nil {
			return err
		}
	}
	return nil
}

// siblingKey identifies a sibling set by its parent, with the root level as
// its own key.
func siblingKey(parentID *int64) string {
	if parentID == nil {
		return "root"
	}
	return strconv.FormatInt(*parentID, 10)
}
