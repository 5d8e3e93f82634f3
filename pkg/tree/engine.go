// Package tree implements the tree operations engine: create, update,
// delete-with-cascade, sibling reorder, and cross-parent move over the flat
// todo collection held by a types.Store.
//
// Every public operation is atomic from the caller's point of view: all
// preconditions are checked against a snapshot before the first store write,
// so a failed operation never leaves partial changes behind. Writes are
// serialized per owner with a mutex map; reads of other owners proceed
// concurrently.
//
// The engine is the sole writer of the structural fields (ParentID, Path,
// OrderNumber). After every committed operation three invariants hold for
// the owner's records: no record is its own ancestor, every sibling set is
// numbered contiguously from 1, and every stored path matches the parent's
// path extended with the parent's id (or the record's own order number for
// roots).
package tree

import (
	"sort"
	"sync"
	"time"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// Engine performs all structural mutations against a Store.
type Engine struct {
	store types.Store

	mu     sync.Mutex
	owners map[int64]*sync.Mutex
}

// New returns an engine backed by the given store.
func New(store types.Store) *Engine {
	return &Engine{
		store:  store,
		owners: make(map[int64]*sync.Mutex),
	}
}

// ownerLock returns the mutex serializing writes for one owner.
func (e *Engine) ownerLock(ownerID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.owners[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		e.owners[ownerID] = lock
	}
	return lock
}

// Collection returns the owner's full todo collection in insertion order.
// This is the authoritative read every mutating operation also returns.
func (e *Engine) Collection(ownerID int64) ([]types.Todo, error) {
	return e.store.ListByOwner(ownerID)
}

// childrenOf returns the todos sharing the given parent, sorted by order
// number. A nil parentID selects the root level.
func childrenOf(todos []types.Todo, parentID *int64) []types.Todo {
	var children []types.Todo
	for _, t := range todos {
		if t.SameParent(parentID) {
			children = append(children, t)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].OrderNumber < children[j].OrderNumber
	})
	return children
}

// descendantsOf returns every todo inside the subtree below node, matched by
// path prefix. The node itself is not included.
func descendantsOf(todos []types.Todo, node types.Todo) []types.Todo {
	var descendants []types.Todo
	for _, t := range todos {
		if t.ID == node.ID {
			continue
		}
		if types.IsAncestorPath(node.Path, node.ID, t.Path) {
			descendants = append(descendants, t)
		}
	}
	return descendants
}

// getOwned fetches a todo and checks it belongs to the acting owner.
// A missing record maps to notFoundErr; a record held by another owner maps
// to ErrUnauthorized.
func (e *Engine) getOwned(ownerID, id int64, notFoundErr error) (types.Todo, error) {
	todo, err := e.store.Get(id)
	if err != nil {
		if err == types.ErrNotFound {
			return types.Todo{}, notFoundErr
		}
		return types.Todo{}, err
	}
	if todo.OwnerID != ownerID {
		return types.Todo{}, types.ErrUnauthorized
	}
	return todo, nil
}

// rewriteSubtree rebases the stored paths of every descendant of node from
// oldBase to newBase. The node's own record is untouched; callers update it
// themselves. todos must be a fresh snapshot taken before the node's path
// was rewritten.
func (e *Engine) rewriteSubtree(todos []types.Todo, node types.Todo, oldBase, newBase string) error {
	for _, d := range todos {
		if d.ID == node.ID {
			continue
		}
		if !types.IsAncestorPath(oldBase, node.ID, d.Path) {
			continue
		}
		newPath := types.RebasePath(d.Path, oldBase, newBase)
		if _, err := e.store.Update(d.ID, types.TodoPatch{Path: &newPath}); err != nil {
			return err
		}
	}
	return nil
}

// renumberSiblings re-reads the owner's collection and assigns contiguous
// order numbers 1..N to the siblings under parentID, preserving their
// relative order and skipping any ids in exclude. Roots whose order number
// changes get their path rewritten and the rewrite cascaded through their
// subtree.
func (e *Engine) renumberSiblings(ownerID int64, parentID *int64, exclude map[int64]bool) error {
	todos, err := e.store.ListByOwner(ownerID)
	if err != nil {
		return err
	}

	siblings := childrenOf(todos, parentID)
	if len(exclude) > 0 {
		kept := siblings[:0]
		for _, s := range siblings {
			if !exclude[s.ID] {
				kept = append(kept, s)
			}
		}
		siblings = kept
	}

	for i, sibling := range siblings {
		want := i + 1
		if sibling.OrderNumber == want {
			continue
		}

		patch := types.TodoPatch{OrderNumber: &want}
		if sibling.IsRoot() {
			newPath := types.RootPath(want)
			patch.Path = &newPath
			if err := e.rewriteSubtree(todos, sibling, sibling.Path, newPath); err != nil {
				return err
			}
		}
		if _, err := e.store.Update(sibling.ID, patch); err != nil {
			return err
		}
	}
	return nil
}

// now returns the creation timestamp for new records.
func now() time.Time {
	return time.Now().UTC()
}
