// Package memory implements the in-memory Store backend. It is the default
// backend: a map of records keyed by id, a secondary index of ids per owner,
// and an instance-owned id counter. All methods hand out copies, so callers
// never observe a half-applied mutation through a previously returned slice.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store holds one process's todo records.
type Store struct {
	mu      sync.RWMutex
	closed  bool
	nextID  int64
	todos   map[int64]types.Todo
	byOwner map[int64][]int64 // insertion-ordered ids per owner
}

// NewStore returns an empty store. Ids start at 1.
func NewStore() *Store {
	return &Store{
		nextID:  1,
		todos:   make(map[int64]types.Todo),
		byOwner: make(map[int64][]int64),
	}
}

// Insert persists a new todo under a freshly assigned id.
func (s *Store) Insert(todo types.Todo) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.Todo{}, types.ErrStoreClosed
	}

	todo.ID = s.nextID
	s.nextID++

	s.todos[todo.ID] = todo
	s.byOwner[todo.OwnerID] = append(s.byOwner[todo.OwnerID], todo.ID)
	return todo, nil
}

// Get retrieves a todo by id.
func (s *Store) Get(id int64) (types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.Todo{}, types.ErrStoreClosed
	}

	todo, ok := s.todos[id]
	if !ok {
		return types.Todo{}, types.ErrNotFound
	}
	return todo, nil
}

// ListByOwner returns the owner's todos in insertion order.
func (s *Store) ListByOwner(ownerID int64) ([]types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}

	ids := s.byOwner[ownerID]
	todos := make([]types.Todo, 0, len(ids))
	for _, id := range ids {
		if todo, ok := s.todos[id]; ok {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

// Update overwrites only the fields set on the patch.
func (s *Store) Update(id int64, patch types.TodoPatch) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.Todo{}, types.ErrStoreClosed
	}

	todo, ok := s.todos[id]
	if !ok {
		return types.Todo{}, types.ErrNotFound
	}

	applyPatch(&todo, patch)
	s.todos[id] = todo
	return todo, nil
}

// Delete removes a single todo. No cascade.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}

	todo, ok := s.todos[id]
	if !ok {
		return types.ErrNotFound
	}

	delete(s.todos, id)

	ids := s.byOwner[todo.OwnerID]
	for i, ownedID := range ids {
		if ownedID == id {
			s.byOwner[todo.OwnerID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// Close marks the store closed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// applyPatch copies the set fields of patch onto the todo.
func applyPatch(todo *types.Todo, patch types.TodoPatch) {
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Deadline != nil {
		todo.Deadline = *patch.Deadline
	}
	if patch.OrderNumber != nil {
		todo.OrderNumber = *patch.OrderNumber
	}
	if patch.Path != nil {
		todo.Path = *patch.Path
	}
	if patch.Parent != nil {
		todo.ParentID = patch.Parent.ID
	}
}
