package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store persists todos in a SQLite database under the data directory.
// Timestamps are stored as RFC 3339 strings; parent_id is NULL for roots.
type Store struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
}

// Open creates the data directory if needed, opens (or creates) stride.db
// inside it, and applies the schema.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "stride.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range []string{createTodos, createOwnerIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Insert persists a new todo and returns it with the assigned row id.
func (s *Store) Insert(todo types.Todo) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.Todo{}, types.ErrStoreClosed
	}

	res, err := s.db.Exec(
		`INSERT INTO todos (title, description, owner_id, completed, created_at, deadline, parent_id, path, order_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.Title, todo.Description, todo.OwnerID, boolToInt(todo.Completed),
		todo.CreatedAt.UTC().Format(time.RFC3339Nano),
		todo.Deadline.UTC().Format(time.RFC3339Nano),
		nullableID(todo.ParentID), todo.Path, todo.OrderNumber,
	)
	if err != nil {
		return types.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.Todo{}, fmt.Errorf("reading inserted id: %w", err)
	}
	todo.ID = id
	return todo, nil
}

// Get retrieves a todo by id.
func (s *Store) Get(id int64) (types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.Todo{}, types.ErrStoreClosed
	}

	row := s.db.QueryRow(
		`SELECT id, title, description, owner_id, completed, created_at, deadline, parent_id, path, order_number
		 FROM todos WHERE id = ?`, id)
	todo, err := hydrateTodo(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Todo{}, types.ErrNotFound
		}
		return types.Todo{}, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return todo, nil
}

// ListByOwner returns the owner's todos in insertion (id) order.
func (s *Store) ListByOwner(ownerID int64) ([]types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}

	rows, err := s.db.Query(
		`SELECT id, title, description, owner_id, completed, created_at, deadline, parent_id, path, order_number
		 FROM todos WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing todos for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	todos := []types.Todo{}
	for rows.Next() {
		todo, err := hydrateTodo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todo rows: %w", err)
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

	var sets []string
	var args []any
	addSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Completed != nil {
		addSet("completed", boolToInt(*patch.Completed))
	}
	if patch.Deadline != nil {
		addSet("deadline", patch.Deadline.UTC().Format(time.RFC3339Nano))
	}
	if patch.OrderNumber != nil {
		addSet("order_number", *patch.OrderNumber)
	}
	if patch.Path != nil {
		addSet("path", *patch.Path)
	}
	if patch.Parent != nil {
		addSet("parent_id", nullableID(patch.Parent.ID))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.Exec("UPDATE todos SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return types.Todo{}, fmt.Errorf("updating todo %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return types.Todo{}, fmt.Errorf("reading affected rows: %w", err)
		}
		if affected == 0 {
			return types.Todo{}, types.ErrNotFound
		}
	}

	row := s.db.QueryRow(
		`SELECT id, title, description, owner_id, completed, created_at, deadline, parent_id, path, order_number
		 FROM todos WHERE id = ?`, id)
	todo, err := hydrateTodo(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Todo{}, types.ErrNotFound
		}
		return types.Todo{}, fmt.Errorf("rereading todo %d: %w", id, err)
	}
	return todo, nil
}

// Delete removes a single row. No cascade.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}

	res, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// hydrateTodo scans one row into a Todo.
func hydrateTodo(scan func(dest ...any) error) (types.Todo, error) {
	var (
		todo      types.Todo
		completed int
		createdAt string
		deadline  string
		parentID  sql.NullInt64
	)
	err := scan(&todo.ID, &todo.Title, &todo.Description, &todo.OwnerID,
		&completed, &createdAt, &deadline, &parentID, &todo.Path, &todo.OrderNumber)
	if err != nil {
		return types.Todo{}, err
	}

	todo.Completed = completed != 0
	if todo.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return types.Todo{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if todo.Deadline, err = time.Parse(time.RFC3339Nano, deadline); err != nil {
		return types.Todo{}, fmt.Errorf("parsing deadline: %w", err)
	}
	if parentID.Valid {
		todo.ParentID = &parentID.Int64
	}
	return todo, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
