// Package sqlite implements the persistent Store backend on SQLite. It is a
// drop-in replacement for the in-memory backend: same interface, same
// semantics, selected through Config.
package sqlite

// Schema DDL.
const (
	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    owner_id INTEGER NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    deadline TEXT NOT NULL,
    parent_id INTEGER,
    path TEXT NOT NULL,
    order_number INTEGER NOT NULL
);`

	createOwnerIndex = `CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);`
)
