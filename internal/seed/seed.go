// Package seed populates a fresh store with a demo account and a small
// goal tree so the server is explorable immediately after first start.
package seed

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/pkg/tree"
	"github.com/mesh-intelligence/stride/pkg/types"
)

// Demo account credentials created by Run.
const (
	DemoUsername = "demo"
	DemoPassword = "password123"
)

// Run creates the demo user and its sample todos. When the store already
// holds todos for the demo user, from an earlier seeded run against a
// persistent backend, only the account is recreated.
func Run(engine *tree.Engine, accounts *auth.Service) error {
	user, err := accounts.Join(DemoUsername, DemoPassword, "Demo User", "demo@example.com")
	if err != nil {
		return fmt.Errorf("creating demo user: %w", err)
	}

	existing, err := engine.Collection(user.ID)
	if err != nil {
		return fmt.Errorf("checking for seeded todos: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	project, err := createTodo(engine, user.ID, tree.CreateRequest{
		Title:       "Finish the project",
		Description: "Ship the first release",
		Deadline:    nextWeek,
	})
	if err != nil {
		return err
	}

	design, err := createTodo(engine, user.ID, tree.CreateRequest{
		Title:       "UI design",
		Description: "Design the main screens",
		Deadline:    tomorrow,
		ParentID:    &project.ID,
	})
	if err != nil {
		return err
	}
	// The design task ships pre-completed so progress rollups have something
	// to show out of the box.
	completed := true
	if _, err := engine.Update(user.ID, design.ID, types.TodoPatch{Completed: &completed}); err != nil {
		return fmt.Errorf("completing seed todo: %w", err)
	}

	if _, err := createTodo(engine, user.ID, tree.CreateRequest{
		Title:       "API integration",
		Description: "Wire the client to the backend",
		Deadline:    tomorrow,
		ParentID:    &project.ID,
	}); err != nil {
		return err
	}

	if _, err := createTodo(engine, user.ID, tree.CreateRequest{
		Title:       "Write tests",
		Description: "Unit and integration coverage",
		Deadline:    nextWeek,
		ParentID:    &project.ID,
	}); err != nil {
		return err
	}

	if _, err := createTodo(engine, user.ID, tree.CreateRequest{
		Title:       "Study",
		Description: "One hour every day",
		Deadline:    nextWeek,
	}); err != nil {
		return err
	}

	return nil
}

// createTodo runs a create and returns the record it added, which is the
// highest id in the resulting collection.
func createTodo(engine *tree.Engine, ownerID int64, req tree.CreateRequest) (types.Todo, error) {
	todos, err := engine.Create(ownerID, req)
	if err != nil {
		return types.Todo{}, fmt.Errorf("seeding %q: %w", req.Title, err)
	}

	newest := todos[0]
	for _, todo := range todos {
		if todo.ID > newest.ID {
			newest = todo
		}
	}
	return newest, nil
}
