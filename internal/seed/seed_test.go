package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/internal/memory"
	"github.com/mesh-intelligence/stride/pkg/tree"
	"github.com/mesh-intelligence/stride/pkg/view"
)

func TestRun(t *testing.T) {
	engine := tree.New(memory.NewStore())
	accounts := auth.NewService()

	require.NoError(t, Run(engine, accounts))

	user, token, err := accounts.Login(DemoUsername, DemoPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	todos, err := engine.Collection(user.ID)
	require.NoError(t, err)
	assert.Len(t, todos, 5)

	goals := view.Goals(todos)
	require.Len(t, goals, 2)
	assert.Equal(t, "Finish the project", goals[0].Title)

	project := goals[0].ID
	assert.Equal(t, 33, view.CompletionPercent(todos, project))

	completed := 0
	for _, todo := range todos {
		if todo.Completed {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}

func TestRunTwiceFails(t *testing.T) {
	engine := tree.New(memory.NewStore())
	accounts := auth.NewService()

	require.NoError(t, Run(engine, accounts))
	assert.ErrorIs(t, Run(engine, accounts), auth.ErrUsernameTaken)
}

func TestRunSkipsSeededStore(t *testing.T) {
	engine := tree.New(memory.NewStore())
	require.NoError(t, Run(engine, auth.NewService()))

	// A fresh account service simulates a server restart over a persistent
	// store: the account comes back, the todos are not duplicated.
	accounts := auth.NewService()
	require.NoError(t, Run(engine, accounts))

	user, _, err := accounts.Login(DemoUsername, DemoPassword)
	require.NoError(t, err)
	todos, err := engine.Collection(user.ID)
	require.NoError(t, err)
	assert.Len(t, todos, 5)
}
