package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stride/pkg/types"
)

func int64p(v int64) *int64 { return &v }

// fixture builds a two-goal forest:
//
//	1 Work  (order 1, path "1")
//	  3 Report   (path "1.1", completed)
//	    5 Outline (path "1.1.3")
//	  4 Slides   (path "1.1")
//	2 Home  (order 2, path "2")
//	  6 Garden   (path "2.2", completed)
func fixture() []types.Todo {
	return []types.Todo{
		{ID: 1, Title: "Work", OwnerID: 1, Path: "1", OrderNumber: 1},
		{ID: 2, Title: "Home", OwnerID: 1, Path: "2", OrderNumber: 2},
		{ID: 3, Title: "Report", OwnerID: 1, ParentID: int64p(1), Path: "1.1", OrderNumber: 1, Completed: true},
		{ID: 4, Title: "Slides", OwnerID: 1, ParentID: int64p(1), Path: "1.1", OrderNumber: 2},
		{ID: 5, Title: "Outline", OwnerID: 1, ParentID: int64p(3), Path: "1.1.3", OrderNumber: 1},
		{ID: 6, Title: "Garden", OwnerID: 1, ParentID: int64p(2), Path: "2.2", OrderNumber: 1, Completed: true},
	}
}

func TestGoals(t *testing.T) {
	goals := Goals(fixture())

	require.Len(t, goals, 2)
	assert.Equal(t, int64(1), goals[0].ID)
	assert.Equal(t, "Work", goals[0].Title)
	assert.Equal(t, DefaultGoalColor, goals[0].Color)
	assert.Equal(t, DefaultGoalIcon, goals[0].Icon)
	assert.Equal(t, int64(2), goals[1].ID)

	assert.Empty(t, Goals(nil))
}

func TestDirectChildren(t *testing.T) {
	children := DirectChildren(fixture(), 1)

	require.Len(t, children, 2)
	assert.Equal(t, "Report", children[0].Title)
	assert.Equal(t, "Slides", children[1].Title)

	assert.Empty(t, DirectChildren(fixture(), 6))
}

func TestRootGoalID(t *testing.T) {
	todos := fixture()

	tests := []struct {
		name string
		todo types.Todo
		want int64
	}{
		{name: "root is its own goal", todo: todos[0], want: 1},
		{name: "direct child", todo: todos[2], want: 1},
		{name: "grandchild", todo: todos[4], want: 1},
		{name: "second goal subtree", todo: todos[5], want: 2},
		{
			name: "orphan with no matching root becomes its own root",
			todo: types.Todo{ID: 9, OwnerID: 1, ParentID: int64p(99), Path: "7.99"},
			want: 9,
		},
		{
			name: "malformed path becomes its own root",
			todo: types.Todo{ID: 9, OwnerID: 1, ParentID: int64p(99), Path: ""},
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RootGoalID(todos, tt.todo))
		})
	}
}

func TestAllDescendants(t *testing.T) {
	descendants := AllDescendants(fixture(), 1)

	require.Len(t, descendants, 3)
	titles := []string{descendants[0].Title, descendants[1].Title, descendants[2].Title}
	assert.Equal(t, []string{"Report", "Slides", "Outline"}, titles)

	home := AllDescendants(fixture(), 2)
	require.Len(t, home, 1)
	assert.Equal(t, "Garden", home[0].Title)
}

func TestCompletionPercent(t *testing.T) {
	todos := fixture()

	tests := []struct {
		name   string
		nodeID int64
		want   int
	}{
		{name: "half completed rounds to 50", nodeID: 1, want: 50},
		{name: "single completed child", nodeID: 2, want: 100},
		{name: "incomplete only", nodeID: 3, want: 0},
		{name: "childless node", nodeID: 6, want: 0},
		{name: "unknown node", nodeID: 99, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercent(todos, tt.nodeID))
		})
	}
}

func TestCompletionPercentRounding(t *testing.T) {
	todos := []types.Todo{
		{ID: 1, Path: "1", OrderNumber: 1},
		{ID: 2, ParentID: int64p(1), Path: "1.1", Completed: true},
		{ID: 3, ParentID: int64p(1), Path: "1.1"},
		{ID: 4, ParentID: int64p(1), Path: "1.1"},
	}
	// 1 of 3 completed: 33.33 rounds down.
	assert.Equal(t, 33, CompletionPercent(todos, 1))

	todos[2].Completed = true
	// 2 of 3: 66.67 rounds up.
	assert.Equal(t, 67, CompletionPercent(todos, 1))
}
