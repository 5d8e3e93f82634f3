package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stride/pkg/tree"
	"github.com/mesh-intelligence/stride/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(ownerID int64, title string) types.Todo {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return types.Todo{
		Title:       title,
		Description: "desc",
		OwnerID:     ownerID,
		CreatedAt:   now,
		Deadline:    now.Add(48 * time.Hour),
		Path:        "1",
		OrderNumber: 1,
	}
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	inserted, err := s.Insert(sample(1, "persisted"))
	require.NoError(t, err)
	require.NotZero(t, inserted.ID)

	got, err := s.Get(inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted.Title, got.Title)
	assert.Equal(t, inserted.OwnerID, got.OwnerID)
	assert.True(t, inserted.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, inserted.Deadline.Equal(got.Deadline))
	assert.Nil(t, got.ParentID)
	assert.Equal(t, "1", got.Path)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(42)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListByOwnerIsInsertionOrdered(t *testing.T) {
	s := openTestStore(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Insert(sample(7, title))
		require.NoError(t, err)
	}
	_, err := s.Insert(sample(8, "someone else"))
	require.NoError(t, err)

	todos, err := s.ListByOwner(7)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "a", todos[0].Title)
	assert.Equal(t, "c", todos[2].Title)
}

func TestUpdatePatchSemantics(t *testing.T) {
	s := openTestStore(t)
	inserted, err := s.Insert(sample(1, "before"))
	require.NoError(t, err)

	completed := true
	path := "2"
	updated, err := s.Update(inserted.ID, types.TodoPatch{Completed: &completed, Path: &path})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "2", updated.Path)
	assert.Equal(t, "before", updated.Title)

	// Parent tri-state: set, then clear.
	other, err := s.Insert(sample(1, "parent"))
	require.NoError(t, err)
	updated, err = s.Update(inserted.ID, types.TodoPatch{Parent: &types.ParentPatch{ID: &other.ID}})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, other.ID, *updated.ParentID)

	updated, err = s.Update(inserted.ID, types.TodoPatch{Parent: &types.ParentPatch{}})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)

	_, err = s.Update(999, types.TodoPatch{Completed: &completed})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteRow(t *testing.T) {
	s := openTestStore(t)
	inserted, err := s.Insert(sample(1, "doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(inserted.ID))
	assert.ErrorIs(t, s.Delete(inserted.ID), types.ErrNotFound)
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Insert(sample(1, "late"))
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	_, err = s.ListByOwner(1)
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

// TestEngineRunsAgainstSQLite exercises the tree engine end to end on the
// persistent backend: the engine must behave identically on either store.
func TestEngineRunsAgainstSQLite(t *testing.T) {
	s := openTestStore(t)
	e := tree.New(s)

	todos, err := e.Create(1, tree.CreateRequest{Title: "Project", Deadline: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	project := todos[0]
	assert.Equal(t, "1", project.Path)

	todos, err = e.Create(1, tree.CreateRequest{Title: "Design", Deadline: time.Now().Add(time.Hour), ParentID: &project.ID})
	require.NoError(t, err)
	require.Len(t, todos, 2)

	var design types.Todo
	for _, todo := range todos {
		if todo.Title == "Design" {
			design = todo
		}
	}
	assert.Equal(t, types.ChildPath(project.Path, project.ID), design.Path)

	todos, err = e.Move(1, []int64{design.ID}, nil)
	require.NoError(t, err)
	for _, todo := range todos {
		if todo.ID == design.ID {
			assert.Nil(t, todo.ParentID)
			assert.Equal(t, "2", todo.Path)
		}
	}
}
