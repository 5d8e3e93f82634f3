// Package view derives UI-facing shapes from a todo collection: the list of
// Goals, per-goal subtrees, and completion rollups. Everything here is a
// pure read over the records it is handed; the package never mutates a
// store and never returns domain errors. Inputs may be filtered subsets, so
// a dangling parent reference is treated as "orphan is its own root" rather
// than failing.
package view

import (
	"math"

	"github.com/mesh-intelligence/stride/pkg/types"
)

// Goal is the tab-level projection of a root todo.
type Goal struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Display defaults until goals carry their own color and icon fields.
const (
	DefaultGoalColor = "#EF4444"
	DefaultGoalIcon  = "ri-flag-line"
)

// Goals projects the root todos, in input order, onto Goal values.
func Goals(todos []types.Todo) []Goal {
	goals := []Goal{}
	for _, todo := range todos {
		if !todo.IsRoot() {
			continue
		}
		goals = append(goals, Goal{
			ID:    todo.ID,
			Title: todo.Title,
			Color: DefaultGoalColor,
			Icon:  DefaultGoalIcon,
		})
	}
	return goals
}

// DirectChildren returns the todos one level beneath the given node, in
// input order.
func DirectChildren(todos []types.Todo, parentID int64) []types.Todo {
	children := []types.Todo{}
	for _, todo := range todos {
		if todo.ParentID != nil && *todo.ParentID == parentID {
			children = append(children, todo)
		}
	}
	return children
}

// RootGoalID resolves the goal a record belongs to: itself when it is a
// root, otherwise the root whose order number matches the leading path
// segment. When the working set does not contain that root (a filtered
// subset, or a malformed path), the record counts as its own root.
func RootGoalID(todos []types.Todo, todo types.Todo) int64 {
	if todo.IsRoot() {
		return todo.ID
	}
	seg, ok := types.RootSegment(todo.Path)
	if !ok {
		return todo.ID
	}
	for _, candidate := range todos {
		if candidate.IsRoot() && candidate.OwnerID == todo.OwnerID && candidate.OrderNumber == seg {
			return candidate.ID
		}
	}
	return todo.ID
}

// AllDescendants returns every non-root record in the goal's subtree, at
// any depth, in input order. The goal node itself is excluded.
func AllDescendants(todos []types.Todo, goalID int64) []types.Todo {
	descendants := []types.Todo{}
	for _, todo := range todos {
		if todo.IsRoot() {
			continue
		}
		if RootGoalID(todos, todo) == goalID {
			descendants = append(descendants, todo)
		}
	}
	return descendants
}

// CompletionPercent reports the share of a node's direct children that are
// completed, rounded to the nearest integer. Deeper descendants do not
// count, and a childless node reports zero.
func CompletionPercent(todos []types.Todo, nodeID int64) int {
	children := DirectChildren(todos, nodeID)
	if len(children) == 0 {
		return 0
	}

	completed := 0
	for _, child := range children {
		if child.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(children))))
}
