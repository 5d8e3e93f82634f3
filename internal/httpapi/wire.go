package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/pkg/types"
)

// Request bodies. Fields follow the wire schema: parentId is null or an id,
// dates are ISO 8601 strings.
type joinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type createTodoRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	ParentID    *int64    `json:"parentId"`
}

// updateTodoRequest keeps parentId raw so an absent key, an explicit null,
// and an id value stay distinguishable.
type updateTodoRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	IsCompleted *bool           `json:"isCompleted"`
	Deadline    *time.Time      `json:"deadline"`
	OrderNumber *int            `json:"orderNumber"`
	ParentID    json.RawMessage `json:"parentId"`
}

// patch converts the request into a store patch.
func (r updateTodoRequest) patch() (types.TodoPatch, error) {
	patch := types.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.IsCompleted,
		Deadline:    r.Deadline,
		OrderNumber: r.OrderNumber,
	}

	if len(r.ParentID) > 0 {
		if string(r.ParentID) == "null" {
			patch.Parent = &types.ParentPatch{}
		} else {
			var id int64
			if err := json.Unmarshal(r.ParentID, &id); err != nil {
				return types.TodoPatch{}, fmt.Errorf("parentId must be null or an id: %w", err)
			}
			patch.Parent = &types.ParentPatch{ID: &id}
		}
	}
	return patch, nil
}

type reorderRequest struct {
	TodoIDs  []int64 `json:"todoIds"`
	ParentID *int64  `json:"parentId"`
}

type moveRequest struct {
	TodoIDs  []int64 `json:"todoIds"`
	ParentID *int64  `json:"parentId"`
}

type progressResponse struct {
	ID      int64 `json:"id"`
	Percent int   `json:"percent"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// statusForError maps the core's sentinel errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrParentNotFound),
		errors.Is(err, types.ErrTargetParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidMove),
		errors.Is(err, types.ErrInvalidSiblingSet),
		errors.Is(err, types.ErrTitleEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeError(w, status, message)
}

// decodeBody parses a JSON request body into v, rejecting unparseable input.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
