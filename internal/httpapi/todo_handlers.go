package httpapi

import (
	"net/http"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/pkg/tree"
	"github.com/mesh-intelligence/stride/pkg/view"
)

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request, user auth.User) {
	todos, err := s.engine.Collection(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request, user auth.User) {
	var req createTodoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	todos, err := s.engine.Create(user.ID, tree.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		ParentID:    req.ParentID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todos)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request, user auth.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req updateTodoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	todos, err := s.engine.Update(user.ID, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request, user auth.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	todos, err := s.engine.Delete(user.ID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request, user auth.User) {
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.TodoIDs) == 0 {
		writeError(w, http.StatusBadRequest, "todoIds array is required")
		return
	}

	todos, err := s.engine.Reorder(user.ID, req.TodoIDs, req.ParentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, user auth.User) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.TodoIDs) == 0 {
		writeError(w, http.StatusBadRequest, "todoIds array is required")
		return
	}

	todos, err := s.engine.Move(user.ID, req.TodoIDs, req.ParentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request, user auth.User) {
	todos, err := s.engine.Collection(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Goals(todos))
}

func (s *Server) handleGoalTodos(w http.ResponseWriter, r *http.Request, user auth.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	todos, err := s.engine.Collection(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.AllDescendants(todos, id))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request, user auth.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	todos, err := s.engine.Collection(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{ID: id, Percent: view.CompletionPercent(todos, id)})
}
