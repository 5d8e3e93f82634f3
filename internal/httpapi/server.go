// Package httpapi exposes the tree engine, the view projection, and the
// account service over REST. Handlers translate between the wire schema and
// the strongly typed engine operations; no tree logic lives here.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/pkg/tree"
)

// Server wires the collaborators behind the HTTP surface.
type Server struct {
	engine   *tree.Engine
	accounts *auth.Service
	logger   *log.Logger
}

// NewServer returns a server over the given engine and account service.
func NewServer(engine *tree.Engine, accounts *auth.Service, logger *log.Logger) *Server {
	return &Server{engine: engine, accounts: accounts, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/join", s.handleJoin)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	mux.HandleFunc("GET /todo/me", s.withUser(s.handleListTodos))
	mux.HandleFunc("POST /todo", s.withUser(s.handleCreateTodo))
	mux.HandleFunc("PATCH /todo/reorder", s.withUser(s.handleReorder))
	mux.HandleFunc("PATCH /todo/move", s.withUser(s.handleMove))
	mux.HandleFunc("PATCH /todo/{id}", s.withUser(s.handleUpdateTodo))
	mux.HandleFunc("DELETE /todo/{id}", s.withUser(s.handleDeleteTodo))

	mux.HandleFunc("GET /goal", s.withUser(s.handleGoals))
	mux.HandleFunc("GET /goal/{id}/todo", s.withUser(s.handleGoalTodos))
	mux.HandleFunc("GET /goal/{id}/progress", s.withUser(s.handleProgress))

	return s.logRequests(mux)
}

// userHandler is a handler that runs on behalf of an authenticated user.
type userHandler func(w http.ResponseWriter, r *http.Request, user auth.User)

// withUser resolves the bearer token before running the handler.
func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := s.accounts.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		next(w, r, user)
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
