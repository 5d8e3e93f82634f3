// Package auth provides user accounts and bearer-token sessions for the
// HTTP boundary. It is a collaborator of the tree core, not part of it: the
// engine only ever sees the numeric owner id that a session resolves to.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// User is an account that owns a todo forest.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`

	passwordHash string
}

// Account and session errors.
var (
	ErrUsernameEmpty      = errors.New("username must not be empty")
	ErrPasswordEmpty      = errors.New("password must not be empty")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Service holds users and live sessions in memory.
type Service struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]User
	byUsername map[string]int64
	sessions   map[string]int64 // token -> user id
}

// NewService returns an empty account service. User ids start at 1.
func NewService() *Service {
	return &Service{
		nextID:     1,
		users:      make(map[int64]User),
		byUsername: make(map[string]int64),
		sessions:   make(map[string]int64),
	}
}

// Join registers a new account.
func (s *Service) Join(username, password, nickname, email string) (User, error) {
	if username == "" {
		return User{}, ErrUsernameEmpty
	}
	if password == "" {
		return User{}, ErrPasswordEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return User{}, ErrUsernameTaken
	}

	user := User{
		ID:           s.nextID,
		Username:     username,
		Nickname:     nickname,
		Email:        email,
		passwordHash: hashPassword(password),
	}
	s.nextID++
	s.users[user.ID] = user
	s.byUsername[username] = user.ID
	return user, nil
}

// Login checks the credentials and opens a session, returning the user and
// a bearer token.
func (s *Service) Login(username, password string) (User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[username]
	if !ok {
		return User{}, "", ErrInvalidCredentials
	}
	user := s.users[id]
	if user.passwordHash != hashPassword(password) {
		return User{}, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.sessions[token] = user.ID
	return user, token, nil
}

// Logout closes a session. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(token string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[token]
	if !ok {
		return User{}, ErrInvalidToken
	}
	return s.users[id], nil
}

// hashPassword returns the hex SHA-256 digest of a password.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
