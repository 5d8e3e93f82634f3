package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestTodoValidate(t *testing.T) {
	tests := []struct {
		name    string
		todo    Todo
		wantErr error
	}{
		{name: "valid title", todo: Todo{Title: "write report"}},
		{name: "empty title rejected", todo: Todo{Title: ""}, wantErr: ErrTitleEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.todo.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTodoIsRoot(t *testing.T) {
	assert.True(t, Todo{}.IsRoot())
	assert.False(t, Todo{ParentID: int64p(3)}.IsRoot())
}

func TestTodoSameParent(t *testing.T) {
	tests := []struct {
		name     string
		todo     Todo
		parentID *int64
		want     bool
	}{
		{name: "both root", todo: Todo{}, parentID: nil, want: true},
		{name: "same parent id", todo: Todo{ParentID: int64p(3)}, parentID: int64p(3), want: true},
		{name: "different parent id", todo: Todo{ParentID: int64p(3)}, parentID: int64p(4), want: false},
		{name: "root vs non-root", todo: Todo{}, parentID: int64p(3), want: false},
		{name: "non-root vs root", todo: Todo{ParentID: int64p(3)}, parentID: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.todo.SameParent(tt.parentID))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "memory backend", config: Config{Backend: BackendMemory}},
		{name: "sqlite backend", config: Config{Backend: BackendSQLite, DataDir: "/tmp/stride"}},
		{name: "empty backend", config: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", config: Config{Backend: "redis"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
