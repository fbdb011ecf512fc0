package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tasklist/tasklist-go/internal/model"
)

// MemoryStore keeps users and todos in process memory. It is used when no
// database is configured and by tests. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]model.User
	byEmail map[string]string
	todos   map[string]memoryTodo
	seq     uint64
}

type memoryTodo struct {
	model.Todo
	seq uint64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
		todos:   make(map[string]memoryTodo),
	}
}

// Users returns the credential store view.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

// Todos returns the todo store view.
func (s *MemoryStore) Todos() *MemoryTodoRepository {
	return &MemoryTodoRepository{s: s}
}

// MemoryUserRepository is the in-memory credential store.
type MemoryUserRepository struct {
	s *MemoryStore
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Delete removes a user and their todos.
func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	for tid, t := range s.todos {
		if t.OwnerID == id {
			delete(s.todos, tid)
		}
	}
	return nil
}

// MemoryTodoRepository is the in-memory todo store.
type MemoryTodoRepository struct {
	s *MemoryStore
}

func (r *MemoryTodoRepository) Create(_ context.Context, todo *model.Todo) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	todo.ID = uuid.NewString()
	s.todos[todo.ID] = memoryTodo{Todo: *todo, seq: s.seq}
	return nil
}

func (r *MemoryTodoRepository) ListByOwner(_ context.Context, ownerID string, status *model.Status) ([]model.Todo, error) {
	s := r.s
	s.mu.RLock()
	matched := make([]memoryTodo, 0)
	for _, t := range s.todos {
		if t.OwnerID != ownerID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		matched = append(matched, t)
	}
	s.mu.RUnlock()

	// newest first; insertion order breaks timestamp ties
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	todos := make([]model.Todo, len(matched))
	for i, t := range matched {
		todos[i] = t.Todo
	}
	return todos, nil
}

func (r *MemoryTodoRepository) CountByStatus(_ context.Context, ownerID string) (model.TodoStats, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats model.TodoStats
	for _, t := range s.todos {
		if t.OwnerID != ownerID {
			continue
		}
		switch t.Status {
		case model.StatusPending:
			stats.PendingCount++
		case model.StatusCompleted:
			stats.CompletedCount++
		}
	}
	return stats, nil
}

func (r *MemoryTodoRepository) Update(_ context.Context, ownerID, id string, patch model.TodoPatch) (*model.Todo, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, ErrTodoNotFound
	}

	applyPatch(&t.Todo, patch)
	s.todos[id] = t

	updated := t.Todo
	return &updated, nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, ownerID, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.OwnerID != ownerID {
		return ErrTodoNotFound
	}
	delete(s.todos, id)
	return nil
}
