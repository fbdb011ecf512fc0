package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/repository"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoStore is the todo persistence used by TodoService. Every method is
// scoped by owner and reports repository.ErrTodoNotFound when no todo
// matches both id and owner.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByOwner(ctx context.Context, ownerID string, status *model.Status) ([]model.Todo, error)
	CountByStatus(ctx context.Context, ownerID string) (model.TodoStats, error)
	Update(ctx context.Context, ownerID, id string, patch model.TodoPatch) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TodoService performs ownership-scoped todo operations.
type TodoService struct {
	repo TodoStore
	now  func() time.Time
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo TodoStore) *TodoService {
	return &TodoService{repo: repo, now: time.Now}
}

// Create stores a new Pending todo owned by owner.
func (s *TodoService) Create(ctx context.Context, owner *model.User, req model.CreateTodoRequest) (*model.Todo, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.StatusPending,
		CreatedAt:   s.now().UTC(),
		OwnerID:     owner.ID,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	return todo, nil
}

// List returns the owner's todos, newest first, narrowed to statusFilter
// unless it is empty or "All". Stats always cover all of the owner's todos.
func (s *TodoService) List(ctx context.Context, owner *model.User, statusFilter string) (model.TodoListResponse, error) {
	filter, err := parseStatusFilter(statusFilter)
	if err != nil {
		return model.TodoListResponse{}, err
	}

	todos, err := s.repo.ListByOwner(ctx, owner.ID, filter)
	if err != nil {
		return model.TodoListResponse{}, fmt.Errorf("listing todos: %w", err)
	}

	stats, err := s.repo.CountByStatus(ctx, owner.ID)
	if err != nil {
		return model.TodoListResponse{}, fmt.Errorf("counting todos: %w", err)
	}

	owned := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.OwnerID == owner.ID {
			owned = append(owned, t)
		}
	}

	return model.TodoListResponse{Todos: owned, Stats: stats}, nil
}

// Update changes the fields present in req on the owner's todo id.
// Todos of other users are reported as not found.
func (s *TodoService) Update(ctx context.Context, owner *model.User, id string, req model.UpdateTodoRequest) (*model.Todo, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	todo, err := s.repo.Update(ctx, owner.ID, id, req.Patch())
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("updating todo: %w", err)
	}
	if todo.OwnerID != owner.ID {
		return nil, ErrTodoNotFound
	}

	return todo, nil
}

// Delete removes the owner's todo id.
func (s *TodoService) Delete(ctx context.Context, owner *model.User, id string) error {
	err := s.repo.Delete(ctx, owner.ID, id)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}

func parseStatusFilter(v string) (*model.Status, error) {
	if v == "" || v == model.StatusAll {
		return nil, nil
	}
	st := model.Status(v)
	if !st.Valid() {
		return nil, newValidationError("status", "status must be one of: All, Pending, Completed")
	}
	return &st, nil
}
