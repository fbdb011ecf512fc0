package model

import "time"

// Status is the lifecycle flag of a Todo.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"

	// StatusAll is the list filter sentinel meaning no narrowing.
	StatusAll = "All"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Todo represents a todo item owned by exactly one user.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	OwnerID     string    `json:"ownerId"`
}

// TodoPatch holds the mutable fields of an update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *Status
}

// TodoStats are the owner's unfiltered counts by status.
type TodoStats struct {
	PendingCount   int `json:"pendingCount"`
	CompletedCount int `json:"completedCount"`
}

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description"`
}

// UpdateTodoRequest is the body of PUT /todos/{id}. Absent fields are not modified.
type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitnil,oneof=Pending Completed"`
}

// Patch converts the request into a store patch.
func (r UpdateTodoRequest) Patch() TodoPatch {
	p := TodoPatch{Title: r.Title, Description: r.Description}
	if r.Status != nil {
		s := Status(*r.Status)
		p.Status = &s
	}
	return p
}

// TodoListResponse is the body of GET /todos.
type TodoListResponse struct {
	Todos []Todo    `json:"todos"`
	Stats TodoStats `json:"stats"`
}
