package dto

import (
	"time"

	"github.com/dsmirnova/task-tracker/internal/models"
)

// CreateTaskRequest is the body of POST /tasks. Assignee and project are
// given by name and resolved to references at write time.
type CreateTaskRequest struct {
	Title        string `json:"title" binding:"required"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	AssigneeName string `json:"assignee_name" binding:"required"`
	ProjectName  string `json:"project_name" binding:"required"`
}

// UpdateTaskRequest is the body of PUT /tasks. Only fields present in the
// payload are written; assignee_name and project_name re-resolve to new
// references.
type UpdateTaskRequest struct {
	Title        *string `json:"title"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	AssigneeName *string `json:"assignee_name"`
	ProjectName  *string `json:"project_name"`
}

// TaskView is a task enriched with display names resolved from its
// references. Every task-returning endpoint responds with this shape.
type TaskView struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Assignee     string     `json:"assignee"`
	Project      string     `json:"project"`
	CreatedAt    *time.Time `json:"created_at"`
	AssigneeName string     `json:"assignee_name"`
	ProjectName  string     `json:"project_name"`
}

// NewTaskView builds the base view from a task record; the display names
// are filled in by the service layer.
func NewTaskView(task models.Task) TaskView {
	return TaskView{
		ID:        task.ID.Hex(),
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		Assignee:  task.Assignee.Hex(),
		Project:   task.Project.Hex(),
		CreatedAt: task.CreatedAt,
	}
}
