package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
)

// ErrNotFound is returned by lookups when no document matches.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List returns all users
	List(ctx context.Context) ([]models.User, error)

	// FindByID finds a user by its internal reference
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByUsername finds a user by the human-facing key
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Create inserts a user and fills in the generated ID
	Create(ctx context.Context, user *models.User) error

	// Update overwrites the given fields; returns the modified count
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)

	// Delete removes a user; returns the deleted count
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// List returns all projects
	List(ctx context.Context) ([]models.Project, error)

	// FindByID finds a project by its internal reference
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)

	// FindByName finds a project by the human-facing key
	FindByName(ctx context.Context, name string) (*models.Project, error)

	// Create inserts a project and fills in the generated ID
	Create(ctx context.Context, project *models.Project) error

	// Update overwrites the given fields; returns the modified count
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)

	// Delete removes a project; returns the deleted count
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// TaskFilter holds the optional list filters, AND-combined. Absent filters
// are omitted from the query, not wildcarded.
type TaskFilter struct {
	Status   *string
	Priority *string
	Assignee *primitive.ObjectID
}

// TaskRepository defines the interface for task data access, including the
// cross-collection summary pipelines.
type TaskRepository interface {
	// List returns tasks matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// FindByID finds a task by its internal reference
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)

	// Create inserts a task and fills in the generated ID
	Create(ctx context.Context, task *models.Task) error

	// Update overwrites the given fields; returns the modified count
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)

	// Delete removes a task; returns the deleted count
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	// DeleteByProject removes every task referencing the project; returns
	// the deleted count
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)

	// ProjectSummary joins every task to its project and assignee, sorted
	// by (project_name, title) ascending
	ProjectSummary(ctx context.Context) ([]dto.ProjectSummaryRow, error)

	// UserSummary joins the user's tasks to their projects, sorted by
	// (project_name, title) ascending
	UserSummary(ctx context.Context, userID primitive.ObjectID) ([]dto.UserSummaryRow, error)
}
