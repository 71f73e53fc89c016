package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
	"github.com/dsmirnova/task-tracker/internal/repository"
	"github.com/dsmirnova/task-tracker/internal/utils"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotModified covers both a missing task and an update that
	// changed nothing; the store reports them identically.
	ErrTaskNotModified = fmt.Errorf("%w or nothing changed", ErrTaskNotFound)
	ErrEmptyUpdate     = errors.New("no fields provided for update")
)

// Placeholders substituted when a task's references no longer resolve.
// View composition is the only place dangling references are tolerated.
const (
	UnknownAssignee = "Unknown"
	NoProject       = "No project"
)

// TaskService handles task business logic: resolution of assignee and
// project names on writes, and view composition on reads.
type TaskService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	resolver    *Resolver
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, projectRepo repository.ProjectRepository, resolver *Resolver) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		resolver:    resolver,
	}
}

// ListTasksInput holds the raw query filters. An assignee value that is
// not a well-formed id is ignored rather than rejected.
type ListTasksInput struct {
	Status   string
	Priority string
	Assignee string
}

// ListTasks returns enriched views of the tasks matching the filters,
// AND-combined.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]dto.TaskView, error) {
	filter := repository.TaskFilter{}
	if input.Status != "" {
		filter.Status = &input.Status
	}
	if input.Priority != "" {
		filter.Priority = &input.Priority
	}
	if input.Assignee != "" && utils.IsValidObjectID(input.Assignee) {
		assignee, _ := utils.ParseObjectID(input.Assignee)
		filter.Assignee = &assignee
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views := make([]dto.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, s.composeTaskView(ctx, task))
	}
	return views, nil
}

// GetTask returns the enriched view of a single task
func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID) (*dto.TaskView, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	view := s.composeTaskView(ctx, *task)
	return &view, nil
}

// CreateTask resolves the assignee and project names, applies defaults and
// the server-side creation timestamp, and returns the enriched view.
func (s *TaskService) CreateTask(ctx context.Context, input dto.CreateTaskRequest) (*dto.TaskView, error) {
	assignee, err := s.resolver.ResolveUser(ctx, input.AssigneeName)
	if err != nil {
		return nil, err
	}
	project, err := s.resolver.ResolveProject(ctx, input.ProjectName)
	if err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.DefaultStatus
	}
	if input.Priority == "" {
		input.Priority = models.DefaultPriority
	}

	now := time.Now().UTC()
	task := &models.Task{
		Title:     input.Title,
		Status:    input.Status,
		Priority:  input.Priority,
		Assignee:  assignee,
		Project:   project,
		CreatedAt: &now,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	view := s.composeTaskView(ctx, *task)
	return &view, nil
}

// UpdateTask writes only the fields present in the payload. Names are
// re-resolved to new references; a payload with no fields fails before any
// store access.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, input dto.UpdateTaskRequest) (*dto.TaskView, error) {
	fields := bson.M{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if input.AssigneeName != nil {
		assignee, err := s.resolver.ResolveUser(ctx, *input.AssigneeName)
		if err != nil {
			return nil, err
		}
		fields["assignee"] = assignee
	}
	if input.ProjectName != nil {
		project, err := s.resolver.ResolveProject(ctx, *input.ProjectName)
		if err != nil {
			return nil, err
		}
		fields["project"] = project
	}

	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	modified, err := s.taskRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if modified == 0 {
		return nil, ErrTaskNotModified
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	view := s.composeTaskView(ctx, *task)
	return &view, nil
}

// DeleteTask deletes a single task
func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if deleted == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// composeTaskView resolves the task's references back to display names.
// Dangling references get the fixed placeholders instead of failing.
func (s *TaskService) composeTaskView(ctx context.Context, task models.Task) dto.TaskView {
	view := dto.NewTaskView(task)

	view.AssigneeName = UnknownAssignee
	if user, err := s.userRepo.FindByID(ctx, task.Assignee); err == nil {
		view.AssigneeName = user.FullName
	}

	view.ProjectName = NoProject
	if project, err := s.projectRepo.FindByID(ctx, task.Project); err == nil {
		view.ProjectName = project.Name
	}

	return view
}
