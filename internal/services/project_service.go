package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
	"github.com/dsmirnova/task-tracker/internal/repository"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectNotModified covers both a missing project and an update
	// that changed nothing; the store reports them identically.
	ErrProjectNotModified = fmt.Errorf("%w or nothing changed", ErrProjectNotFound)
)

// ProjectService handles project business logic, including the cascade
// delete of a project's tasks.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	resolver    *Resolver
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, resolver *Resolver) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		resolver:    resolver,
	}
}

// ListProjects returns all projects
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// resolveMembers maps member usernames to references, in input order. Any
// unknown username fails the whole operation before anything is written.
func (s *ProjectService) resolveMembers(ctx context.Context, usernames []string) ([]primitive.ObjectID, error) {
	members := make([]primitive.ObjectID, 0, len(usernames))
	for _, username := range usernames {
		id, err := s.resolver.ResolveUser(ctx, username)
		if err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, nil
}

// CreateProject resolves the member usernames and creates the project
func (s *ProjectService) CreateProject(ctx context.Context, input dto.CreateProjectRequest) (*models.Project, error) {
	members, err := s.resolveMembers(ctx, input.Members)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:    input.Name,
		Members: members,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject re-resolves the full member list and replaces the project
// fields; the member list is replaced, not merged.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, input dto.CreateProjectRequest) (*models.Project, error) {
	members, err := s.resolveMembers(ctx, input.Members)
	if err != nil {
		return nil, err
	}

	fields := bson.M{
		"name":    input.Name,
		"members": members,
	}

	modified, err := s.projectRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if modified == 0 {
		return nil, ErrProjectNotModified
	}

	return s.projectRepo.FindByID(ctx, id)
}

// DeleteProject deletes the project and every task referencing it. The
// task deletion and the project deletion are two separate store calls with
// no transaction between them. Returns the deleted project.
func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if _, err := s.taskRepo.DeleteByProject(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete project tasks: %w", err)
	}
	if _, err := s.projectRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	return project, nil
}
