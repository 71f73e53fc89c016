package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/repository"
)

// ResolveError reports a failed name-to-reference resolution. It names the
// missing entity so handlers can surface it to the client.
type ResolveError struct {
	Kind string
	Name string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Resolver translates human-facing names into internal references. Every
// write path that establishes a relationship goes through it, one lookup
// per name, no caching.
type Resolver struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewResolver creates a new Resolver
func NewResolver(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *Resolver {
	return &Resolver{userRepo: userRepo, projectRepo: projectRepo}
}

// ResolveUser maps a username to the user's reference.
func (r *Resolver) ResolveUser(ctx context.Context, username string) (primitive.ObjectID, error) {
	user, err := r.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, &ResolveError{Kind: "user", Name: username}
		}
		return primitive.NilObjectID, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.ID, nil
}

// ResolveProject maps a project name to the project's reference.
func (r *Resolver) ResolveProject(ctx context.Context, name string) (primitive.ObjectID, error) {
	project, err := r.projectRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, &ResolveError{Kind: "project", Name: name}
		}
		return primitive.NilObjectID, fmt.Errorf("failed to resolve project: %w", err)
	}
	return project.ID, nil
}
