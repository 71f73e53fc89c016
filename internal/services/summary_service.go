package services

import (
	"context"
	"fmt"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/repository"
	"github.com/dsmirnova/task-tracker/internal/utils"
)

// SummaryService runs the cross-collection aggregation views.
type SummaryService struct {
	taskRepo repository.TaskRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(taskRepo repository.TaskRepository) *SummaryService {
	return &SummaryService{taskRepo: taskRepo}
}

// ProjectSummary returns every task joined to its project and assignee,
// sorted by (project_name, title) ascending.
func (s *SummaryService) ProjectSummary(ctx context.Context) ([]dto.ProjectSummaryRow, error) {
	rows, err := s.taskRepo.ProjectSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build project summary: %w", err)
	}
	return rows, nil
}

// UserSummary returns the user's tasks joined to their projects. A
// malformed id yields an empty result, not an error.
func (s *SummaryService) UserSummary(ctx context.Context, rawUserID string) ([]dto.UserSummaryRow, error) {
	userID, err := utils.ParseObjectID(rawUserID)
	if err != nil {
		return []dto.UserSummaryRow{}, nil
	}

	rows, err := s.taskRepo.UserSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build user summary: %w", err)
	}
	return rows, nil
}
