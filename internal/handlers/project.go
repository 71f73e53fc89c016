package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnova/task-tracker/internal/dto"
	apperrors "github.com/dsmirnova/task-tracker/internal/errors"
	"github.com/dsmirnova/task-tracker/internal/services"
	"github.com/dsmirnova/task-tracker/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns all projects, members rendered as id strings
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a project, resolving each member username. Any
// unknown username fails the request with 400 and creates nothing.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		var resolveErr *services.ResolveError
		if errors.As(err, &resolveErr) {
			apperrors.BadRequest(c, resolveErr.Error())
			return
		}
		apperrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject replaces the project's name and member list (re-resolved
// in full) for the project given by the project_id query parameter
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Query("project_id"))
	if err != nil {
		apperrors.BadRequest(c, "Invalid project id format")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		var resolveErr *services.ResolveError
		if errors.As(err, &resolveErr) {
			apperrors.BadRequest(c, resolveErr.Error())
			return
		}
		if errors.Is(err, services.ErrProjectNotFound) {
			apperrors.NotFound(c, err.Error())
			return
		}
		apperrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes the project given by the project_id query
// parameter along with every task referencing it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	rawID := c.Query("project_id")
	id, err := utils.ParseObjectID(rawID)
	if err != nil {
		apperrors.BadRequest(c, "Invalid project id format")
		return
	}

	project, err := h.projectService.DeleteProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apperrors.NotFound(c, "Project not found")
			return
		}
		apperrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":       "Project and all its tasks deleted",
		"project_id":   rawID,
		"project_name": project.Name,
	})
}
