package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dsmirnova/task-tracker/internal/errors"
	"github.com/dsmirnova/task-tracker/internal/services"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// ProjectSummary returns every task joined to its project and assignee,
// sorted by (project_name, title)
func (h *SummaryHandler) ProjectSummary(c *gin.Context) {
	rows, err := h.summaryService.ProjectSummary(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "Failed to build project summary")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// UserSummary returns the tasks assigned to the user in the path. A
// malformed id yields an empty list, not an error.
func (h *SummaryHandler) UserSummary(c *gin.Context) {
	rows, err := h.summaryService.UserSummary(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		apperrors.InternalError(c, "Failed to build user summary")
		return
	}

	c.JSON(http.StatusOK, rows)
}
