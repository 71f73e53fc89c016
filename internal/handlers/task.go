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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns enriched task views, optionally filtered by status,
// priority and assignee id (AND-combined)
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Assignee: c.Query("assignee"),
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns the enriched view of one task
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("task_id"))
	if err != nil {
		apperrors.BadRequest(c, "Invalid task id format")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apperrors.NotFound(c, "Task not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a task, resolving assignee_name and project_name to
// references. Unknown names fail with 400 naming the missing entity.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		var resolveErr *services.ResolveError
		if errors.As(err, &resolveErr) {
			apperrors.BadRequest(c, resolveErr.Error())
			return
		}
		apperrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates only the fields present in the payload for the task
// given by the task_id query parameter
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Query("task_id"))
	if err != nil {
		apperrors.BadRequest(c, "Invalid task id format")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		var resolveErr *services.ResolveError
		if errors.As(err, &resolveErr) {
			apperrors.BadRequest(c, resolveErr.Error())
			return
		}
		if errors.Is(err, services.ErrEmptyUpdate) {
			apperrors.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, services.ErrTaskNotFound) {
			apperrors.NotFound(c, err.Error())
			return
		}
		apperrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes the task given by the task_id query parameter
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	rawID := c.Query("task_id")
	id, err := utils.ParseObjectID(rawID)
	if err != nil {
		apperrors.BadRequest(c, "Invalid task id format")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apperrors.NotFound(c, "Task not found")
			return
		}
		apperrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Task deleted", "task_id": rawID})
}
