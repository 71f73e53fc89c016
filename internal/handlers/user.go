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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		apperrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser replaces all fields of the user given by the user_id query
// parameter
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Query("user_id"))
	if err != nil {
		apperrors.BadRequest(c, "Invalid user id format")
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apperrors.NotFound(c, err.Error())
			return
		}
		apperrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes the user given by the user_id query parameter
func (h *UserHandler) DeleteUser(c *gin.Context) {
	rawID := c.Query("user_id")
	id, err := utils.ParseObjectID(rawID)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user id format")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apperrors.NotFound(c, "User not found")
			return
		}
		apperrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "User deleted", "id": rawID})
}
