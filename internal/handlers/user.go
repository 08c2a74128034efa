package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fadildr/tasktrack-api/internal/dto"
	apierrors "github.com/fadildr/tasktrack-api/internal/errors"
	"github.com/fadildr/tasktrack-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns a searchable, paginated user list. Unlike the task
// listing, out-of-range pagination values are rejected rather than
// clamped.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 || limit < 1 {
		apierrors.BadRequest(c, "Page and limit must be greater than 0")
		return
	}

	users, total, err := h.userService.ListUsers(services.ListUsersInput{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, page, limit, total))
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, err.Error())
		return
	}

	respond(c, http.StatusOK, dto.ToUserDTO(*user), "User fetched successfully")
}
