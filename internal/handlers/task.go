package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fadildr/tasktrack-api/internal/dto"
	apierrors "github.com/fadildr/tasktrack-api/internal/errors"
	"github.com/fadildr/tasktrack-api/internal/middleware"
	"github.com/fadildr/tasktrack-api/internal/services"
	"github.com/fadildr/tasktrack-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title          string  `json:"title" binding:"required"`
		Description    string  `json:"description" binding:"required"`
		CreatedByID    uint64  `json:"createdById" binding:"required"`
		AssignedUserID *uint64 `json:"assignedUserId"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title, description, and createdById are required")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		CreatedByID:    req.CreatedByID,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToTaskDTO(*task), "Task created successfully")
}

// ListTasks returns a filtered, sorted, paginated task list with each
// task's activity history.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      params.Page,
		PageSize:  params.Limit,
	}

	if v := c.Query("createdById"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid createdById")
			return
		}
		input.CreatedByID = &id
	}
	if v := c.Query("assignedUserId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignedUserId")
			return
		}
		input.AssignedUserID = &id
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total), "Tasks fetched successfully")
}

// UpdateTask applies a partial update. The body is parsed as raw JSON
// so an absent field can be told apart from an explicit null.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, ok := jsonUint64(rawReq["id"])
	if !ok {
		apierrors.BadRequest(c, "Task ID is required")
		return
	}

	input := services.UpdateTaskInput{ID: id}

	// The acting user for the audit trail: the explicit userId field,
	// falling back to the authenticated user.
	if actorID, ok := jsonUint64(rawReq["userId"]); ok {
		input.UserID = actorID
	} else if authID, ok := middleware.GetUserID(c); ok {
		input.UserID = authID
	}

	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if status, ok := rawReq["status"].(string); ok {
		input.Status = &status
	}
	if _, present := rawReq["assignedUserId"]; present {
		input.AssignedUserProvided = true
		if assigneeID, ok := jsonUint64(rawReq["assignedUserId"]); ok {
			input.AssignedUserID = &assigneeID
		}
	}

	task, err := h.taskService.UpdateTask(input)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		respondTaskError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToTaskDTO(*task), "Task updated successfully")
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskIDRequired):
		apierrors.BadRequest(c, "Task ID is required")
	case errors.Is(err, services.ErrTaskFieldsMissing):
		apierrors.BadRequest(c, "Title, description, and createdById are required")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrCreatorNotFound):
		apierrors.NotFound(c, "Creator not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "Assigned user not found")
	case errors.Is(err, services.ErrDuplicateTask):
		apierrors.Conflict(c, "Duplicate data error")
	default:
		apierrors.InternalError(c, err.Error())
	}
}

// jsonUint64 converts a decoded JSON value (float64 for numbers) to a
// positive uint64.
func jsonUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 1 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	case string:
		id, err := strconv.ParseUint(n, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
