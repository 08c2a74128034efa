package dto

import (
	"time"

	"github.com/fadildr/tasktrack-api/internal/models"
)

// ActivityLogDTO represents one field-level change in API responses
type ActivityLogDTO struct {
	User        UserRef   `json:"user"`
	Field       string    `json:"field"`
	BeforeValue *string   `json:"beforeValue"`
	AfterValue  *string   `json:"afterValue"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	CreatedByID    uint64            `json:"createdById"`
	AssignedUserID *uint64           `json:"assignedUserId"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CreatedBy      *UserRef          `json:"created_by,omitempty"`
	AssignedUser   *UserRef          `json:"assignedUser,omitempty"`
	ActivityLogs   []ActivityLogDTO  `json:"activityLogs,omitempty"`
}

// TaskListMeta carries pagination metadata for the task list
type TaskListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO    `json:"tasks"`
	Meta  TaskListMeta `json:"meta"`
}

// ToActivityLogDTO converts an ActivityLog model to ActivityLogDTO
func ToActivityLogDTO(log models.ActivityLog) ActivityLogDTO {
	return ActivityLogDTO{
		User:        ToUserRef(log.User),
		Field:       log.Field,
		BeforeValue: log.BeforeValue,
		AfterValue:  log.AfterValue,
		UpdatedAt:   log.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		CreatedByID:    task.CreatedByID,
		AssignedUserID: task.AssignedUserID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.CreatedBy.ID != 0 {
		creator := ToUserRef(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	// Include assigned user if preloaded
	if task.AssignedUser != nil {
		assignee := ToUserRef(*task.AssignedUser)
		dto.AssignedUser = &assignee
	}

	// Include activity logs if preloaded
	if len(task.ActivityLogs) > 0 {
		dto.ActivityLogs = make([]ActivityLogDTO, len(task.ActivityLogs))
		for i, log := range task.ActivityLogs {
			dto.ActivityLogs[i] = ToActivityLogDTO(log)
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks: items,
		Meta: TaskListMeta{
			Total:      total,
			Page:       page,
			Limit:      pageSize,
			TotalPages: totalPages,
		},
	}
}
