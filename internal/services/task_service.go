package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fadildr/tasktrack-api/internal/models"
	"github.com/fadildr/tasktrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskIDRequired    = errors.New("task ID is required")
	ErrTaskFieldsMissing = errors.New("title, description, and createdById are required")
	ErrCreatorNotFound   = errors.New("creator not found")
	ErrAssigneeNotFound  = errors.New("assigned user not found")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrDuplicateTask     = errors.New("duplicate data error")
)

// Columns the task list may be sorted by. Anything else falls back to
// creation time.
var taskSortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	CreatedByID    uint64
	AssignedUserID *uint64
}

// CreateTask validates referenced users and persists a new task with
// status defaulted to NOT_STARTED.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" || input.Description == "" || input.CreatedByID == 0 {
		return nil, ErrTaskFieldsMissing
	}

	if _, err := s.userRepo.FindByID(input.CreatedByID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to verify creator: %w", err)
	}

	if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assigned user: %w", err)
		}
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.TaskStatusNotStarted,
		CreatedByID:    input.CreatedByID,
		AssignedUserID: input.AssignedUserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTask
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "AssignedUser")
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Search         string
	Status         string
	CreatedByID    *uint64
	AssignedUserID *uint64
	SortBy         string
	SortOrder      string
	Page           int
	PageSize       int
}

// ListTasks returns a filtered, sorted, paginated task page plus the
// total count matching the same filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Search:         input.Search,
		CreatedByID:    input.CreatedByID,
		AssignedUserID: input.AssignedUserID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	if input.Status != "" && input.Status != "all" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if taskSortColumns[input.SortBy] {
		filter.SortBy = input.SortBy
	} else {
		filter.SortBy = "created_at"
	}
	filter.SortDesc = input.SortOrder != "asc"

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTaskInput represents a partial update. Nil pointers mean the
// field was not supplied. AssignedUserProvided distinguishes an absent
// assignedUserId from an explicit null (unassign).
type UpdateTaskInput struct {
	ID                   uint64
	UserID               uint64
	Title                *string
	Description          *string
	Status               *string
	AssignedUserID       *uint64
	AssignedUserProvided bool
}

// UpdateTask applies a partial update, computing a per-field diff
// against the stored values. Each changed field produces exactly one
// activity log entry; unsupplied or unchanged fields are untouched.
func (s *TaskService) UpdateTask(input UpdateTaskInput) (*models.Task, error) {
	if input.ID == 0 {
		return nil, ErrTaskIDRequired
	}

	task, err := s.taskRepo.FindByID(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	now := time.Now()
	var logs []models.ActivityLog
	record := func(field string, before, after *string) {
		logs = append(logs, models.ActivityLog{
			TaskID:      task.ID,
			UserID:      input.UserID,
			Field:       field,
			BeforeValue: before,
			AfterValue:  after,
			CreatedAt:   now,
		})
	}

	// Empty strings count as "not supplied", matching the observed
	// behavior of the system this replaces.
	if input.Title != nil && *input.Title != "" && *input.Title != task.Title {
		record("title", strPtr(task.Title), strPtr(*input.Title))
		task.Title = *input.Title
	}

	if input.Description != nil && *input.Description != "" && *input.Description != task.Description {
		record("description", strPtr(task.Description), strPtr(*input.Description))
		task.Description = *input.Description
	}

	if input.Status != nil && *input.Status != "" {
		status := models.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		if status != task.Status {
			record("status", strPtr(string(task.Status)), strPtr(string(status)))
			task.Status = status
		}
	}

	if input.AssignedUserProvided && !uint64PtrEqual(input.AssignedUserID, task.AssignedUserID) {
		if input.AssignedUserID != nil {
			if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrAssigneeNotFound
				}
				return nil, fmt.Errorf("failed to verify assigned user: %w", err)
			}
		}
		record("assignedUserId", uint64PtrString(task.AssignedUserID), uint64PtrString(input.AssignedUserID))
		task.AssignedUserID = input.AssignedUserID
		task.AssignedUser = nil
	}

	if len(logs) > 0 {
		if err := s.taskRepo.UpdateWithLogs(task, logs); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateTask
			}
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "AssignedUser", "ActivityLogs", "ActivityLogs.User")
}

func strPtr(s string) *string {
	return &s
}

func uint64PtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uint64PtrString(v *uint64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatUint(*v, 10)
	return &s
}
