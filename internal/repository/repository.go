package repository

import (
	"github.com/fadildr/tasktrack-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users matching the filter along with the total count
	List(filter UserFilter) ([]models.User, int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateWithLogs persists field changes and their activity log
	// entries within a single transaction.
	UpdateWithLogs(task *models.Task, logs []models.ActivityLog) error
}

// TaskFilter holds filtering options for listing tasks.
// SortBy must be a plain column name; callers are expected to validate
// it against a whitelist before it reaches the repository.
type TaskFilter struct {
	Search         string
	Status         *models.TaskStatus
	CreatedByID    *uint64
	AssignedUserID *uint64
	SortBy         string
	SortDesc       bool
	Page           int
	PageSize       int
}
