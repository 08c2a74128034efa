package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusOnProgress TaskStatus = "ON_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusReject     TaskStatus = "REJECT"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusOnProgress, TaskStatusDone, TaskStatusReject:
		return true
	}
	return false
}

type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	CreatedByID    uint64     `gorm:"not null" json:"created_by_id"`
	AssignedUserID *uint64    `json:"assigned_user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	CreatedBy    User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedUser *User         `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
	ActivityLogs []ActivityLog `gorm:"foreignKey:TaskID" json:"activity_logs,omitempty"`
}
