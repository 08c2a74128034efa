package models

import (
	"time"
)

// ActivityLog records a single field-level change to a task. Rows are
// append-only: one row per changed field per update, never edited.
type ActivityLog struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	UserID      uint64    `gorm:"not null" json:"user_id"`
	Field       string    `gorm:"type:varchar(50);not null" json:"field"`
	BeforeValue *string   `gorm:"type:text" json:"before_value"`
	AfterValue  *string   `gorm:"type:text" json:"after_value"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
