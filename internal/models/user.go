package models

import (
	"time"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleLead   UserRole = "lead"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleMember || r == RoleLead
}

// ID returns the numeric role identifier stored alongside the role name.
func (r UserRole) ID() uint {
	if r == RoleLead {
		return 1
	}
	return 2
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	RoleID       uint      `gorm:"not null;default:2" json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	CreatedTasks  []Task        `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks []Task        `gorm:"foreignKey:AssignedUserID" json:"-"`
	ActivityLogs  []ActivityLog `gorm:"foreignKey:UserID" json:"-"`
}
