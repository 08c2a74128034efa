package dto

import (
	"time"

	"github.com/fadildr/tasktrack-api/internal/models"
)

// UserRef is the minimal user reference (id + name) attached to tasks
// and activity log entries.
type UserRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserDTO represents a user in API responses. The password hash is
// never included.
type UserDTO struct {
	ID        uint64          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	RoleID    uint            `json:"role_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Status      int       `json:"status"`
	Data        []UserDTO `json:"data"`
	TotalUsers  int64     `json:"totalUsers"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Message     string    `json:"message"`
	Error       bool      `json:"error"`
}

// ToUserRef converts a User model to UserRef
func ToUserRef(user models.User) UserRef {
	return UserRef{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, total int64) UserListResponse {
	data := make([]UserDTO, len(users))
	for i, user := range users {
		data[i] = ToUserDTO(user)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return UserListResponse{
		Status:      200,
		Data:        data,
		TotalUsers:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Message:     "Users fetched successfully",
		Error:       false,
	}
}
