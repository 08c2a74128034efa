package constants

// Pagination bounds shared by the task and user listings.
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Context keys populated by the auth middleware.
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)
