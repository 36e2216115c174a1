package constants

// ContextKeyUser is the gin context key holding the resolved *models.User.
const ContextKeyUser = "current_user"

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8

// Pagination bounds for task listing.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)
