package repository

import (
	"github.com/mtakagi/task-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access.
// Every read and write is scoped to the owning user: a task id that
// exists under another owner behaves exactly like an absent id.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID within the owner's tasks
	FindByID(ownerID, id uint64) (*models.Task, error)

	// List retrieves the owner's tasks in insertion order, windowed by skip/limit
	List(ownerID uint64, skip, limit int) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task within the owner's tasks
	Delete(ownerID, id uint64) error
}
