package repository

import (
	"github.com/KalyadapuVamshiKrishna/backend-api/internal/models"
)

// TaskRepository defines the interface for task data access.
// Every read and mutation is scoped by the owning user's ID; a task ID
// alone is never enough to reach a row.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDAndOwner finds a task by ID owned by the given user
	FindByIDAndOwner(id, userID uint64) (*models.Task, error)

	// ListByOwner retrieves all tasks owned by the given user
	ListByOwner(userID uint64) ([]models.Task, error)

	// Save persists changes to an existing task
	Save(task *models.Task) error

	// DeleteByIDAndOwner deletes the task matching (id, owner) and reports
	// how many rows were affected
	DeleteByIDAndOwner(id, userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
