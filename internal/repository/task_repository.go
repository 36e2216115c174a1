package repository

import (
	"github.com/mtakagi/task-manager-api/internal/database"
	"github.com/mtakagi/task-manager-api/internal/models"
	"github.com/mtakagi/task-manager-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID within the owner's tasks.
// A task belonging to a different owner surfaces as gorm.ErrRecordNotFound,
// indistinguishable from an id that does not exist.
func (r *GormTaskRepository) FindByID(ownerID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("owner_id = ?", ownerID).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the owner's tasks ordered by id, windowed by skip/limit
func (r *GormTaskRepository) List(ownerID uint64, skip, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Scopes(database.Paginate(utils.PaginationParams{Skip: skip, Limit: limit})).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task within the owner's tasks. Deleting an id that is
// absent or owned by someone else returns gorm.ErrRecordNotFound.
func (r *GormTaskRepository) Delete(ownerID, id uint64) error {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
