package services

import (
	"errors"
	"fmt"

	"github.com/mtakagi/task-manager-api/internal/models"
	"github.com/mtakagi/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
)

// TaskService handles task business logic. Every operation takes the
// resolved owner's ID; client payloads never carry ownership.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateTaskInput represents a partial update; nil fields are left unchanged
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// CreateTask creates a new task owned by ownerID
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		OwnerID:     ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the owner's tasks in insertion order
func (s *TaskService) ListTasks(ownerID uint64, skip, limit int) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ownerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task if it exists and belongs to ownerID
func (s *TaskService) GetTask(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the present fields of a partial update and returns
// the full updated task. An empty update persists nothing new but still
// succeeds.
func (s *TaskService) UpdateTask(ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by ownerID. Repeating a delete after
// success fails with ErrTaskNotFound, same as a task that never existed.
func (s *TaskService) DeleteTask(ownerID, taskID uint64) error {
	if _, err := s.GetTask(ownerID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ownerID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
