package services

import (
	"errors"
	"fmt"

	"github.com/KalyadapuVamshiKrishna/backend-api/internal/models"
	"github.com/KalyadapuVamshiKrishna/backend-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. Every operation takes the
// authenticated caller and scopes its store access by the caller's ID;
// a task owned by someone else is indistinguishable from one that does
// not exist.
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
}

// ListTasks returns all tasks owned by the caller
func (s *TaskService) ListTasks(caller *models.User) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns the task with the given ID if the caller owns it
func (s *TaskService) GetTask(taskID uint64, caller *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(taskID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a new task owned by the caller. New tasks always
// start in the OPEN status regardless of input.
func (s *TaskService) CreateTask(input CreateTaskInput, caller *models.User) (*models.Task, error) {
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusOpen,
		UserID:      caller.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes the task matching (id, caller). The delete filters
// by owner in the same statement and the affected-row count decides the
// outcome, so there is no separate existence check to race against.
func (s *TaskService) DeleteTask(taskID uint64, caller *models.User) error {
	affected, err := s.taskRepo.DeleteByIDAndOwner(taskID, caller.ID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateTaskStatus sets a new status on the caller's task and returns
// the updated task. Only the status field changes.
func (s *TaskService) UpdateTaskStatus(taskID uint64, status models.TaskStatus, caller *models.User) (*models.Task, error) {
	task, err := s.GetTask(taskID, caller)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}
