package service

import (
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // Title trimming

	"task_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// TaskService handles owner-scoped CRUD on tasks. Every query filters by
// the owner id, so a task is never visible outside its owner's scope.
type TaskService struct {
	db *gorm.DB // Database handle
}

// NewTaskService creates a TaskService
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// Create persists a new task for the given owner.
// Returns ErrEmptyTitle when the title is blank.
func (s *TaskService) Create(ownerID uint, title, description string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, ErrEmptyTitle
	}
	// Owner is always the authenticated identity, never client-supplied
	task := domain.Task{Title: title, Description: description, OwnerID: ownerID}
	if err := s.db.Create(&task).Error; err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListForOwner returns the owner's tasks in insertion order.
// An owner with no tasks gets an empty slice, not an error.
func (s *TaskService) ListForOwner(ownerID uint) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := s.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get fetches one task by id within the owner's scope. A task that does
// not exist and a task owned by someone else both come back as
// ErrNotFound, so existence is not leaked across owners.
func (s *TaskService) Get(ownerID, taskID uint) (domain.Task, error) {
	var task domain.Task
	err := s.db.Where("id = ? AND owner_id = ?", taskID, ownerID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, ErrNotFound
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Update applies a partial update within the owner's scope: non-empty
// title and description overwrite, absent fields stay unchanged, and the
// completed flag only changes when the pointer is set. Ownership never
// changes after creation.
func (s *TaskService) Update(ownerID, taskID uint, title, description string, completed *bool) (domain.Task, error) {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if t := strings.TrimSpace(title); t != "" {
		task.Title = t
	}
	if description != "" {
		task.Description = description
	}
	if completed != nil {
		task.Completed = *completed
	}
	if err := s.db.Save(&task).Error; err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes one task within the owner's scope.
func (s *TaskService) Delete(ownerID, taskID uint) error {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
