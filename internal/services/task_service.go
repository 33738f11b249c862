package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-comment-api/internal/models"
	"github.com/yukikurage/task-comment-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic
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

// UpdateTaskInput represents input for updating a task.
// Description replaces the stored value, so an omitted description clears it.
type UpdateTaskInput struct {
	Title       string
	Description string
}

// ListTasks returns every task with its comment count
func (s *TaskService) ListTasks(ctx context.Context) ([]repository.TaskSummary, error) {
	summaries, err := s.taskRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if summaries == nil {
		summaries = []repository.TaskSummary{}
	}
	return summaries, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	if !storable(taskID) {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces the title and description of an existing task
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task.Title = input.Title
	task.Description = input.Description

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task together with all of its comments
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if !storable(taskID) {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CountTasks returns the number of stored tasks
func (s *TaskService) CountTasks(ctx context.Context) (int64, error) {
	return s.taskRepo.Count(ctx)
}
