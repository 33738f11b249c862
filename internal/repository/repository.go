package repository

import (
	"context"
	"time"

	"github.com/yukikurage/task-comment-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListSummaries lists every task with its comment count, ordered by ID
	ListSummaries(ctx context.Context) ([]TaskSummary, error)

	// Update writes the mutable fields (title, description) of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete deletes a task and its comments in a transaction
	Delete(ctx context.Context, id uint64) error

	// Count returns the number of stored tasks
	Count(ctx context.Context) (int64, error)
}

// TaskSummary is a task row annotated with the number of comments it owns
type TaskSummary struct {
	ID            uint64
	Title         string
	Description   string
	CreatedAt     time.Time
	CommentsCount int64
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)

	// ListByTask lists the comments of a task in creation order
	ListByTask(ctx context.Context, taskID uint64) ([]models.Comment, error)

	// Update writes the content of a comment
	Update(ctx context.Context, comment *models.Comment) error

	// Delete deletes a single comment
	Delete(ctx context.Context, id uint64) error

	// Count returns the number of stored comments
	Count(ctx context.Context) (int64, error)
}
