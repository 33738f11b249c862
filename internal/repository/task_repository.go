package repository

import (
	"context"

	"github.com/yukikurage/task-comment-api/internal/database"
	"github.com/yukikurage/task-comment-api/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
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
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) (err error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.Create")
	defer func() { endSpan(span, err) }()

	if err = r.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}

	span.SetAttributes(attribute.Int64("task.id", int64(task.ID)))
	return nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (_ *models.Task, err error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.FindByID",
		trace.WithAttributes(attribute.Int64("task.id", int64(id))),
	)
	defer func() { endSpan(span, err) }()

	var task models.Task
	if err = r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListSummaries lists every task with its comment count in a single query
func (r *GormTaskRepository) ListSummaries(ctx context.Context) (_ []TaskSummary, err error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.ListSummaries")
	defer func() { endSpan(span, err) }()

	var summaries []TaskSummary
	err = r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select(
			"tasks.id, tasks.title, COALESCE(tasks.description, '') AS description, tasks.created_at, " +
				"(SELECT COUNT(*) FROM comments WHERE comments.task_id = tasks.id) AS comments_count",
		).
		Order("tasks.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("task.count", len(summaries)))
	return summaries, nil
}

// Update writes the mutable fields of a task; id and created_at are never touched
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) (err error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.Update",
		trace.WithAttributes(attribute.Int64("task.id", int64(task.ID))),
	)
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).
		Model(&models.Task{ID: task.ID}).
		Select("title", "description").
		Updates(&models.Task{Title: task.Title, Description: task.Description}).Error
	return err
}

// Delete deletes a task and all of its comments in a transaction.
// It returns gorm.ErrRecordNotFound when no task has the given ID.
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) (err error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.Delete",
		trace.WithAttributes(attribute.Int64("task.id", int64(id))),
	)
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := tx.Scopes(database.ByTask(id)).Delete(&models.Comment{})
		if comments.Error != nil {
			return comments.Error
		}
		span.SetAttributes(attribute.Int64("comment.deleted", comments.RowsAffected))

		result := tx.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Count returns the number of stored tasks
func (r *GormTaskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Count(&count).Error
	return count, err
}
