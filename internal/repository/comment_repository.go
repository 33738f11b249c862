package repository

import (
	"context"

	"github.com/yukikurage/task-comment-api/internal/database"
	"github.com/yukikurage/task-comment-api/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment. A task_id without a matching task surfaces as
// gorm.ErrForeignKeyViolated.
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := tracer.Start(ctx, "CommentRepository.Create",
		trace.WithAttributes(attribute.Int64("task.id", int64(comment.TaskID))),
	)
	defer func() { endSpan(span, err) }()

	if err = r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}

	span.SetAttributes(attribute.Int64("comment.id", int64(comment.ID)))
	return nil
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint64) (_ *models.Comment, err error) {
	ctx, span := tracer.Start(ctx, "CommentRepository.FindByID",
		trace.WithAttributes(attribute.Int64("comment.id", int64(id))),
	)
	defer func() { endSpan(span, err) }()

	var comment models.Comment
	if err = r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists the comments of a task in creation order
func (r *GormCommentRepository) ListByTask(ctx context.Context, taskID uint64) (_ []models.Comment, err error) {
	ctx, span := tracer.Start(ctx, "CommentRepository.ListByTask",
		trace.WithAttributes(attribute.Int64("task.id", int64(taskID))),
	)
	defer func() { endSpan(span, err) }()

	var comments []models.Comment
	if err = r.db.WithContext(ctx).
		Scopes(database.ByTask(taskID), database.InCreationOrder).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("comment.count", len(comments)))
	return comments, nil
}

// Update writes the content of a comment; task_id and created_at are immutable
func (r *GormCommentRepository) Update(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := tracer.Start(ctx, "CommentRepository.Update",
		trace.WithAttributes(attribute.Int64("comment.id", int64(comment.ID))),
	)
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).
		Model(&models.Comment{ID: comment.ID}).
		Update("content", comment.Content).Error
	return err
}

// Delete deletes a single comment.
// It returns gorm.ErrRecordNotFound when no comment has the given ID.
func (r *GormCommentRepository) Delete(ctx context.Context, id uint64) (err error) {
	ctx, span := tracer.Start(ctx, "CommentRepository.Delete",
		trace.WithAttributes(attribute.Int64("comment.id", int64(id))),
	)
	defer func() { endSpan(span, err) }()

	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of stored comments
func (r *GormCommentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}
