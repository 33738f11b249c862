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

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// CreateCommentInput represents input for creating a comment
type CreateCommentInput struct {
	TaskID  uint64
	Content string
}

// ListComments returns the comments of a task in creation order
func (s *CommentService) ListComments(ctx context.Context, taskID uint64) ([]models.Comment, error) {
	if err := s.ensureTaskExists(ctx, taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// GetComment returns a comment by ID
func (s *CommentService) GetComment(ctx context.Context, commentID uint64) (*models.Comment, error) {
	if !storable(commentID) {
		return nil, ErrCommentNotFound
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

// CreateComment attaches a new comment to an existing task
func (s *CommentService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	if err := s.ensureTaskExists(ctx, input.TaskID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	comment := &models.Comment{
		TaskID:  input.TaskID,
		Content: input.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// The task was deleted between the existence check and the insert
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrCommentTaskGone
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// UpdateComment replaces the content of an existing comment
func (s *CommentService) UpdateComment(ctx context.Context, commentID uint64, content string) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment deletes a single comment
func (s *CommentService) DeleteComment(ctx context.Context, commentID uint64) error {
	if !storable(commentID) {
		return ErrCommentNotFound
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// CountComments returns the number of stored comments
func (s *CommentService) CountComments(ctx context.Context) (int64, error) {
	return s.commentRepo.Count(ctx)
}

// ensureTaskExists verifies that a task with the given ID is stored
func (s *CommentService) ensureTaskExists(ctx context.Context, taskID uint64) error {
	if !storable(taskID) {
		return ErrTaskNotFound
	}

	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to verify task: %w", err)
	}
	return nil
}
