package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-comment-api/internal/dto"
	apierrors "github.com/yukikurage/task-comment-api/internal/errors"
	"github.com/yukikurage/task-comment-api/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
	logger         *slog.Logger
}

func NewCommentHandler(commentService *services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// CommentRequest represents the request body for creating or updating a comment
type CommentRequest struct {
	Content string `json:"content"`
}

// ListComments returns the comments of a task in creation order
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := parseIDParam(c, taskIDParam)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), taskID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentList(comments))
}

// CreateComment adds a comment to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	taskID, ok := parseIDParam(c, taskIDParam)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), services.CreateCommentInput{
		TaskID:  taskID,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment replaces the content of a comment
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, commentIDParam)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes a single comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, commentIDParam)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
