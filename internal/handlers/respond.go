package handlers

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-comment-api/internal/errors"
	"github.com/yukikurage/task-comment-api/internal/middleware"
	"github.com/yukikurage/task-comment-api/internal/services"
)

// idParam names the record a path id refers to and how to answer for it
type idParam struct {
	name     string
	invalid  string
	notFound string
}

var (
	taskIDParam    = idParam{name: "id", invalid: "Invalid task ID", notFound: "Task not found"}
	commentIDParam = idParam{name: "id", invalid: "Invalid comment ID", notFound: "Comment not found"}
)

// parseIDParam reads a numeric path parameter, answering 400 when it is not one.
// Ids above the signed 64-bit range can never be stored, so they answer 404.
func parseIDParam(c *gin.Context, p idParam) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(p.name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, p.invalid)
		return 0, false
	}
	if id > math.MaxInt64 {
		apierrors.NotFound(c, p.notFound)
		return 0, false
	}
	return id, true
}

// respondServiceError maps service errors to HTTP responses
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, "Comment not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title is required")
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, "Content is required")
	case errors.Is(err, services.ErrCommentTaskGone):
		apierrors.Conflict(c, "Task was deleted while the comment was being created")
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("error", err),
		)
		apierrors.InternalError(c, "")
	}
}
