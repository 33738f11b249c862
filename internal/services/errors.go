package services

import (
	"errors"
	"fmt"
	"math"
)

// Error classes; handlers translate these to HTTP statuses
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrIntegrity  = errors.New("integrity violation")
)

var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrTitleRequired   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrContentRequired = fmt.Errorf("%w: content is required", ErrValidation)
	ErrCommentTaskGone = fmt.Errorf("%w: comment references a task that no longer exists", ErrIntegrity)
)

// storable reports whether id fits the signed 64-bit keys every supported database uses
func storable(id uint64) bool {
	return id <= math.MaxInt64
}
