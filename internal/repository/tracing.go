package repository

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/yukikurage/task-comment-api/internal/repository")

// endSpan records err on the span unless it is a plain miss, then ends it.
func endSpan(span trace.Span, err error) {
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		span.SetAttributes(attribute.Bool("db.found", false))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
