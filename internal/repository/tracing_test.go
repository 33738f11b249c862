package repository

import (
	"errors"
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"
)

// recordSpans routes the package tracer to an in-memory recorder for one test
func (s *RepositoryTestSuite) recordSpans() *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := tracer
	tracer = provider.Tracer("test")
	s.T().Cleanup(func() {
		tracer = previous
		_ = provider.Shutdown(s.ctx)
	})
	return recorder
}

func (s *RepositoryTestSuite) onlySpan(recorder *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	spans := recorder.Ended()
	s.Require().Len(spans, 1)
	return spans[0]
}

func attributeValue(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func (s *RepositoryTestSuite) TestSpan_MissIsNotAnError() {
	recorder := s.recordSpans()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "created_at"}))

	_, err := s.taskRepo.FindByID(s.ctx, 77)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	span := s.onlySpan(recorder)
	s.Equal("TaskRepository.FindByID", span.Name())
	s.Equal(codes.Unset, span.Status().Code)
	s.Empty(span.Events())

	found, ok := attributeValue(span, "db.found")
	s.Require().True(ok)
	s.False(found.AsBool())

	id, ok := attributeValue(span, "task.id")
	s.Require().True(ok)
	s.Equal(int64(77), id.AsInt64())
}

func (s *RepositoryTestSuite) TestSpan_FailureRecordsError() {
	recorder := s.recordSpans()
	dbErr := errors.New("connection reset")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments"`)).
		WillReturnError(dbErr)

	_, err := s.commentRepo.ListByTask(s.ctx, 3)
	s.Require().ErrorIs(err, dbErr)

	span := s.onlySpan(recorder)
	s.Equal("CommentRepository.ListByTask", span.Name())
	s.Equal(codes.Error, span.Status().Code)
	s.Equal("connection reset", span.Status().Description)
	s.Require().Len(span.Events(), 1)
	s.Equal("exception", span.Events()[0].Name)

	_, ok := attributeValue(span, "db.found")
	s.False(ok)
}

func (s *RepositoryTestSuite) TestSpan_SuccessCarriesResultAttributes() {
	recorder := s.recordSpans()
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.Require().NoError(s.taskRepo.Delete(s.ctx, 5))

	span := s.onlySpan(recorder)
	s.Equal(codes.Unset, span.Status().Code)
	deleted, ok := attributeValue(span, "comment.deleted")
	s.Require().True(ok)
	s.Equal(int64(2), deleted.AsInt64())
}
