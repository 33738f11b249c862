package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-comment-api/internal/database"
	"github.com/yukikurage/task-comment-api/internal/dto"
	apierrors "github.com/yukikurage/task-comment-api/internal/errors"
	"github.com/yukikurage/task-comment-api/internal/models"
	"github.com/yukikurage/task-comment-api/internal/repository"
	"github.com/yukikurage/task-comment-api/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// handlerSuite holds the database and router shared by the handler test suites
type handlerSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (s *handlerSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	s.db, err = database.Open("sqlite", ":memory:", logger.Silent)
	s.Require().NoError(err)

	// Run migrations
	s.Require().NoError(database.Migrate(s.db))

	taskRepo := repository.NewTaskRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo), log)
	commentHandler := NewCommentHandler(services.NewCommentService(commentRepo, taskRepo), log)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	s.router = gin.New()
	s.router.GET("/api/tasks", taskHandler.ListTasks)
	s.router.POST("/api/tasks", taskHandler.CreateTask)
	s.router.PUT("/api/tasks/:id", taskHandler.UpdateTask)
	s.router.DELETE("/api/tasks/:id", taskHandler.DeleteTask)
	s.router.GET("/api/tasks/:id/comments", commentHandler.ListComments)
	s.router.POST("/api/tasks/:id/comments", commentHandler.CreateComment)
	s.router.PUT("/api/comments/:id", commentHandler.UpdateComment)
	s.router.DELETE("/api/comments/:id", commentHandler.DeleteComment)
}

// TearDownTest runs after each test
func (s *handlerSuite) TearDownTest() {
	s.Require().NoError(database.Close(s.db))
}

// request sends body as JSON (unless it is already a string) and records the response
func (s *handlerSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *handlerSuite) decodeError(w *httptest.ResponseRecorder) apierrors.APIError {
	var apiErr apierrors.APIError
	s.decode(w, &apiErr)
	return apiErr
}

func (s *handlerSuite) createTask(title, description string) dto.TaskDTO {
	w := s.request(http.MethodPost, "/api/tasks", gin.H{"title": title, "description": description})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	s.decode(w, &task)
	return task
}

func (s *handlerSuite) createComment(taskID uint64, content string) dto.CommentDTO {
	w := s.request(http.MethodPost, taskCommentsURL(taskID), gin.H{"content": content})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var comment dto.CommentDTO
	s.decode(w, &comment)
	return comment
}

func (s *handlerSuite) listComments(taskID uint64) []dto.CommentDTO {
	w := s.request(http.MethodGet, taskCommentsURL(taskID), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var comments []dto.CommentDTO
	s.decode(w, &comments)
	return comments
}

func (s *handlerSuite) countComments(taskID uint64) int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Comment{}).Where("task_id = ?", taskID).Count(&count).Error)
	return count
}
