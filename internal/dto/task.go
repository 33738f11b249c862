package dto

import (
	"time"

	"github.com/yukikurage/task-comment-api/internal/models"
	"github.com/yukikurage/task-comment-api/internal/repository"
)

// TaskDTO represents a task in create and update responses
type TaskDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskListItemDTO represents a task in list responses
type TaskListItemDTO struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	CommentsCount int64     `json:"comments_count"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
	}
}

// ToTaskListItemDTO converts a task summary to TaskListItemDTO
func ToTaskListItemDTO(summary repository.TaskSummary) TaskListItemDTO {
	return TaskListItemDTO{
		ID:            summary.ID,
		Title:         summary.Title,
		Description:   summary.Description,
		CreatedAt:     summary.CreatedAt.UTC(),
		CommentsCount: summary.CommentsCount,
	}
}

// ToTaskList converts task summaries; the result is never nil so it encodes as []
func ToTaskList(summaries []repository.TaskSummary) []TaskListItemDTO {
	items := make([]TaskListItemDTO, len(summaries))
	for i, summary := range summaries {
		items[i] = ToTaskListItemDTO(summary)
	}
	return items
}
