package models

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
