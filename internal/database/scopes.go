package database

import (
	"gorm.io/gorm"
)

// InCreationOrder orders rows oldest first, breaking timestamp ties by id
func InCreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// ByTask restricts a comment query to a single task
func ByTask(taskID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("task_id = ?", taskID)
	}
}
