package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/task-comment-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that struct tags cannot express
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Comment listing filters by task and orders by creation time
		{&models.Comment{}, "comments", "idx_comments_task_id_created_at", "task_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index",
			slog.String("index", idx.name),
			slog.String("table", idx.table),
			slog.String("columns", idx.columns),
		)
	}

	return nil
}

// MigrateDatabase runs the migrations that follow AutoMigrate
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
