package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-comment-api/internal/database"
	"github.com/yukikurage/task-comment-api/internal/models"
	"gorm.io/gorm/logger"
)

func TestMigrateCommand_CreatesSchema(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dsn := filepath.Join(dir, "tasks.db")
	t.Setenv("DB_DSN", dsn)
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate"})
	require.NoError(t, cmd.Execute())

	// The command closed its connection; reopen to inspect the schema
	db, err := database.Open("sqlite", dsn, logger.Silent)
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable(&models.Task{}))
	assert.True(t, db.Migrator().HasTable(&models.Comment{}))
}

func TestMigrateCommand_BadConfigFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)

	assert.Error(t, cmd.Execute())
}
