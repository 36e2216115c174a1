package services

import (
	"testing"

	"github.com/mtakagi/task-manager-api/internal/models"
	"github.com/mtakagi/task-manager-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskServiceTest(t *testing.T) (*gorm.DB, *TaskService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewTaskService(repository.NewTaskRepository(db))
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestTaskService_CreateTask(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{Title: "buy milk"})
	require.NoError(t, err)
	require.Equal(t, "buy milk", task.Title)
	require.Equal(t, alice.ID, task.OwnerID)
	require.False(t, task.Completed)

	_, err = svc.CreateTask(alice.ID, CreateTaskInput{})
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_GetTask_CrossOwner(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	_, err = svc.GetTask(bob.ID, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UpdateTask_Partial(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{
		Title:       "original title",
		Description: "original description",
	})
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateTask(alice.ID, task.ID, UpdateTaskInput{
		Completed: &completed,
	})
	require.NoError(t, err)
	require.Equal(t, "original title", updated.Title)
	require.Equal(t, "original description", updated.Description)
	require.True(t, updated.Completed)

	title := "new title"
	updated, err = svc.UpdateTask(alice.ID, task.ID, UpdateTaskInput{
		Title: &title,
	})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "original description", updated.Description)
	require.True(t, updated.Completed)
}

func TestTaskService_UpdateTask_EmptyUpdate(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{
		Title:       "unchanged",
		Description: "unchanged description",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(alice.ID, task.ID, UpdateTaskInput{})
	require.NoError(t, err)
	require.Equal(t, "unchanged", updated.Title)
	require.Equal(t, "unchanged description", updated.Description)
	require.False(t, updated.Completed)
}

func TestTaskService_UpdateTask_EmptyTitleRejected(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{Title: "has title"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateTask(alice.ID, task.ID, UpdateTaskInput{Title: &empty})
	require.ErrorIs(t, err, ErrTitleEmpty)
}

func TestTaskService_DeleteTask_Idempotence(t *testing.T) {
	db, svc := setupTaskServiceTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	task, err := svc.CreateTask(alice.ID, CreateTaskInput{Title: "to delete"})
	require.NoError(t, err)

	// Cross-owner delete reads as a missing task
	require.ErrorIs(t, svc.DeleteTask(bob.ID, task.ID), ErrTaskNotFound)

	require.NoError(t, svc.DeleteTask(alice.ID, task.ID))
	require.ErrorIs(t, svc.DeleteTask(alice.ID, task.ID), ErrTaskNotFound)
}
