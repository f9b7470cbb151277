package taskapitest_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"taskClient/internal/models/task"
	"taskClient/internal/taskapitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()

	created := storage.Create(ctx, task.CreateTaskRequest{Title: "Buy milk", Color: task.ColorBlue})

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestStorage_GetByID_NotFound(t *testing.T) {
	storage := taskapitest.NewStorage()

	_, err := storage.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, taskapitest.ErrNotFound)
}

func TestStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()
	created := storage.Create(ctx, task.CreateTaskRequest{Title: "Original", Color: task.ColorRed})

	updated, err := storage.Update(ctx, created.ID, task.WithCompleted(true))
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = storage.Update(ctx, "missing", task.WithTitle("x"))
	assert.ErrorIs(t, err, taskapitest.ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()
	first := storage.Create(ctx, task.CreateTaskRequest{Title: "First", Color: task.ColorRed})
	second := storage.Create(ctx, task.CreateTaskRequest{Title: "Second", Color: task.ColorRed})

	require.NoError(t, storage.Delete(ctx, first.ID))
	assert.ErrorIs(t, storage.Delete(ctx, first.ID), taskapitest.ErrNotFound)

	all := storage.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestStorage_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()
	seeded := storage.Seed(
		task.Task{ID: "c", Title: "Third", Color: task.ColorGray},
		task.Task{ID: "a", Title: "First", Color: task.ColorGray},
		task.Task{ID: "b", Title: "Second", Color: task.ColorGray},
	)
	require.Len(t, seeded, 3)

	var ids []string
	for _, got := range storage.GetAll(ctx) {
		ids = append(ids, got.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()
	created := storage.Create(ctx, task.CreateTaskRequest{Title: "Original", Color: task.ColorRed})

	all := storage.GetAll(ctx)
	all[0].Title = "changed outside"

	got, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := taskapitest.NewStorage()
	taskCount := 100
	goroutines := 10

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := 0; j < taskCount/goroutines; j++ {
				created := storage.Create(ctx, task.CreateTaskRequest{
					Title: fmt.Sprintf("Task %d-%d", workerID, j),
					Color: task.ColorGreen,
				})
				_, _ = storage.Update(ctx, created.ID, task.WithCompleted(true))
				_ = storage.GetAll(ctx)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, taskCount, storage.Len())
	assert.Equal(t, task.Summary{Total: taskCount, Completed: taskCount}, task.Summarize(storage.GetAll(ctx)))
}
