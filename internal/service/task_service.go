package service

import (
	"context"
	"errors"
	"fmt"

	"taskClient/internal/apiclient"
	"taskClient/internal/logger"
	"taskClient/internal/models/task"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelFetches bounds GetMany.
const maxParallelFetches = 4

// TaskService validates input before it reaches the API and composes the
// client calls a task list needs. It keeps no copy of the tasks: every read
// goes to the server.
type TaskService struct {
	api TaskAPI
}

func NewTaskService(api TaskAPI) *TaskService {
	return &TaskService{api: api}
}

func (s *TaskService) List(ctx context.Context) ([]task.Task, task.Summary, error) {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return nil, task.Summary{}, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, task.Summarize(tasks), nil
}

func (s *TaskService) Get(ctx context.Context, id string) (task.Task, error) {
	t, err := s.api.GetTask(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			logger.Info("Service: task not found", zap.String("task_id", id))
		}
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// GetMany fetches ids concurrently and returns them in the order asked. The
// first failure cancels the remaining fetches.
func (s *TaskService) GetMany(ctx context.Context, ids []string) ([]task.Task, error) {
	out := make([]task.Task, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			t, err := s.Get(gctx, id)
			if err != nil {
				return err
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates input and, only if it passes, creates the task. A
// *task.ValidationError is returned unwrapped so callers can render it.
func (s *TaskService) Create(ctx context.Context, input map[string]any) (task.Task, error) {
	req, err := task.ValidateCreate(input)
	if err != nil {
		logger.Warn("Service: create rejected", zap.Error(err))
		return task.Task{}, err
	}

	created, err := s.api.CreateTask(ctx, req)
	if err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}
	logger.Info("Service: task created", zap.String("task_id", created.ID))
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input map[string]any) (task.Task, error) {
	req, err := task.ValidateUpdate(input)
	if err != nil {
		logger.Warn("Service: update rejected", zap.String("task_id", id), zap.Error(err))
		return task.Task{}, err
	}

	updated, err := s.api.UpdateTask(ctx, id, req)
	if err != nil {
		return task.Task{}, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Toggle flips completion using the server's current value of the task.
func (s *TaskService) Toggle(ctx context.Context, id string) (task.Task, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	completed := !current.Completed
	updated, err := s.api.UpdateTask(ctx, id, task.UpdateTaskRequest{Completed: &completed})
	if err != nil {
		return task.Task{}, fmt.Errorf("toggle task: %w", err)
	}
	return updated, nil
}

// Delete removes a task. A task that is already gone is reported through
// alreadyGone with a nil error.
func (s *TaskService) Delete(ctx context.Context, id string) (alreadyGone bool, err error) {
	err = s.api.DeleteTask(ctx, id)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, apiclient.ErrNotFound):
		logger.Info("Service: task already deleted", zap.String("task_id", id))
		return true, nil
	default:
		return false, fmt.Errorf("delete task: %w", err)
	}
}
