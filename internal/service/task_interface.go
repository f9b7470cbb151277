package service

import (
	"context"

	"taskClient/internal/models/task"
)

// TaskAPI is the remote task resource as the service sees it; *apiclient.Client
// satisfies it.
type TaskAPI interface {
	ListTasks(context.Context) ([]task.Task, error)
	GetTask(context.Context, string) (task.Task, error)
	CreateTask(context.Context, task.CreateTaskRequest) (task.Task, error)
	UpdateTask(context.Context, string, task.UpdateTaskRequest) (task.Task, error)
	DeleteTask(context.Context, string) error
}
