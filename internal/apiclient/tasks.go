package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"taskClient/internal/models/task"
)

// ListTasks returns tasks in the order the server sent them.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, call{op: "list_tasks", method: http.MethodGet, out: &tasks}); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (task.Task, error) {
	cl := call{op: "get_task", method: http.MethodGet, id: id}
	if err := c.checkID(cl); err != nil {
		return task.Task{}, err
	}

	var t task.Task
	cl.out = &t
	if err := c.do(ctx, cl); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// CreateTask sends req as is; callers validate it with task.ValidateCreate first.
func (c *Client) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, call{op: "create_task", method: http.MethodPost, write: true, in: req, out: &t})
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// UpdateTask sends only the fields set on req.
func (c *Client) UpdateTask(ctx context.Context, id string, req task.UpdateTaskRequest) (task.Task, error) {
	cl := call{op: "update_task", method: http.MethodPut, id: id, write: true, in: req}
	if err := c.checkID(cl); err != nil {
		return task.Task{}, err
	}

	var t task.Task
	cl.out = &t
	if err := c.do(ctx, cl); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// DeleteTask removes the task. Deleting an id that is already gone fails with
// a NotFoundError.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	cl := call{op: "delete_task", method: http.MethodDelete, id: id}
	if err := c.checkID(cl); err != nil {
		return err
	}
	return c.do(ctx, cl)
}

// checkID rejects blank ids before any request is made: an empty id would
// address the collection instead of a task.
func (c *Client) checkID(cl call) error {
	if strings.TrimSpace(cl.id) != "" {
		return nil
	}
	target := c.baseURL.JoinPath("tasks").String()
	return c.fail(cl, target, time.Now(), task.NewValidationError(task.FieldID, "id is required"))
}
