package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskClient/internal/logger"
	"taskClient/internal/models/task"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Creator is the part of the task service the importer needs.
type Creator interface {
	Create(ctx context.Context, input map[string]any) (task.Task, error)
	Update(ctx context.Context, id string, input map[string]any) (task.Task, error)
}

// YAMLInput is the root of an import document:
//
//	tasks:
//	  - title: Buy milk
//	    color: blue
//	  - title: Pay rent
//	    color: red
//	    completed: true
type YAMLInput struct {
	Tasks []map[string]any `yaml:"tasks"`
}

// EntryError points at the document entry that failed validation.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("task #%d: %v", e.Index+1, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Import validates every entry before creating any task, so a bad document
// creates nothing. It then creates entries in document order and stops at the
// first API failure. The tasks created so far are always returned.
func Import(ctx context.Context, svc Creator, r io.Reader) ([]task.Task, error) {
	var input YAMLInput
	if err := yaml.NewDecoder(r).Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no tasks found in YAML")
		}
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Tasks) == 0 {
		return nil, fmt.Errorf("no tasks found in YAML")
	}

	var problems []error
	for i, entry := range input.Tasks {
		if _, err := task.ValidateCreate(entry); err != nil {
			problems = append(problems, &EntryError{Index: i, Err: err})
		}
		if _, err := task.ValidateUpdate(completedOnly(entry)); err != nil {
			problems = append(problems, &EntryError{Index: i, Err: err})
		}
	}
	if len(problems) > 0 {
		logger.Warn("Import: document rejected", zap.Int("invalid_entries", len(problems)))
		return nil, errors.Join(problems...)
	}

	created := make([]task.Task, 0, len(input.Tasks))
	for i, entry := range input.Tasks {
		t, err := svc.Create(ctx, entry)
		if err != nil {
			return created, &EntryError{Index: i, Err: err}
		}

		if done, _ := entry[task.FieldCompleted].(bool); done {
			updated, err := svc.Update(ctx, t.ID, completedOnly(entry))
			if err != nil {
				created = append(created, t)
				return created, &EntryError{Index: i, Err: err}
			}
			t = updated
		}
		created = append(created, t)
	}

	logger.Info("Import: tasks created", zap.Int("count", len(created)))
	return created, nil
}

func completedOnly(entry map[string]any) map[string]any {
	v, ok := entry[task.FieldCompleted]
	if !ok {
		return map[string]any{}
	}
	return map[string]any{task.FieldCompleted: v}
}
