package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskClient/internal/importer"
	"taskClient/internal/models/task"

	"github.com/spf13/pflag"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runList(ctx context.Context, e *env, args []string) error {
	if len(args) != 0 {
		return usagef("unexpected arguments %v", args)
	}
	tasks, summary, err := e.svc.List(ctx)
	if err != nil {
		return err
	}
	return e.printList(tasks, summary)
}

func runGet(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 {
		return usagef("at least one task id is required")
	}
	tasks, err := e.svc.GetMany(ctx, args)
	if err != nil {
		return err
	}
	return e.printTasks(tasks)
}

func runCreate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("create")
	title := fs.StringP("title", "t", "", "task title, 3 to 100 characters")
	color := fs.StringP("color", "C", "", "one of the task colors")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if fs.NArg() != 0 {
		return usagef("unexpected arguments %v", fs.Args())
	}

	input := map[string]any{}
	if fs.Changed("title") {
		input[task.FieldTitle] = *title
	}
	if fs.Changed("color") {
		input[task.FieldColor] = *color
	}

	created, err := e.svc.Create(ctx, input)
	if err != nil {
		return err
	}
	if err := e.printTasks([]task.Task{created}); err != nil {
		return err
	}
	e.reload(ctx)
	return nil
}

func runUpdate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("update")
	title := fs.StringP("title", "t", "", "new title")
	color := fs.StringP("color", "C", "", "new color")
	completed := fs.Bool("completed", false, "mark done, or not done with --completed=false")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if fs.NArg() != 1 {
		return usagef("exactly one task id is required")
	}

	input := map[string]any{}
	if fs.Changed("title") {
		input[task.FieldTitle] = *title
	}
	if fs.Changed("color") {
		input[task.FieldColor] = *color
	}
	if fs.Changed("completed") {
		input[task.FieldCompleted] = *completed
	}
	if len(input) == 0 {
		return usagef("nothing to update")
	}

	updated, err := e.svc.Update(ctx, fs.Arg(0), input)
	if err != nil {
		return err
	}
	if err := e.printTasks([]task.Task{updated}); err != nil {
		return err
	}
	e.reload(ctx)
	return nil
}

func runToggle(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return usagef("exactly one task id is required")
	}
	toggled, err := e.svc.Toggle(ctx, args[0])
	if err != nil {
		return err
	}
	if err := e.printTasks([]task.Task{toggled}); err != nil {
		return err
	}
	e.reload(ctx)
	return nil
}

func runDelete(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return usagef("exactly one task id is required")
	}
	gone, err := e.svc.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if gone {
		fmt.Fprintf(e.errOut, "task %s was already deleted\n", args[0])
	} else if !e.json {
		fmt.Fprintf(e.out, "deleted %s\n", args[0])
	}
	e.reload(ctx)
	return nil
}

func runImport(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return usagef("exactly one file is required")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	created, err := importer.Import(ctx, e.svc, f)
	if len(created) > 0 {
		if perr := e.printTasks(created); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	e.reload(ctx)
	return nil
}

// reload re-fetches the list after a mutation and prints the counters. The
// mutation already succeeded, so a failed reload is only a warning.
func (e *env) reload(ctx context.Context) {
	if e.json {
		return
	}
	_, summary, err := e.svc.List(ctx)
	if err != nil {
		fmt.Fprintf(e.errOut, "warning: could not reload tasks: %v\n", err)
		return
	}
	e.printSummary(summary)
}
