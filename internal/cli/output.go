package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"taskClient/internal/models/task"
)

type listOutput struct {
	Tasks   []task.Task  `json:"tasks"`
	Summary task.Summary `json:"summary"`
}

func (e *env) printList(tasks []task.Task, summary task.Summary) error {
	if e.json {
		return e.printJSON(listOutput{Tasks: tasks, Summary: summary})
	}
	if len(tasks) == 0 {
		fmt.Fprintln(e.out, "You don't have any tasks registered yet.")
	} else if err := e.printTable(tasks); err != nil {
		return err
	}
	e.printSummary(summary)
	return nil
}

func (e *env) printTasks(tasks []task.Task) error {
	if e.json {
		if len(tasks) == 1 {
			return e.printJSON(tasks[0])
		}
		return e.printJSON(tasks)
	}
	return e.printTable(tasks)
}

func (e *env) printTable(tasks []task.Task) error {
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tCOLOR\tTITLE")
	for _, t := range tasks {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, done, t.Color, t.Title)
	}
	return tw.Flush()
}

func (e *env) printSummary(s task.Summary) {
	fmt.Fprintf(e.out, "Tasks: %d  Completed: %d of %d\n", s.Total, s.Completed, s.Total)
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
