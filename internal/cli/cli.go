package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"taskClient/internal/apiclient"
	"taskClient/internal/app"
	"taskClient/internal/config"
	"taskClient/internal/models/task"
	"taskClient/internal/service"

	"github.com/spf13/pflag"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type command struct {
	usage   string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"list":   {usage: "list", summary: "list all tasks", run: runList},
	"get":    {usage: "get <id>...", summary: "show one or more tasks", run: runGet},
	"create": {usage: "create --title <title> --color <color>", summary: "create a task", run: runCreate},
	"update": {usage: "update <id> [--title t] [--color c] [--completed[=false]]", summary: "change a task", run: runUpdate},
	"toggle": {usage: "toggle <id>", summary: "flip a task between done and not done", run: runToggle},
	"delete": {usage: "delete <id>", summary: "delete a task", run: runDelete},
	"import": {usage: "import <file.yaml>", summary: "create tasks from a YAML document", run: runImport},
}

// env is what a command runs against.
type env struct {
	svc    *service.TaskService
	out    io.Writer
	errOut io.Writer
	json   bool
}

// Run executes one command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("tasks", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	configPath := fs.StringP("config", "c", "", "YAML config file")
	apiURL := fs.String("api-url", "", "task API base URL, overrides config and "+config.EnvAPIURL)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr, fs)
		return ExitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 || rest[0] == "help" {
		printUsage(stdout, fs)
		if len(rest) == 0 {
			return ExitUsage
		}
		return ExitSuccess
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		printUsage(stderr, fs)
		return ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return ExitFailure
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	defer a.Shutdown()

	e := &env{svc: a.Service(), out: stdout, errOut: stderr, json: *asJSON}
	if err := cmd.run(ctx, e, rest[1:]); err != nil {
		return report(stderr, rest[0], err)
	}
	return ExitSuccess
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: tasks [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-60s %s\n", commands[name].usage, commands[name].summary)
	}

	fmt.Fprintln(w, "\nflags:")
	fmt.Fprint(w, fs.FlagUsages())
}

func report(w io.Writer, name string, err error) int {
	var (
		uerr *usageError
		verr *task.ValidationError
		nerr *apiclient.NetworkError
	)
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(w, "%s: %s\nusage: tasks %s\n", name, uerr.msg, commands[name].usage)
		return ExitUsage
	case errors.As(err, &verr):
		fmt.Fprintf(w, "%s: invalid input\n", name)
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
	case apiclient.IsNotFound(err):
		var nf *apiclient.NotFoundError
		errors.As(err, &nf)
		fmt.Fprintf(w, "%s: task %s not found\n", name, nf.ID)
	case errors.As(err, &nerr):
		if nerr.Timeout {
			fmt.Fprintf(w, "%s: the task API did not answer in time\n", name)
		} else {
			fmt.Fprintf(w, "%s: unable to connect to the task API: %v\n", name, nerr.Err)
		}
	default:
		fmt.Fprintf(w, "%s: %v\n", name, err)
	}
	return ExitFailure
}
