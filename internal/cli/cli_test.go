package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"taskClient/internal/cli"
	"taskClient/internal/models/task"
	"taskClient/internal/taskapitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, srv *taskapitest.Server, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", srv.URL}, args...)
	code := cli.Run(context.Background(), full, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, cli.ExitUsage, cli.Run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "usage: tasks")

	stdout.Reset()
	assert.Equal(t, cli.ExitSuccess, cli.Run(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "toggle <id>")

	assert.Equal(t, cli.ExitUsage, cli.Run(context.Background(), []string{"explode"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "explode"`)
}

func TestRun_ListEmpty(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	res := run(t, srv, "list")

	assert.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You don't have any tasks registered yet.")
	assert.Contains(t, res.stdout, "Tasks: 0  Completed: 0 of 0")
}

func TestRun_List(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()
	srv.Storage.Seed(
		task.Task{ID: "abc123", Title: "Buy milk", Color: task.ColorBlue},
		task.Task{ID: "def456", Title: "Pay rent", Color: task.ColorRed, Completed: true},
	)

	res := run(t, srv, "list")
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "abc123")
	assert.Contains(t, res.stdout, "[x]")
	assert.Contains(t, res.stdout, "Tasks: 2  Completed: 1 of 2")

	res = run(t, srv, "--json", "list")
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	var out struct {
		Tasks   []task.Task  `json:"tasks"`
		Summary task.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Len(t, out.Tasks, 2)
	assert.Equal(t, 1, out.Summary.Completed)
}

func TestRun_CreateToggleDelete(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	res := run(t, srv, "--json", "create", "--title", "  Buy milk ", "--color", "blue")
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	var created task.Task
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.Equal(t, "Buy milk", created.Title)

	res = run(t, srv, "toggle", created.ID)
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Tasks: 1  Completed: 1 of 1")

	res = run(t, srv, "update", created.ID, "--completed=false", "--color", "green")
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	got, err := srv.Storage.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Equal(t, task.ColorGreen, got.Color)
	assert.Equal(t, "Buy milk", got.Title)

	res = run(t, srv, "delete", created.ID)
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "deleted "+created.ID)

	res = run(t, srv, "delete", created.ID)
	assert.Equal(t, cli.ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "already deleted")
}

func TestRun_CreateInvalid(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	res := run(t, srv, "create", "--title", "no", "--color", "cyan")

	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Contains(t, res.stderr, "title: title must have at least 3 characters")
	assert.Contains(t, res.stderr, "color: color must be one of")
	assert.Equal(t, 0, srv.Requests())
}

func TestRun_Get(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()
	srv.Storage.Seed(
		task.Task{ID: "a1", Title: "First", Color: task.ColorBlue},
		task.Task{ID: "b2", Title: "Second", Color: task.ColorRed},
	)

	res := run(t, srv, "get", "b2", "a1")
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Less(t, bytes.Index([]byte(res.stdout), []byte("b2")), bytes.Index([]byte(res.stdout), []byte("a1")))

	res = run(t, srv, "get", "does-not-exist")
	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Contains(t, res.stderr, "task does-not-exist not found")
}

func TestRun_UsageErrors(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	tests := [][]string{
		{"get"},
		{"toggle"},
		{"delete", "a", "b"},
		{"update", "abc123"},
		{"create", "--bogus"},
		{"import"},
	}
	for _, args := range tests {
		res := run(t, srv, args...)
		assert.Equal(t, cli.ExitUsage, res.code, args)
	}
	assert.Equal(t, 0, srv.Requests())
}

func TestRun_ServerDown(t *testing.T) {
	srv := taskapitest.NewServer()
	srv.Close()

	res := run(t, srv, "list")
	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Contains(t, res.stderr, "unable to connect to the task API")
}

func TestRun_ServerError(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()
	srv.FailWith(http.StatusInternalServerError)

	res := run(t, srv, "list")
	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Contains(t, res.stderr, "500 Internal Server Error")
}

func TestRun_Import(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "tasks.yml")
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  - title: Buy milk\n    color: blue\n  - title: Pay rent\n    color: red\n    completed: true\n"), 0o600))

	res := run(t, srv, "import", path)
	require.Equal(t, cli.ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Tasks: 2  Completed: 1 of 2")

	res = run(t, srv, "import", filepath.Join(t.TempDir(), "absent.yml"))
	assert.Equal(t, cli.ExitFailure, res.code)
}
