package task

// TaskOption mutates one field of a stored task.
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(t *Task) {
		t.Title = title
	}
}

func WithColor(color Color) TaskOption {
	return func(t *Task) {
		t.Color = color
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(t *Task) {
		t.Completed = completed
	}
}

// Options turns the supplied fields of a partial update into task options.
// Absent fields produce no option.
func (r UpdateTaskRequest) Options() []TaskOption {
	var opts []TaskOption
	if r.Title != nil {
		opts = append(opts, WithTitle(*r.Title))
	}
	if r.Color != nil {
		opts = append(opts, WithColor(*r.Color))
	}
	if r.Completed != nil {
		opts = append(opts, WithCompleted(*r.Completed))
	}
	return opts
}

// Apply returns a copy of t with opts applied. ID and timestamps are never touched.
func Apply(t Task, opts ...TaskOption) Task {
	id, created, updated := t.ID, t.CreatedAt, t.UpdatedAt
	for _, opt := range opts {
		if opt != nil {
			opt(&t)
		}
	}
	t.ID, t.CreatedAt, t.UpdatedAt = id, created, updated
	return t
}
