package taskapitest

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskClient/internal/models/task"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// timestampLayout matches what JavaScript's Date.toISOString produces.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Storage keeps tasks in insertion order. Values are copied in and out.
type Storage struct {
	storage map[string]*task.Task
	mtx     *sync.RWMutex
	ids     []string
	now     func() time.Time
}

func NewStorage() *Storage {
	return &Storage{
		storage: make(map[string]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
		now:     time.Now,
	}
}

func (s *Storage) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func (s *Storage) Create(ctx context.Context, req task.CreateTaskRequest) task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ts := s.timestamp()
	created := &task.Task{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Color:     req.Color,
		Completed: false,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.storage[created.ID] = created
	s.ids = append(s.ids, created.ID)
	return *created
}

// Seed stores tasks as given; an empty ID or timestamp is filled in.
func (s *Storage) Seed(tasks ...task.Task) []task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.CreatedAt == "" {
			t.CreatedAt = s.timestamp()
		}
		if t.UpdatedAt == "" {
			t.UpdatedAt = t.CreatedAt
		}
		if _, exists := s.storage[t.ID]; !exists {
			s.ids = append(s.ids, t.ID)
		}
		stored := t
		s.storage[t.ID] = &stored
		out = append(out, t)
	}
	return out
}

func (s *Storage) GetByID(ctx context.Context, id string) (task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return *found, nil
}

func (s *Storage) GetAll(ctx context.Context) []task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, *s.storage[id])
	}
	return res
}

func (s *Storage) Update(ctx context.Context, id string, opts ...task.TaskOption) (task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok {
		return task.Task{}, ErrNotFound
	}

	updated := task.Apply(*existing, opts...)
	updated.UpdatedAt = s.timestamp()
	s.storage[id] = &updated
	return updated, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return ErrNotFound
	}
	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.ids)
}
