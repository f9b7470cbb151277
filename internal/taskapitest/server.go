// Package taskapitest runs an in-process fake of the remote task API for
// tests. It follows the same wire contract as the real server: JSON bodies,
// 201 on create, 204 on delete, 404 for unknown ids and 400 with a "fields"
// list when validation fails.
package taskapitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"taskClient/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	*httptest.Server
	Storage *Storage

	requests atomic.Int64

	mtx        sync.Mutex
	failStatus int
	delay      time.Duration
}

type Option func(*options)

type options struct {
	rateLimit int
}

// WithRateLimit answers with 429 after rpm requests per minute.
func WithRateLimit(rpm int) Option {
	return func(o *options) {
		o.rateLimit = rpm
	}
}

// NewServer starts a fake API; callers must Close it.
func NewServer(opts ...Option) *Server {
	s := &Server{Storage: NewStorage()}
	s.Server = httptest.NewServer(s.handler(opts...))
	return s
}

// NewHandler returns the fake API router over storage without starting a listener.
func NewHandler(storage *Storage, opts ...Option) http.Handler {
	s := &Server{Storage: storage}
	return s.handler(opts...)
}

func (s *Server) handler(opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	taskHandler := NewTaskHandler(s.Storage)

	r := chi.NewRouter()
	r.Use(s.count)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	if o.rateLimit > 0 {
		r.Use(middleware.RateLimit(o.rateLimit))
	}
	r.Use(s.faults)

	r.Get("/tasks", taskHandler.ListTasks)       // GET /tasks
	r.Post("/tasks", taskHandler.CreateTask)     // POST /tasks
	r.Get("/tasks/{id}", taskHandler.GetTask)    // GET /tasks/{id}
	r.Put("/tasks/{id}", taskHandler.UpdateTask) // PUT /tasks/{id}
	r.Delete("/tasks/{id}", taskHandler.DeleteTask)

	return r
}

// FailWith makes every following request answer with status; 0 restores
// normal behaviour.
func (s *Server) FailWith(status int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.failStatus = status
}

// Delay holds every following request for d, or until the caller goes away.
func (s *Server) Delay(d time.Duration) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.delay = d
}

// Requests is the number of requests received so far.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) faults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mtx.Lock()
		status, delay := s.failStatus, s.delay
		s.mtx.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if status != 0 {
			responseWithError(w, status, "INJECTED_FAILURE", http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}
