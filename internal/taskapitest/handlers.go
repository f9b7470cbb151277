package taskapitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"taskClient/internal/logger"
	"taskClient/internal/models/task"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskHandler serves the task REST contract over a Storage.
type TaskHandler struct {
	Storage *Storage
}

func NewTaskHandler(storage *Storage) TaskHandler {
	return TaskHandler{Storage: storage}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusOK, h.Storage.GetAll(r.Context()))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.Storage.GetByID(r.Context(), id)
	if err != nil {
		h.notFound(w, r, id, err)
		return
	}
	responseWithJSON(w, http.StatusOK, found)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	req, err := task.ValidateCreate(input)
	if err != nil {
		logger.Warn("HTTP: validation failed", zap.String("operation", "create_task"), zap.Error(err))
		responseWithValidationError(w, err)
		return
	}

	created := h.Storage.Create(r.Context(), req)
	responseWithJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	req, err := task.ValidateUpdate(input)
	if err != nil {
		logger.Warn("HTTP: validation failed", zap.String("operation", "update_task"), zap.Error(err))
		responseWithValidationError(w, err)
		return
	}

	updated, err := h.Storage.Update(r.Context(), id, req.Options()...)
	if err != nil {
		h.notFound(w, r, id, err)
		return
	}
	responseWithJSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Storage.Delete(r.Context(), id); err != nil {
		h.notFound(w, r, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return nil, false
	}

	defer r.Body.Close()
	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Warn("HTTP: invalid JSON body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return nil, false
	}
	return input, true
}

func (h *TaskHandler) notFound(w http.ResponseWriter, r *http.Request, id string, err error) {
	if !errors.Is(err, ErrNotFound) {
		logger.Error("HTTP: storage failure", err)
		responseWithError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	responseWithError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("task %s not found", id),
		toPayload("id", id))
}
