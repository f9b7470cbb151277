package taskapitest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskClient/internal/models/task"
	"taskClient/internal/taskapitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	storage := taskapitest.NewStorage()
	seeded := storage.Seed(task.Task{ID: "abc123", Title: "Buy milk", Color: task.ColorBlue})[0]
	handler := taskapitest.NewHandler(storage)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		contentType    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "list",
			method:         http.MethodGet,
			path:           "/tasks",
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"abc123"`,
		},
		{
			name:           "get",
			method:         http.MethodGet,
			path:           "/tasks/abc123",
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Buy milk"`,
		},
		{
			name:           "get missing",
			method:         http.MethodGet,
			path:           "/tasks/does-not-exist",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"NOT_FOUND"`,
		},
		{
			name:           "create",
			method:         http.MethodPost,
			path:           "/tasks",
			body:           `{"title":"  Walk dog ","color":"green"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusCreated,
			expectedBody:   `"title":"Walk dog"`,
		},
		{
			name:           "create with charset",
			method:         http.MethodPost,
			path:           "/tasks",
			body:           `{"title":"Walk cat","color":"green"}`,
			contentType:    "application/json; charset=utf-8",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create invalid",
			method:         http.MethodPost,
			path:           "/tasks",
			body:           `{"title":"x","color":"cyan"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"fields":[`,
		},
		{
			name:           "create wrong content type",
			method:         http.MethodPost,
			path:           "/tasks",
			body:           `{"title":"Walk dog","color":"green"}`,
			contentType:    "text/plain",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "create broken json",
			method:         http.MethodPost,
			path:           "/tasks",
			body:           `{"title":`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"BAD_REQUEST"`,
		},
		{
			name:           "update",
			method:         http.MethodPut,
			path:           "/tasks/abc123",
			body:           `{"completed":true}`,
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
			expectedBody:   `"completed":true`,
		},
		{
			name:           "update missing",
			method:         http.MethodPut,
			path:           "/tasks/nope",
			body:           `{"completed":true}`,
			contentType:    "application/json",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "delete missing",
			method:         http.MethodDelete,
			path:           "/tasks/nope",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}

	t.Run("delete", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/"+seeded.ID, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandler_ValidationBody(t *testing.T) {
	handler := taskapitest.NewHandler(taskapitest.NewStorage())

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"ok title","color":"teal"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields []task.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "color", body.Fields[0].Field)
}

func TestServer_FailWith(t *testing.T) {
	srv := taskapitest.NewServer()
	defer srv.Close()

	srv.FailWith(http.StatusServiceUnavailable)
	resp, err := http.Get(srv.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	srv.FailWith(0)
	resp, err = http.Get(srv.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, srv.Requests())
}
