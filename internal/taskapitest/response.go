package taskapitest

import (
	"encoding/json"
	"mime"
	"net/http"

	"taskClient/internal/models/task"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func responseWithJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// responseWithError writes {"error": code, "message": ..., ...extra}.
func responseWithError(w http.ResponseWriter, status int, code, message string, extra ...Payload) {
	storage := map[string]any{
		"error":   code,
		"message": message,
	}
	for _, pl := range extra {
		storage[pl.Key] = pl.Payload
	}
	responseWithJSON(w, status, storage)
}

func responseWithValidationError(w http.ResponseWriter, err error) {
	fields := []task.FieldError{}
	if verr, ok := err.(*task.ValidationError); ok {
		fields = verr.Fields
	}
	responseWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), toPayload("fields", fields))
}

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == target
}
