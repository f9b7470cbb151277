package task

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TitleMinLength = 3
	TitleMaxLength = 100
)

const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldColor     = "color"
	FieldCompleted = "completed"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed the write rules. Err is set
// when the failure was reported by the server rather than found locally.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	msg := "validation failed"
	if len(parts) > 0 {
		msg += ": " + strings.Join(parts, "; ")
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.Err.Error())
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Field returns the first problem reported for name.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ValidateCreate checks an untyped create payload. Title is trimmed before
// its length is checked; keys other than title and color are ignored.
func ValidateCreate(input map[string]any) (CreateTaskRequest, error) {
	verr := &ValidationError{}
	var req CreateTaskRequest

	if raw, ok := input[FieldTitle]; !ok || raw == nil {
		verr.add(FieldTitle, "title is required")
	} else if title, msg := checkTitle(raw); msg != "" {
		verr.add(FieldTitle, msg)
	} else {
		req.Title = title
	}

	if raw, ok := input[FieldColor]; !ok || raw == nil {
		verr.add(FieldColor, "color is required")
	} else if color, msg := checkColor(raw); msg != "" {
		verr.add(FieldColor, msg)
	} else {
		req.Color = color
	}

	if err := verr.orNil(); err != nil {
		return CreateTaskRequest{}, err
	}
	return req, nil
}

// ValidateUpdate checks a partial update payload. Only supplied fields are
// checked; an empty input yields an empty request.
func ValidateUpdate(input map[string]any) (UpdateTaskRequest, error) {
	verr := &ValidationError{}
	var req UpdateTaskRequest

	if raw, ok := input[FieldTitle]; ok {
		if title, msg := checkTitle(raw); msg != "" {
			verr.add(FieldTitle, msg)
		} else {
			req.Title = &title
		}
	}

	if raw, ok := input[FieldColor]; ok {
		if color, msg := checkColor(raw); msg != "" {
			verr.add(FieldColor, msg)
		} else {
			req.Color = &color
		}
	}

	if raw, ok := input[FieldCompleted]; ok {
		completed, isBool := raw.(bool)
		if !isBool {
			verr.add(FieldCompleted, "completed must be a boolean")
		} else {
			req.Completed = &completed
		}
	}

	if err := verr.orNil(); err != nil {
		return UpdateTaskRequest{}, err
	}
	return req, nil
}

// Validate runs the create rules over an already typed request.
func (r CreateTaskRequest) Validate() (CreateTaskRequest, error) {
	return ValidateCreate(map[string]any{
		FieldTitle: r.Title,
		FieldColor: string(r.Color),
	})
}

// Validate runs the update rules over the supplied fields of r.
func (r UpdateTaskRequest) Validate() (UpdateTaskRequest, error) {
	input := make(map[string]any, 3)
	if r.Title != nil {
		input[FieldTitle] = *r.Title
	}
	if r.Color != nil {
		input[FieldColor] = string(*r.Color)
	}
	if r.Completed != nil {
		input[FieldCompleted] = *r.Completed
	}
	return ValidateUpdate(input)
}

func checkTitle(raw any) (string, string) {
	title, ok := raw.(string)
	if !ok {
		return "", "title must be a string"
	}
	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		return "", "title is required"
	case n < TitleMinLength:
		return "", fmt.Sprintf("title must have at least %d characters", TitleMinLength)
	case n > TitleMaxLength:
		return "", fmt.Sprintf("title must have at most %d characters", TitleMaxLength)
	}
	return title, ""
}

func checkColor(raw any) (Color, string) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case Color:
		s = string(v)
	default:
		return "", "color must be a string"
	}
	color, err := ParseColor(s)
	if err != nil {
		return "", "color " + colorList()
	}
	return color, ""
}
