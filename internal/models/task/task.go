package task

import (
	"fmt"
	"strings"
)

// Task is the remote task resource. Timestamps are kept exactly as the server
// encodes them.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Color     Color  `json:"color" yaml:"color"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
)

var colors = []Color{
	ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange,
	ColorPink, ColorBrown, ColorGray, ColorBlack, ColorWhite,
}

// Colors returns the closed set of task colors.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

func (c Color) Valid() bool {
	for _, known := range colors {
		if c == known {
			return true
		}
	}
	return false
}

func (c Color) String() string {
	return string(c)
}

// ParseColor is case sensitive: "Red" is not a color.
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q: %s", s, colorList())
	}
	return c, nil
}

func colorList() string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return "must be one of: " + strings.Join(names, ", ")
}

type CreateTaskRequest struct {
	Title string `json:"title"`
	Color Color  `json:"color"`
}

type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (r UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Color == nil && r.Completed == nil
}

// Summary holds the counters shown above a task list.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}
