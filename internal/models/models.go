package models

import (
	"html"
	"strings"
	"time"
)

// Priority is the importance of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid priority, lowest first
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority returns the priority named by s (case-insensitive)
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next cycles to the next priority, wrapping from high back to low
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// Prev cycles to the previous priority, wrapping from low to high
func (p Priority) Prev() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+len(Priorities)-1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// FilterMode selects tasks by completion state
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
)

// ParseFilterMode returns the filter mode named by s, defaulting to all
func ParseFilterMode(s string) (FilterMode, bool) {
	switch m := FilterMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FilterAll, FilterPending, FilterCompleted:
		return m, true
	case "":
		return FilterAll, true
	}
	return FilterAll, false
}

// Next cycles all -> pending -> completed -> all
func (m FilterMode) Next() FilterMode {
	switch m {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	}
	return FilterAll
}

// Matches reports whether a task with the given completion state passes the filter
func (m FilterMode) Matches(t Task) bool {
	switch m {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

// Task is a single to-do item
type Task struct {
	ID          int64      `json:"id" yaml:"id"`
	Text        string     `json:"text" yaml:"text"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     Date       `json:"dueDate" yaml:"dueDate"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completedAt,omitempty"`
}

// Sanitize neutralizes markup metacharacters (& < > " ') in user text
func Sanitize(text string) string {
	return html.EscapeString(text)
}

// NormalizeText sanitizes text that may or may not already be sanitized.
// Already sanitized text comes back unchanged.
func NormalizeText(text string) string {
	return Sanitize(html.UnescapeString(text))
}

// DisplayText returns the text as the user typed it, for renderers that do
// not interpret markup
func (t Task) DisplayText() string {
	return html.UnescapeString(t.Text)
}

// HasDueDate reports whether the task carries a due date
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// Overdue reports whether an incomplete task's due date is before today
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.HasDueDate() && t.DueDate.Before(DateOf(now))
}

// DueOn reports whether the task is due on the given day
func (t Task) DueOn(d Date) bool {
	return t.HasDueDate() && t.DueDate == d
}

// Stats summarizes completion progress for the whole collection
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	Percent        float64
	CompletedToday int
	CompletedWeek  int
	Streak         int
	Overdue        int
	DueToday       int
}
