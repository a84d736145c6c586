package snapshot

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/tgienger/tasks/internal/models"
)

// Validate converts one untyped import record into a Task.
//
// A record is accepted when it is an object with a numeric id, a string
// text, a priority of low, medium or high, and a boolean completed flag.
// Everything else is optional: an unreadable dueDate is dropped and
// completedAt is brought in line with completed, using now when a completed
// record has no usable timestamp.
func Validate(record any, now time.Time) (models.Task, bool) {
	m, ok := record.(map[string]any)
	if !ok {
		return models.Task{}, false
	}

	id, ok := toInt64(m["id"])
	if !ok {
		return models.Task{}, false
	}
	text, ok := m["text"].(string)
	if !ok {
		return models.Task{}, false
	}
	rawPriority, ok := m["priority"].(string)
	if !ok || !models.Priority(rawPriority).Valid() {
		return models.Task{}, false
	}
	completed, ok := m["completed"].(bool)
	if !ok {
		return models.Task{}, false
	}

	t := models.Task{
		ID:        id,
		Text:      models.NormalizeText(text),
		Priority:  models.Priority(rawPriority),
		DueDate:   toDate(m["dueDate"]),
		Completed: completed,
	}
	if completed {
		at, ok := toTime(m["completedAt"])
		if !ok {
			at = now
		}
		t.CompletedAt = &at
	}
	return t, true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toDate(v any) models.Date {
	switch d := v.(type) {
	case string:
		parsed, err := models.ParseDate(d)
		if err != nil {
			// also accept a full timestamp
			if t, ok := toTime(d); ok {
				return models.DateOf(t)
			}
			return models.Date{}
		}
		return parsed
	case time.Time:
		return models.DateOf(d)
	}
	return models.Date{}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05Z07:00"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	case time.Time:
		return t, true
	case json.Number:
		// epoch milliseconds
		if ms, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
	}
	return time.Time{}, false
}
