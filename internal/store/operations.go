package store

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/tgienger/tasks/internal/errs"
	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/snapshot"
)

// ImportResult counts what happened to each imported record.
type ImportResult struct {
	Imported   int
	Rejected   int
	Duplicates int
}

// Add creates a task at the front of the list. Blank text is ignored.
func (s *Store) Add(text string, priority models.Priority, due models.Date) (models.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, false
	}
	if !priority.Valid() {
		priority = models.PriorityLow
	}

	s.mu.Lock()
	t := models.Task{
		ID:       s.nextID(),
		Text:     models.Sanitize(text),
		Priority: priority,
		DueDate:  due,
	}
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.mu.Unlock()

	s.logger.Debug("task added", zap.Int64("id", t.ID), zap.String("priority", string(priority)))
	s.sched.schedule()
	return t, true
}

// ToggleComplete flips a task between pending and completed, stamping or
// clearing its completion time. Unknown ids are ignored.
func (s *Store) ToggleComplete(id int64) bool {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	completed := t.Completed
	s.mu.Unlock()

	s.logger.Debug("task toggled", zap.Int64("id", id), zap.Bool("completed", completed))
	s.sched.schedule()
	return true
}

// EditText replaces a task's text, sanitized the same way as Add. It
// reports whether anything changed; blank text and unknown ids are ignored.
func (s *Store) EditText(id int64, newText string) bool {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false
	}
	clean := models.Sanitize(newText)

	s.mu.Lock()
	i := s.index(id)
	if i < 0 || s.tasks[i].Text == clean {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Text = clean
	s.mu.Unlock()

	s.logger.Debug("task edited", zap.Int64("id", id))
	s.sched.schedule()
	return true
}

// SetPriority changes a task's priority. Invalid priorities and unknown
// ids are ignored.
func (s *Store) SetPriority(id int64, p models.Priority) bool {
	if !p.Valid() {
		return false
	}
	s.mu.Lock()
	i := s.index(id)
	if i < 0 || s.tasks[i].Priority == p {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Priority = p
	s.mu.Unlock()

	s.sched.schedule()
	return true
}

// SetDueDate changes or clears (zero Date) a task's due date.
func (s *Store) SetDueDate(id int64, due models.Date) bool {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 || s.tasks[i].DueDate == due {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].DueDate = due
	s.mu.Unlock()

	s.sched.schedule()
	return true
}

// Delete removes a task. Unknown ids are ignored.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.mu.Unlock()

	s.logger.Debug("task deleted", zap.Int64("id", id))
	s.sched.schedule()
	return true
}

// Reorder puts the collection in the order given by ids, which must list
// every current id exactly once. On error the order is left unchanged.
func (s *Store) Reorder(ids []int64) error {
	s.mu.Lock()
	if len(ids) != len(s.tasks) {
		n := len(s.tasks)
		s.mu.Unlock()
		return errs.InvalidOrder(fmt.Sprintf("got %d ids for %d tasks", len(ids), n))
	}

	byID := make(map[int64]models.Task, len(s.tasks))
	for _, t := range s.tasks {
		byID[t.ID] = t
	}
	reordered := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			s.mu.Unlock()
			return errs.InvalidOrder(fmt.Sprintf("id %d is unknown or repeated", id))
		}
		delete(byID, id)
		reordered = append(reordered, t)
	}
	s.tasks = reordered
	s.mu.Unlock()

	s.logger.Debug("tasks reordered", zap.Int("tasks", len(reordered)))
	s.sched.schedule()
	return nil
}

// ClearAll removes every task and writes immediately, skipping the
// coalescing delay. The caller confirms with the user first. A returned
// PERSIST error means memory was cleared but the durable copy was not.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	n := len(s.tasks)
	s.tasks = nil
	s.mu.Unlock()

	s.logger.Info("all tasks cleared", zap.Int("removed", n))
	return s.sched.saveNow()
}

// ImportRecords validates untyped records and appends the valid ones after
// the existing tasks. Records whose id is already present are skipped as
// duplicates.
func (s *Store) ImportRecords(records []any) ImportResult {
	now := s.now()
	var res ImportResult

	s.mu.Lock()
	seen := make(map[int64]bool, len(s.tasks)+len(records))
	for _, t := range s.tasks {
		seen[t.ID] = true
	}
	for _, rec := range records {
		t, ok := snapshot.Validate(rec, now)
		if !ok {
			res.Rejected++
			continue
		}
		if seen[t.ID] {
			res.Duplicates++
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
		s.lastID = max(s.lastID, t.ID)
		res.Imported++
	}
	s.mu.Unlock()

	s.logger.Info("tasks imported",
		zap.Int("imported", res.Imported),
		zap.Int("rejected", res.Rejected),
		zap.Int("duplicates", res.Duplicates))
	if res.Imported > 0 {
		s.sched.schedule()
	}
	return res
}

// Import decodes data and merges its records, see ImportRecords.
func (s *Store) Import(data []byte, format snapshot.Format) (ImportResult, error) {
	records, err := snapshot.Decode(data, format)
	if err != nil {
		return ImportResult{}, err
	}
	return s.ImportRecords(records), nil
}

// ExportSnapshot serializes the whole collection in order.
func (s *Store) ExportSnapshot(format snapshot.Format) ([]byte, error) {
	return snapshot.Encode(s.Tasks(), format)
}
