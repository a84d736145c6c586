package store

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/tgienger/tasks/internal/models"
)

const streakLookback = 365

// Tasks returns a copy of the collection in order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// IDs returns the ids in collection order.
func (s *Store) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// VisibleTasks yields, in collection order, the tasks whose text contains
// search (case-insensitive) and that pass mode. Each range over the result
// reads the collection afresh.
func (s *Store) VisibleTasks(search string, mode models.FilterMode) iter.Seq[models.Task] {
	needle := strings.ToLower(models.Sanitize(search))
	return func(yield func(models.Task) bool) {
		for _, t := range s.Tasks() {
			if !mode.Matches(t) || !strings.Contains(strings.ToLower(t.Text), needle) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// ProgressPercent is the share of completed tasks, 0 for an empty list.
func (s *Store) ProgressPercent() float64 {
	return progressPercent(s.Tasks())
}

// CompletedToday counts tasks completed on the current calendar day.
func (s *Store) CompletedToday() int {
	return completedOn(s.Tasks(), s.now())
}

// CompletedThisWeek counts tasks completed in the last 7×24 hours.
func (s *Store) CompletedThisWeek() int {
	return completedSince(s.Tasks(), s.now().Add(-7*24*time.Hour))
}

// CurrentStreak counts consecutive days with at least one completion,
// walking back from today. A day without completions ends the streak,
// except today, which may still be empty.
func (s *Store) CurrentStreak() int {
	return streak(s.Tasks(), s.now())
}

// DueTodayAndIncomplete lists the pending tasks due today.
func (s *Store) DueTodayAndIncomplete() []models.Task {
	today := models.DateOf(s.now())
	var due []models.Task
	for _, t := range s.Tasks() {
		if !t.Completed && t.DueOn(today) {
			due = append(due, t)
		}
	}
	return due
}

// Stats computes every counter from one consistent view of the collection.
func (s *Store) Stats() models.Stats {
	tasks := s.Tasks()
	now := s.now()
	today := models.DateOf(now)

	st := models.Stats{
		Total:          len(tasks),
		Percent:        progressPercent(tasks),
		CompletedToday: completedOn(tasks, now),
		CompletedWeek:  completedSince(tasks, now.Add(-7*24*time.Hour)),
		Streak:         streak(tasks, now),
	}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
		if t.Overdue(now) {
			st.Overdue++
		}
		if !t.Completed && t.DueOn(today) {
			st.DueToday++
		}
	}
	return st
}

func progressPercent(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

func completionDay(t models.Task, loc *time.Location) (models.Date, bool) {
	if !t.Completed || t.CompletedAt == nil {
		return models.Date{}, false
	}
	return models.DateOf(t.CompletedAt.In(loc)), true
}

func completedOn(tasks []models.Task, now time.Time) int {
	today := models.DateOf(now)
	n := 0
	for _, t := range tasks {
		if d, ok := completionDay(t, now.Location()); ok && d == today {
			n++
		}
	}
	return n
}

func completedSince(tasks []models.Task, cutoff time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil && t.CompletedAt.After(cutoff) {
			n++
		}
	}
	return n
}

func streak(tasks []models.Task, now time.Time) int {
	days := make(map[models.Date]bool)
	for _, t := range tasks {
		if d, ok := completionDay(t, now.Location()); ok {
			days[d] = true
		}
	}

	today := models.DateOf(now)
	count := 0
	for i := 0; i < streakLookback; i++ {
		if days[today.AddDays(-i)] {
			count++
		} else if i > 0 {
			break
		}
	}
	return count
}
