package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tgienger/tasks/internal/models"
)

func newTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	d, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, path
}

func TestNewRecordsSchemaVersion(t *testing.T) {
	d, _ := newTestDB(t)

	v, err := d.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != SchemaVersion() {
		t.Errorf("Version = %d, want %d", v, SchemaVersion())
	}
}

func TestNewRejectsNewerSchema(t *testing.T) {
	d, path := newTestDB(t)
	if _, err := d.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	d.Close()

	_, err := New(path)
	if err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("New error = %v, want newer schema error", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	d, path := newTestDB(t)
	if err := d.Save([]models.Task{{ID: 1, Text: "kept", Priority: models.PriorityLow}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d.Close()

	d2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d2.Close()
	tasks, err := d2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "kept" {
		t.Errorf("Load = %+v, want the saved task", tasks)
	}
}

func TestLoadEmpty(t *testing.T) {
	d, _ := newTestDB(t)

	tasks, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Load = %#v, want empty non-nil slice", tasks)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d, _ := newTestDB(t)
	done := time.Date(2024, time.March, 14, 8, 30, 0, 0, time.UTC)

	in := []models.Task{
		{ID: 3, Text: "third &amp; last", Priority: models.PriorityHigh, DueDate: models.Date{Year: 2024, Month: time.March, Day: 20}},
		{ID: 1, Text: "first", Priority: models.PriorityLow, Completed: true, CompletedAt: &done},
		{ID: 2, Text: "second", Priority: models.PriorityMedium},
	}
	if err := d.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Load returned %d tasks, want %d", len(out), len(in))
	}
	for i := range in {
		w, g := in[i], out[i]
		if g.ID != w.ID || g.Text != w.Text || g.Priority != w.Priority || g.DueDate != w.DueDate || g.Completed != w.Completed {
			t.Errorf("task %d = %+v, want %+v", i, g, w)
		}
	}
	if out[1].CompletedAt == nil || !out[1].CompletedAt.Equal(done) {
		t.Errorf("CompletedAt = %v, want %v", out[1].CompletedAt, done)
	}
	if out[0].CompletedAt != nil {
		t.Errorf("pending task CompletedAt = %v, want nil", out[0].CompletedAt)
	}
}

func TestSaveOverwrites(t *testing.T) {
	d, _ := newTestDB(t)

	if err := d.Save([]models.Task{{ID: 1, Text: "a", Priority: models.PriorityLow}, {ID: 2, Text: "b", Priority: models.PriorityLow}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := d.Save([]models.Task{{ID: 2, Text: "b", Priority: models.PriorityLow}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	n, err := d.TaskCount()
	if err != nil {
		t.Fatalf("TaskCount: %v", err)
	}
	if n != 1 {
		t.Errorf("TaskCount = %d, want 1", n)
	}
	if err := d.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	if n, _ := d.TaskCount(); n != 0 {
		t.Errorf("TaskCount after clear = %d, want 0", n)
	}
}

func TestLoadSkipsInvalidRows(t *testing.T) {
	d, _ := newTestDB(t)

	if _, err := d.Exec(`INSERT INTO tasks (position, id, text, priority) VALUES (0, 1, 'ok', 'low'), (1, 2, 'bad', 'urgent')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	tasks, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Errorf("Load = %+v, want only task 1", tasks)
	}
}

func TestSettings(t *testing.T) {
	d, _ := newTestDB(t)

	v, err := d.GetSetting("theme")
	if err != nil || v != "" {
		t.Fatalf("GetSetting(unset) = %q, %v, want empty", v, err)
	}
	if err := d.SetSetting("theme", "light"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := d.SetSetting("theme", "dark"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}
	if v, _ := d.GetSetting("theme"); v != "dark" {
		t.Errorf("GetSetting = %q, want dark", v)
	}
}
