package boltstore

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tgienger/tasks/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.bolt")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestLoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load = %+v, want empty", tasks)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	done := time.Date(2024, time.March, 14, 8, 30, 0, 0, time.UTC)

	in := []models.Task{
		{ID: 2, Text: "second &lt;b&gt;", Priority: models.PriorityHigh, DueDate: models.Date{Year: 2024, Month: time.March, Day: 20}},
		{ID: 1, Text: "first", Priority: models.PriorityLow, Completed: true, CompletedAt: &done},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	out, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Load returned %d tasks, want 2", len(out))
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
}

func TestCorruptSnapshotLoadsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).Put(tasksKey, []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Load = %+v, want empty", tasks)
	}
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).Put(tasksKey, []byte(`[
			{"id": 1, "text": "ok", "priority": "low", "completed": false},
			{"id": 2, "text": "bad", "priority": "urgent", "completed": false}
		]`))
	})
	if err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Errorf("Load = %+v, want only task 1", tasks)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	s, path := newTestStore(t)
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(versionKey, []byte("99"))
	})
	if err != nil {
		t.Fatalf("write version: %v", err)
	}
	s.Close()

	_, err = Open(path, nil)
	if err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("Open error = %v, want newer schema error", err)
	}
}

func TestSettings(t *testing.T) {
	s, _ := newTestStore(t)

	if v, err := s.GetSetting("theme"); err != nil || v != "" {
		t.Fatalf("GetSetting(unset) = %q, %v, want empty", v, err)
	}
	if err := s.SetSetting("theme", "light"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if v, _ := s.GetSetting("theme"); v != "light" {
		t.Errorf("GetSetting = %q, want light", v)
	}
}

func TestClosedStore(t *testing.T) {
	var s *Store
	if _, err := s.Load(); err != bolt.ErrDatabaseNotOpen {
		t.Errorf("Load on nil store error = %v, want ErrDatabaseNotOpen", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil store = %v, want nil", err)
	}
}
