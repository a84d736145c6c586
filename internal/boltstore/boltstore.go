package boltstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/snapshot"
)

// SchemaVersion is the layout version written under the meta bucket.
const SchemaVersion = 1

var (
	tasksBucket    = []byte("tasks")
	settingsBucket = []byte("settings")
	metaBucket     = []byte("meta")

	tasksKey   = []byte("tasks")
	versionKey = []byte("schema_version")
)

// Store persists the task list as a single JSON snapshot in a Bolt file.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open initializes the Bolt file, creates the buckets and checks the layout version.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	if err := db.Update(initBuckets); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

func initBuckets(tx *bolt.Tx) error {
	for _, name := range [][]byte{tasksBucket, settingsBucket, metaBucket} {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return err
		}
	}
	meta := tx.Bucket(metaBucket)
	if raw := meta.Get(versionKey); raw != nil {
		v, err := strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("bad schema version %q", raw)
		}
		if v > SchemaVersion {
			return fmt.Errorf("bolt schema version %d is newer than supported version %d", v, SchemaVersion)
		}
	}
	return meta.Put(versionKey, []byte(strconv.Itoa(SchemaVersion)))
}

// Load returns the stored tasks. A missing snapshot is an empty list; an
// unreadable one is logged and also treated as empty. Records that fail
// validation are dropped.
func (s *Store) Load() ([]models.Task, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(tasksBucket).Get(tasksKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return []models.Task{}, err
	}

	records, err := snapshot.Decode(raw, snapshot.FormatJSON)
	if err != nil {
		s.logger.Warn("stored task snapshot is unreadable, starting empty", zap.Error(err))
		return []models.Task{}, nil
	}

	now := s.now()
	tasks := make([]models.Task, 0, len(records))
	for _, rec := range records {
		t, ok := snapshot.Validate(rec, now)
		if !ok {
			s.logger.Debug("dropping invalid stored task")
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save overwrites the stored snapshot with tasks.
func (s *Store) Save(tasks []models.Task) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := snapshot.Encode(tasks, snapshot.FormatJSON)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).Put(tasksKey, payload)
	})
}

// GetSetting returns the value for key, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket(settingsBucket).Get([]byte(key)))
		return nil
	})
	return value, err
}

// SetSetting stores value under key.
func (s *Store) SetSetting(key, value string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
