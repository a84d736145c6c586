// Package store owns the in-memory task collection: every mutation, the
// derived views over it, and the coalesced writes that keep the durable
// copy in step.
package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/tasks/internal/errs"
	"github.com/tgienger/tasks/internal/models"
)

// DefaultSaveDelay is the quiet period after the last mutation before the
// collection is written.
const DefaultSaveDelay = 300 * time.Millisecond

// Persister loads and saves the whole collection. Save overwrites whatever
// was stored before and must not leave a partial write behind.
type Persister interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

// Settings is a small key/value space kept next to the tasks.
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type options struct {
	now         func() time.Time
	saveDelay   time.Duration
	afterFunc   AfterFunc
	logger      *zap.Logger
	onSaveError func(error)
}

// Option configures a Store.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSaveDelay sets the quiet period used to coalesce writes.
func WithSaveDelay(d time.Duration) Option {
	return func(o *options) { o.saveDelay = d }
}

// WithAfterFunc replaces the timer used for coalesced writes.
func WithAfterFunc(f AfterFunc) Option {
	return func(o *options) { o.afterFunc = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSaveErrorHandler receives failures of coalesced writes, which happen
// after the mutating call has returned.
func WithSaveErrorHandler(f func(error)) Option {
	return func(o *options) { o.onSaveError = f }
}

// Store is the task collection. It is safe to call from the UI goroutine
// while a coalesced write fires on a timer goroutine.
type Store struct {
	persister Persister
	now       func() time.Time
	logger    *zap.Logger
	sched     *saveScheduler

	mu     sync.Mutex
	tasks  []models.Task
	lastID int64
}

// Open loads the collection from p and returns an active store. Call Close
// to flush pending writes.
func Open(p Persister, opts ...Option) (*Store, error) {
	o := options{
		now:       time.Now,
		saveDelay: DefaultSaveDelay,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.saveDelay <= 0 {
		o.saveDelay = DefaultSaveDelay
	}

	tasks, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s := &Store{
		persister: p,
		now:       o.now,
		logger:    o.logger,
		tasks:     tasks,
	}
	for _, t := range tasks {
		s.lastID = max(s.lastID, t.ID)
	}

	onError := o.onSaveError
	if onError == nil {
		onError = func(err error) {
			s.logger.Warn("coalesced save failed", zap.Error(err))
		}
	}
	s.sched = newSaveScheduler(o.saveDelay, o.afterFunc, o.now, s.saveSnapshot, onError)

	s.logger.Info("task store opened", zap.Int("tasks", len(tasks)))
	return s, nil
}

// Flush writes a pending coalesced save immediately.
func (s *Store) Flush() error {
	return s.sched.flush()
}

// Close flushes pending writes. Mutations after Close are kept in memory
// only.
func (s *Store) Close() error {
	err := s.sched.close()
	s.logger.Info("task store closed", zap.Error(err))
	return err
}

// Pending reports whether a coalesced write is waiting, and its deadline.
func (s *Store) Pending() (bool, time.Time) {
	return s.sched.isPending()
}

func (s *Store) saveSnapshot() error {
	s.mu.Lock()
	tasks := slices.Clone(s.tasks)
	s.mu.Unlock()

	if err := s.persister.Save(tasks); err != nil {
		return errs.Persist(err)
	}
	s.logger.Debug("tasks saved", zap.Int("tasks", len(tasks)))
	return nil
}

// nextID returns a millisecond timestamp, bumped past every id already in
// the collection. Callers hold s.mu.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// index returns the position of id, or -1. Callers hold s.mu.
func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}
