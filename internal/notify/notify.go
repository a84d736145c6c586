package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tgienger/tasks/internal/models"
)

// Source answers the due-today query. *store.Store satisfies it.
type Source interface {
	DueTodayAndIncomplete() []models.Task
}

// Sink receives the tasks that became due today since the last delivery.
type Sink func([]models.Task)

// Config controls how often the source is polled.
type Config struct {
	Interval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Notifier polls a Source on a cron schedule and hands newly due tasks to
// a Sink. Each task is delivered at most once per calendar day.
type Notifier struct {
	source Source
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
	cron   *cron.Cron

	mu       sync.Mutex
	day      models.Date
	notified map[int64]bool
}

// New builds a notifier; call Start to begin polling.
func New(source Source, sink Sink, logger *zap.Logger, cfg Config) (*Notifier, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Notifier{
		source:   source,
		sink:     sink,
		logger:   logger,
		now:      cfg.Now,
		cron:     cron.New(),
		notified: make(map[int64]bool),
	}

	schedule := fmt.Sprintf("@every %s", cfg.Interval)
	if _, err := n.cron.AddFunc(schedule, func() { n.Check() }); err != nil {
		return nil, fmt.Errorf("schedule due check %q: %w", schedule, err)
	}
	return n, nil
}

// Check queries the source once and delivers any task not yet delivered
// today. It returns what was delivered.
func (n *Notifier) Check() []models.Task {
	due := n.source.DueTodayAndIncomplete()
	today := models.DateOf(n.now())

	n.mu.Lock()
	if n.day != today {
		n.day = today
		clear(n.notified)
	}
	var fresh []models.Task
	for _, t := range due {
		if n.notified[t.ID] {
			continue
		}
		n.notified[t.ID] = true
		fresh = append(fresh, t)
	}
	n.mu.Unlock()

	if len(fresh) == 0 {
		return nil
	}
	n.logger.Info("tasks due today", zap.Int("count", len(fresh)))
	if n.sink != nil {
		n.sink(fresh)
	}
	return fresh
}

// Start runs one check immediately and then launches the cron scheduler.
func (n *Notifier) Start() {
	if n == nil || n.cron == nil {
		return
	}
	n.Check()
	n.cron.Start()
	n.logger.Debug("due notifier started")
}

// Stop halts the scheduler and waits for a running check, or for ctx.
func (n *Notifier) Stop(ctx context.Context) error {
	if n == nil || n.cron == nil {
		return nil
	}
	stopCtx := n.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	n.logger.Debug("due notifier stopped")
	return nil
}
