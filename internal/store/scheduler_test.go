package store

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerCoalescesWithRealTimers(t *testing.T) {
	var saves atomic.Int32
	done := make(chan struct{}, 1)
	s := newSaveScheduler(20*time.Millisecond, realAfterFunc, time.Now, func() error {
		saves.Add(1)
		done <- struct{}{}
		return nil
	}, nil)

	for i := 0; i < 5; i++ {
		s.schedule()
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("coalesced save never ran")
	}
	// give a wrongly re-armed timer the chance to fire
	time.Sleep(60 * time.Millisecond)
	if n := saves.Load(); n != 1 {
		t.Errorf("saves = %d, want 1", n)
	}
}

func TestSchedulerIgnoresScheduleAfterClose(t *testing.T) {
	timers := &manualTimers{}
	saves := 0
	s := newSaveScheduler(time.Second, timers.afterFunc, time.Now, func() error {
		saves++
		return nil
	}, nil)

	s.schedule()
	if err := s.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if saves != 1 {
		t.Fatalf("saves after close = %d, want 1", saves)
	}

	s.schedule()
	timers.fire()
	if pending, _ := s.isPending(); pending {
		t.Error("pending after close, want schedule ignored")
	}
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}
}

func TestSchedulerSaveNowWithoutPending(t *testing.T) {
	saves := 0
	s := newSaveScheduler(time.Second, (&manualTimers{}).afterFunc, time.Now, func() error {
		saves++
		return nil
	}, nil)

	if err := s.saveNow(); err != nil {
		t.Fatalf("saveNow: %v", err)
	}
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}
}
