package collab

import (
	"sync"
	"time"
)

// timerSet is the default Timer: a map of the three TimerKind slots to a
// live *time.Timer, grounded in the same "named deadline" idiom the
// teacher repo's accounting package uses for its per-transfer stall
// detection.
type timerSet struct {
	mu     sync.Mutex
	timers map[TimerKind]*time.Timer
	specs  map[TimerKind]timerSpec
}

type timerSpec struct {
	d  time.Duration
	fn func()
}

// NewTimerSet returns the default time.Timer-backed Timer implementation.
func NewTimerSet() Timer {
	return &timerSet{
		timers: make(map[TimerKind]*time.Timer),
		specs:  make(map[TimerKind]timerSpec),
	}
}

func (t *timerSet) Add(kind TimerKind, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.timers[kind]; ok {
		existing.Stop()
	}
	t.specs[kind] = timerSpec{d: d, fn: fn}
	t.timers[kind] = time.AfterFunc(d, fn)
}

func (t *timerSet) Reset(kind TimerKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	spec, ok := t.specs[kind]
	if !ok {
		return
	}
	if existing, ok := t.timers[kind]; ok {
		existing.Reset(spec.d)
	}
}

func (t *timerSet) Remove(kind TimerKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.timers[kind]; ok {
		existing.Stop()
		delete(t.timers, kind)
	}
	delete(t.specs, kind)
}
