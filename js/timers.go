package js

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dop251/goja"
)

const minInterval = 4 * time.Millisecond

// timer represents a scheduled setTimeout or setInterval callback.
type timer struct {
	id       int
	callback goja.Callable
	args     []goja.Value
	dueTime  time.Time
	interval time.Duration // 0 for setTimeout
	cleared  bool
}

// timerManager tracks scheduled timers.
type timerManager struct {
	timers map[int]*timer
	nextID int
	now    func() time.Time
	mu     sync.Mutex
}

func newTimerManager() *timerManager {
	return &timerManager{
		timers: make(map[int]*timer),
		nextID: 1,
		now:    time.Now,
	}
}

func (tm *timerManager) add(callback goja.Callable, delay, interval time.Duration, args []goja.Value) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tm.nextID
	tm.nextID++
	tm.timers[id] = &timer{
		id:       id,
		callback: callback,
		args:     args,
		dueTime:  tm.now().Add(delay),
		interval: interval,
	}
	return id
}

// setTimeout schedules a one-time callback.
func (tm *timerManager) setTimeout(callback goja.Callable, delay time.Duration, args []goja.Value) int {
	return tm.add(callback, delay, 0, args)
}

// setInterval schedules a recurring callback.
func (tm *timerManager) setInterval(callback goja.Callable, interval time.Duration, args []goja.Value) int {
	return tm.add(callback, interval, interval, args)
}

// clearTimer clears a timer by ID.
func (tm *timerManager) clearTimer(id int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if t, ok := tm.timers[id]; ok {
		t.cleared = true
		delete(tm.timers, id)
	}
}

// process runs the due timers in due-time order. The caller holds the
// runtime lock.
func (tm *timerManager) process(r *Runtime) {
	tm.mu.Lock()
	now := tm.now()
	var due []*timer
	for _, t := range tm.timers {
		if !t.cleared && !t.dueTime.After(now) {
			due = append(due, t)
		}
	}
	tm.mu.Unlock()

	slices.SortFunc(due, func(a, b *timer) int {
		if c := a.dueTime.Compare(b.dueTime); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	for _, t := range due {
		tm.mu.Lock()
		cleared := t.cleared
		tm.mu.Unlock()
		if cleared {
			continue
		}

		tm.run(r, t)

		tm.mu.Lock()
		if t.interval > 0 && !t.cleared {
			t.dueTime = tm.now().Add(t.interval)
		} else {
			delete(tm.timers, t.id)
		}
		tm.mu.Unlock()
	}
}

func (tm *timerManager) run(r *Runtime, t *timer) {
	defer func() {
		if p := recover(); p != nil {
			r.recordError(fmt.Errorf("timer %d panic: %v", t.id, p))
		}
	}()
	if _, err := t.callback(goja.Undefined(), t.args...); err != nil {
		r.recordError(err)
	}
}

// hasPending returns true if any timer is scheduled.
func (tm *timerManager) hasPending() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.timers) > 0
}

// untilNext returns how long until the earliest timer is due.
func (tm *timerManager) untilNext() time.Duration {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	var next time.Time
	for _, t := range tm.timers {
		if next.IsZero() || t.dueTime.Before(next) {
			next = t.dueTime
		}
	}
	if next.IsZero() {
		return 0
	}
	return max(next.Sub(tm.now()), 0)
}
