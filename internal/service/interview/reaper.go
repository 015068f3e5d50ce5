package interview

import (
	"sync"
	"time"
)

// reaper owns one deferred deletion per session.
type reaper struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	remove func(id string)
	closed bool
}

func newReaper(delay time.Duration, remove func(id string)) *reaper {
	return &reaper{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		remove: remove,
	}
}

// Schedule arms the deletion of id. An already pending deletion is kept and
// Schedule reports false.
func (r *reaper) Schedule(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	if _, ok := r.timers[id]; ok {
		return false
	}

	var timer *time.Timer
	timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		current, ok := r.timers[id]
		if !ok || current != timer {
			r.mu.Unlock()
			return
		}
		delete(r.timers, id)
		r.mu.Unlock()

		r.remove(id)
	})
	r.timers[id] = timer
	return true
}

// Cancel disarms a pending deletion.
func (r *reaper) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	timer, ok := r.timers[id]
	if !ok {
		return false
	}
	timer.Stop()
	delete(r.timers, id)
	return true
}

// Pending returns the number of armed deletions.
func (r *reaper) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Stop disarms every pending deletion and refuses new ones.
func (r *reaper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, timer := range r.timers {
		timer.Stop()
		delete(r.timers, id)
	}
	r.closed = true
}
