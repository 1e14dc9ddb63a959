package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Timer measures one operation. Stop adds the elapsed milliseconds to the
// counter the timer was started for, if any.
type Timer struct {
	start time.Time
	total *Counter
}

func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.total != nil {
		t.total.Add(uint64(d.Milliseconds()))
	}
	return d
}

// Registry hands out named counters. Counters are created on first use and
// live for the life of the process.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*Counter
}

func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*Counter)}
}

func (r *Registry) Counter(name string) *Counter {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = &Counter{}
	r.counters[name] = c
	return c
}

// StartTimer starts a Timer accumulating into the named counter. A nil
// Registry yields a Timer that only measures.
func (r *Registry) StartTimer(name string) *Timer {
	t := &Timer{start: time.Now()}
	if r != nil {
		t.total = r.Counter(name)
	}
	return t
}

func (r *Registry) Inc(name string) {
	r.Counter(name).Inc()
}

// Snapshot returns the current value of every counter.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]uint64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}
