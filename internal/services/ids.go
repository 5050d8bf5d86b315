package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// IDGenerator hands out ids for menu items and sales.
type IDGenerator interface {
	NextID() int64
}

// idObserver is implemented by generators that must never return an id
// already present in loaded data.
type idObserver interface {
	Observe(id int64)
}

func observeID(ids IDGenerator, id int64) {
	if o, ok := ids.(idObserver); ok {
		o.Observe(id)
	}
}

// Clock returns the current time in the shop's location.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// SequenceGenerator counts upwards from its starting value.
type SequenceGenerator struct {
	last atomic.Int64
}

func NewSequenceGenerator(start int64) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.last.Store(start)
	return g
}

func (g *SequenceGenerator) NextID() int64 {
	return g.last.Add(1)
}

func (g *SequenceGenerator) Observe(id int64) {
	for {
		cur := g.last.Load()
		if id <= cur || g.last.CompareAndSwap(cur, id) {
			return
		}
	}
}

// ClockGenerator derives ids from the clock in milliseconds. Two calls within
// the same millisecond still get distinct, increasing ids.
type ClockGenerator struct {
	mu   sync.Mutex
	now  Clock
	last int64
}

func NewClockGenerator(now Clock) *ClockGenerator {
	return &ClockGenerator{now: now}
}

func (g *ClockGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func (g *ClockGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}

// NewIDGenerator builds the generator named by strategy: "clock" or "sequence".
func NewIDGenerator(strategy string, clock Clock) (IDGenerator, error) {
	switch strategy {
	case "", "clock":
		return NewClockGenerator(clock), nil
	case "sequence":
		return NewSequenceGenerator(0), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
