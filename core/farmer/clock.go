package farmer

import (
	"sync"
	"time"
)

// Clock returns the unix time in seconds of the next operation
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// MonotonicClock never returns a smaller value than it returned before
type MonotonicClock struct {
	sync.Mutex
	clock Clock
	last  uint64
}

func NewMonotonicClock(clock Clock) *MonotonicClock {
	return &MonotonicClock{
		clock: clock,
	}
}

func (mc *MonotonicClock) Now() uint64 {
	mc.Lock()
	defer mc.Unlock()

	if now := mc.clock.Now(); now > mc.last {
		mc.last = now
	}
	return mc.last
}
