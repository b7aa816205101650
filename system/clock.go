package system

import "time"

type Uptime struct {
	start time.Time
}

func NewUptime(start time.Time) *Uptime {
	return &Uptime{start: start}
}

func (u *Uptime) Uptime() time.Duration {
	return time.Since(u.start)
}

// MonotonicCounter counts nanoseconds since start on the monotonic clock.
type MonotonicCounter struct {
	start time.Time
}

func NewCycleCounter(start time.Time) *MonotonicCounter {
	return &MonotonicCounter{start: start}
}

func (c *MonotonicCounter) Cycles() uint64 {
	return uint64(time.Since(c.start).Nanoseconds())
}
