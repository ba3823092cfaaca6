package stats

import (
	"time"
)

// StatsTime is the clock behind Latency stopwatches and the load tester's
// progress ticker. Tests swap Time for a fixed clock.
type StatsTime interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTicker(d time.Duration) StatsTicker
}

// StatsTicker is the part of time.Ticker we use.
type StatsTicker interface {
	C() <-chan time.Time
	Stop()
}

func DefaultStatsTime() StatsTime { return wallClock{} }

// NewTestTime returns a clock frozen at now where every Since reports elapsed.
// Its tickers fire only when the test sends on ticks.
func NewTestTime(now time.Time, elapsed time.Duration, ticks <-chan time.Time) StatsTime {
	return &fixedClock{now: now, elapsed: elapsed, ticks: ticks}
}

type wallClock struct{}

func (wallClock) Now() time.Time                        { return time.Now() }
func (wallClock) Since(t time.Time) time.Duration       { return time.Since(t) }
func (wallClock) NewTicker(d time.Duration) StatsTicker { return wallTicker{time.NewTicker(d)} }

type wallTicker struct{ t *time.Ticker }

func (w wallTicker) C() <-chan time.Time { return w.t.C }
func (w wallTicker) Stop()               { w.t.Stop() }

type fixedClock struct {
	now     time.Time
	elapsed time.Duration
	ticks   <-chan time.Time
}

func (c *fixedClock) Now() time.Time                      { return c.now }
func (c *fixedClock) Since(time.Time) time.Duration       { return c.elapsed }
func (c *fixedClock) NewTicker(time.Duration) StatsTicker { return chanTicker(c.ticks) }

type chanTicker <-chan time.Time

func (c chanTicker) C() <-chan time.Time { return c }
func (chanTicker) Stop()                 {}
