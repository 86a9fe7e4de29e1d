package timers

import (
	"sync"
	"time"
)

// Clock supplies the current time and the scheduler's ticker.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// Ticker delivers tick times on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(interval time.Duration) Ticker {
	return systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (ticker systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker systemTicker) Stop() {
	ticker.ticker.Stop()
}

// ManualClock is a virtual clock whose time only moves through Advance.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the virtual time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// NewTicker registers a virtual ticker.
func (clock *ManualClock) NewTicker(interval time.Duration) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	ticker := &manualTicker{
		clock:    clock,
		interval: interval,
		next:     clock.now.Add(interval),
		ch:       make(chan time.Time, 1),
	}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

// Advance moves virtual time forward and fires every ticker boundary that
// was crossed. Like time.Ticker, a receiver that falls behind loses ticks.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(delta)
	now := clock.now
	tickers := append([]*manualTicker(nil), clock.tickers...)
	clock.mu.Unlock()

	for _, ticker := range tickers {
		ticker.fire(now)
	}
}

func (clock *ManualClock) remove(target *manualTicker) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for i, ticker := range clock.tickers {
		if ticker == target {
			clock.tickers = append(clock.tickers[:i], clock.tickers[i+1:]...)
			return
		}
	}
}

type manualTicker struct {
	clock    *ManualClock
	interval time.Duration
	mu       sync.Mutex
	next     time.Time
	ch       chan time.Time
}

func (ticker *manualTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *manualTicker) Stop() {
	ticker.clock.remove(ticker)
}

func (ticker *manualTicker) fire(now time.Time) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.interval <= 0 {
		return
	}
	for !ticker.next.After(now) {
		select {
		case ticker.ch <- ticker.next:
		default:
		}
		ticker.next = ticker.next.Add(ticker.interval)
	}
}
