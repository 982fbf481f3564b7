package quiz

import (
	"sync"
	"time"
)

// Cancel stops a scheduled task. It is safe to call more than once and from
// inside the task itself.
type Cancel func()

// Scheduler runs fn repeatedly every d until the returned Cancel is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) Cancel
}

// TickerScheduler is a Scheduler backed by time.Ticker.
type TickerScheduler struct{}

// Every starts a goroutine that calls fn on each tick.
func (TickerScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
