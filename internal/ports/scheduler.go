package ports

import "time"

// Scheduler runs work after the current call returns.
type Scheduler interface {
	Defer(fn func())
}

// NextTick runs deferred work on the timer goroutine as soon as possible.
type NextTick struct{}

func (NextTick) Defer(fn func()) {
	time.AfterFunc(0, fn)
}
