package room

import "time"

// Timer is a cancelable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The callback runs on its own goroutine and
// must only post into a room inbox.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler is backed by time.AfterFunc.
func RealScheduler() Scheduler { return realScheduler{} }

// Clock lets tests pin "now" for deadlines.
type Clock func() time.Time
