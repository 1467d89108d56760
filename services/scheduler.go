package services

import "time"

// Scheduler defers a task without blocking the caller. The production
// implementation rides on time.AfterFunc; tests swap in a manual one so
// pending tasks can be flushed deterministically.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, task)
}
