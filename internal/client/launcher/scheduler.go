package launcher

import "time"

// Scheduler runs fn once after d. Armed callbacks cannot be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler is backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
