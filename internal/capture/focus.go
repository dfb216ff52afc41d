package capture

import "time"

// FocusLossDetector decides whether an input blur came from the whole window
// losing focus, which happens when the OS consumes a shortcut before any
// key-down reaches the application.
type FocusLossDetector struct {
	scheduler Scheduler
	delay     time.Duration
}

// NewFocusLossDetector creates a detector re-checking once after delay
func NewFocusLossDetector(scheduler Scheduler, delay time.Duration) *FocusLossDetector {
	return &FocusLossDetector{scheduler: scheduler, delay: delay}
}

// Check calls onLost now if the window has no focus. Otherwise it looks once
// more after the delay, since focus may move asynchronously, then gives up.
func (d *FocusLossDetector) Check(hasWindowFocus func() bool, onLost func()) {
	if hasWindowFocus == nil {
		return
	}
	if !hasWindowFocus() {
		onLost()
		return
	}
	if d.scheduler == nil {
		return
	}
	d.scheduler.After(d.delay, func() {
		if !hasWindowFocus() {
			onLost()
		}
	})
}
