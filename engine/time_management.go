package engine

import (
	"time"
)

// TimeHandler derives the hard and soft deadlines for one search.
//
// Hard limit: min(movetime, remaining/30 + inc/2); the search aborts when it
// is exceeded (polled every 2048 nodes). Soft limit: hard/2; iterative
// deepening does not start another iteration past it.
type TimeHandler struct {
	startTime  time.Time
	hardLimit  time.Duration
	softLimit  time.Duration
	useLimit   bool
	stopSearch bool
}

func (th *TimeHandler) initTimeManagement(limits SearchLimits) {
	th.startTime = time.Now()
	th.stopSearch = false
	th.useLimit = false

	if limits.Infinite {
		return
	}

	var hard int64
	if limits.MoveTimeMs > 0 {
		hard = limits.MoveTimeMs
	}
	if limits.TimeMs > 0 {
		allocated := limits.TimeMs/30 + limits.IncMs/2
		if hard == 0 || allocated < hard {
			hard = allocated
		}
	}
	if hard <= 0 {
		return
	}

	th.useLimit = true
	th.hardLimit = time.Duration(hard) * time.Millisecond
	th.softLimit = th.hardLimit / 2
}

// Elapsed returns the time spent in the current search.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.startTime) }

// TimeStatus reports whether the hard limit has been exceeded.
func (th *TimeHandler) TimeStatus() bool {
	return th.useLimit && th.Elapsed() >= th.hardLimit
}

// SoftTimeExceeded reports whether a new iteration should not be started.
func (th *TimeHandler) SoftTimeExceeded() bool {
	return th.useLimit && th.Elapsed() >= th.softLimit
}
