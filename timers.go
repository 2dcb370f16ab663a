package main

import (
	"sync"
	"time"
)

// PlaybackTimer is a single-shot wake source. Each Arm schedules exactly
// one fire, delivered as a queued event; the handler rearms it if playback
// continues. Arm and Disarm are idempotent.
type PlaybackTimer struct {
	queue chan<- Event
	kind  eventKind

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64 // invalidates fires from a superseded arm
}

// NewPlaybackTimer creates a timer that posts events of the given kind.
// A nil queue yields a permanently disarmed timer: the feature simply
// stays unavailable instead of failing the session.
func NewPlaybackTimer(queue chan<- Event, kind eventKind) *PlaybackTimer {
	return &PlaybackTimer{queue: queue, kind: kind}
}

// Arm schedules a single fire after d. A non-positive duration disarms,
// mirroring a zero timerspec.
func (t *PlaybackTimer) Arm(d time.Duration) {
	if t == nil || t.queue == nil {
		return
	}
	if d <= 0 {
		t.Disarm()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq
	t.timer = time.AfterFunc(d, func() { t.fire(seq) })
}

// firePostRetry is the delay before redelivering a fire that found the
// event queue full.
const firePostRetry = 10 * time.Millisecond

// fire posts the wake event unless a later Arm or Disarm superseded this
// schedule. The timer is single-shot, so a fire swallowed by a full queue
// would never be rearmed; redeliver it instead.
func (t *PlaybackTimer) fire(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return
	}
	if !postEvent(t.queue, Event{Kind: t.kind}) {
		t.timer = time.AfterFunc(firePostRetry, func() { t.fire(seq) })
	}
}

// Disarm cancels a pending fire. A fire already queued is neutralized by
// the enabled-flag check in the viewer at dispatch time.
func (t *PlaybackTimer) Disarm() {
	if t == nil || t.queue == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
}
