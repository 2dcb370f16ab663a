package main

// eventKind tags the asynchronous events delivered to the update loop.
// User actions, resizes and drags are polled synchronously each tick and
// never appear here; only the timers and the background loader post.
type eventKind int

const (
	eventAnimationTick eventKind = iota
	eventSlideshowTick
	eventImageLoaded
)

// Event is the tagged union drained by Game.Update. All session state
// mutation happens on that single goroutine.
type Event struct {
	Kind  eventKind
	Index int    // eventImageLoaded: collection index
	Img   *Image // eventImageLoaded: decoded image, nil on failure
}

// postEvent delivers an event without ever blocking the poster and reports
// whether it was queued. The loader ignores a drop (the next preload pass
// covers the same neighbors), but the playback timers are single-shot and
// must reschedule a dropped fire themselves or playback stalls.
func postEvent(queue chan<- Event, ev Event) bool {
	if queue == nil {
		return false
	}
	select {
	case queue <- ev:
		return true
	default:
		debugLog("event queue full, dropping event kind=%d", ev.Kind)
		return false
	}
}
