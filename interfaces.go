package main

import "time"

// ImageSource is the fetch collaborator the viewer navigates through. The
// implementation owns decoding and caching; the viewer only ever holds the
// current image for the duration of one dispatch.
type ImageSource interface {
	// Current returns the active image. Never nil after a successful Open.
	Current() *Image
	// Open makes the entry at index current, decoding it if needed.
	// Returns false when the entry cannot be loaded.
	Open(index int) bool
	// Reset re-opens the entry at index, dropping any cached decode when
	// forceReload is set. Falls forward (then backward) to a loadable
	// neighbor if the entry itself no longer loads; returns false only
	// when nothing in the collection loads.
	Reset(index int, forceReload bool) bool
	// Attach adopts an image decoded in the background.
	Attach(index int, img *Image)
}

// PresentationSink is the window/compositor side of the session.
type PresentationSink interface {
	WindowSize() (int, int)
	RequestRedraw()
	SetWindowTitle(title string)
	// SetContentAnimated hints the backend about continuous-redraw needs.
	SetContentAnimated(animated bool)
}

// StatusSink receives user-visible status/info text. The viewer formats,
// the sink displays; nothing is interpreted.
type StatusSink interface {
	UpdateField(field InfoField, text string)
	// ResetImage refreshes the per-image fields for a newly presented image.
	ResetImage(img *Image)
}

// WakeTimer is a single-shot wake resource: each Arm produces exactly one
// fire, delivered as a queued event on the update goroutine.
type WakeTimer interface {
	Arm(d time.Duration)
	Disarm()
}
