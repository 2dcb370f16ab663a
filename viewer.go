package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Default pan step as a percentage of the window dimension.
const defaultMoveStep = 10

var (
	errExitRequested = errors.New("exit requested")
	errNoMoreImages  = errors.New("no more images to view")
)

// AAMode selects the sampling filter for scaled drawing.
type AAMode int

const (
	AANearest AAMode = iota
	AALinear
)

var aaModeNames = []string{
	AANearest: "nearest",
	AALinear:  "linear",
}

func (m AAMode) String() string {
	if m < 0 || int(m) >= len(aaModeNames) {
		return "unknown"
	}
	return aaModeNames[m]
}

// Next returns the following filter, wrapping after the last one.
func (m AAMode) Next() AAMode {
	return AAMode((int(m) + 1) % len(aaModeNames))
}

// ParseAAMode resolves a filter name from config or action params.
func ParseAAMode(name string) (AAMode, bool) {
	for i, n := range aaModeNames {
		if n == name {
			return AAMode(i), true
		}
	}
	return AANearest, false
}

// NavDirection selects how the next collection index is resolved.
type NavDirection int

const (
	NavFirst NavDirection = iota
	NavLast
	NavPrevDir
	NavNextDir
	NavPrevFile
	NavNextFile
	NavRandFile
)

// ViewerSession is the mutable view state: position, scale and the toggles
// that survive image changes. Mutated only from the update goroutine.
type ViewerSession struct {
	X, Y  float64 // top-left corner of the scaled image in window coords
	Scale float64 // zero until the first image is presented

	LastW, LastH int // native frame size of the previous image (keep-zoom)
	Frame        int // current frame index of a multi-frame image

	Fixed     bool // pinned mode: image bound to the window
	Anchor    Anchor
	ScaleInit ScaleMode // preset applied on image changes
	KeepZoom  bool
	AA        AAMode

	AnimationEnabled bool
	SlideshowEnabled bool
}

// Viewer is the single-threaded state machine behind every user action and
// timer wake. All methods must be called from the update goroutine.
type Viewer struct {
	session ViewerSession

	list   *ImageList
	source ImageSource
	wnd    PresentationSink
	info   StatusSink

	animTimer  WakeTimer
	slideTimer WakeTimer

	slideshowTime time.Duration
	moveStep      int // last accepted pan step, percent of window
}

func NewViewer(list *ImageList, source ImageSource, wnd PresentationSink, info StatusSink,
	animTimer, slideTimer WakeTimer, cfg *Config) *Viewer {
	v := &Viewer{
		list:          list,
		source:        source,
		wnd:           wnd,
		info:          info,
		animTimer:     animTimer,
		slideTimer:    slideTimer,
		slideshowTime: time.Duration(cfg.SlideshowTime) * time.Second,
		moveStep:      defaultMoveStep,
	}
	v.session.Fixed = cfg.FixedPosition
	v.session.KeepZoom = cfg.KeepZoom
	v.session.AnimationEnabled = cfg.Animation
	v.session.SlideshowEnabled = cfg.Slideshow
	if a, ok := ParseAnchor(cfg.Position); ok {
		v.session.Anchor = a
	} else {
		v.session.Anchor = AnchorCenter
	}
	if m, ok := ParseScaleMode(cfg.Scale); ok {
		v.session.ScaleInit = m
	}
	if aa, ok := ParseAAMode(cfg.AntiAliasing); ok {
		v.session.AA = aa
	}
	return v
}

// Session exposes the view state to the renderer.
func (v *Viewer) Session() *ViewerSession {
	return &v.session
}

// CurrentImage returns the presented image, nil before Init.
func (v *Viewer) CurrentImage() *Image {
	return v.source.Current()
}

// CurrentFrame returns the presented frame, nil before Init.
func (v *Viewer) CurrentFrame() *Frame {
	img := v.source.Current()
	if img == nil {
		return nil
	}
	return img.Frame(v.session.Frame)
}

// Init opens the first loadable entry starting at startIndex and presents
// it. Fails only when nothing in the collection loads.
func (v *Viewer) Init(startIndex int) error {
	index := startIndex
	if index < 0 || index >= v.list.Len() {
		index = 0
	}
	if !v.source.Open(index) {
		opened := false
		for i := index + 1; i < v.list.Len(); i++ {
			if v.source.Open(i) {
				opened = true
				break
			}
		}
		if !opened {
			for i := index - 1; i >= 0; i-- {
				if v.source.Open(i) {
					opened = true
					break
				}
			}
		}
		if !opened {
			return errNoMoreImages
		}
	}
	v.resetState()
	return nil
}

// fixup reestablishes the position invariants for the current window and
// frame.
func (v *Viewer) fixup(force bool) {
	f := v.CurrentFrame()
	if f == nil {
		return
	}
	w, h := v.wnd.WindowSize()
	fixupPosition(&v.session, force, float64(w), float64(h), float64(f.W), float64(f.H))
}

// setScale applies a fixed scale preset and re-anchors the image.
func (v *Viewer) setScale(mode ScaleMode) {
	f := v.CurrentFrame()
	if f == nil {
		return
	}
	w, h := v.wnd.WindowSize()
	v.session.Scale = computeScale(mode, float64(w), float64(h), float64(f.W), float64(f.H))
	v.fixup(true)
	v.updateScaleInfo()
}

func (v *Viewer) updateScaleInfo() {
	v.info.UpdateField(fieldScale, fmt.Sprintf("%.0f%%", v.session.Scale*100))
}

func (v *Viewer) updateIndexInfo() {
	img := v.source.Current()
	if img == nil || v.list.Len() == 0 {
		return
	}
	v.info.UpdateField(fieldIndex, fmt.Sprintf("%d of %d", img.Index+1, v.list.Len()))
}

// scaleImage switches the scale preset: a named mode from params, or the
// next one in the cycle when params is empty.
func (v *Viewer) scaleImage(params string) {
	mode := v.session.ScaleInit
	if params == "" {
		mode = mode.Next()
	} else {
		m, ok := ParseScaleMode(params)
		if !ok {
			v.info.UpdateField(fieldStatus, fmt.Sprintf("Invalid scale operation: %s", params))
			return
		}
		mode = m
	}
	v.session.ScaleInit = mode
	v.setScale(mode)
	v.info.UpdateField(fieldStatus, fmt.Sprintf("Scale %s", mode))
	v.wnd.RequestRedraw()
}

// zoomImage handles the zoom action: a named preset, or a signed percent
// step relative to the current scale. Free zoom keeps the point under the
// window center stationary.
func (v *Viewer) zoomImage(params string) {
	if params == "" {
		return
	}
	if mode, ok := ParseScaleMode(params); ok {
		v.setScale(mode)
		v.wnd.RequestRedraw()
		return
	}

	percent, err := strconv.Atoi(params)
	if err != nil || percent == 0 || percent <= -1000 || percent >= 1000 {
		v.info.UpdateField(fieldStatus, fmt.Sprintf("Invalid zoom operation: %s", params))
		return
	}

	f := v.CurrentFrame()
	if f == nil {
		return
	}
	w, h := v.wnd.WindowSize()
	wndHalfW := float64(w) / 2
	wndHalfH := float64(h) / 2

	step := v.session.Scale / 100 * float64(percent)
	centerX := wndHalfW/v.session.Scale - v.session.X/v.session.Scale
	centerY := wndHalfH/v.session.Scale - v.session.Y/v.session.Scale

	if percent > 0 {
		v.session.Scale += step
		if v.session.Scale > maxScaleFactor {
			v.session.Scale = maxScaleFactor
		}
	} else {
		min := minZoomScale(float64(f.W), float64(f.H))
		v.session.Scale += step
		if v.session.Scale < min {
			v.session.Scale = min
		}
	}

	v.session.X = wndHalfW - centerX*v.session.Scale
	v.session.Y = wndHalfH - centerY*v.session.Scale
	v.fixup(false)
	v.updateScaleInfo()
	v.wnd.RequestRedraw()
}

// moveImage pans the image by a percentage of the window dimension. A valid
// params value replaces the remembered step; an invalid one is reported and
// the previous step is used.
func (v *Viewer) moveImage(horizontal, positive bool, params string) {
	if params != "" {
		val, err := strconv.Atoi(params)
		if err == nil && val > 0 && val <= 1000 {
			v.moveStep = val
		} else {
			v.info.UpdateField(fieldStatus, fmt.Sprintf("Invalid move step: %s", params))
		}
	}

	oldX, oldY := v.session.X, v.session.Y
	step := v.moveStep
	if !positive {
		step = -step
	}

	w, h := v.wnd.WindowSize()
	if horizontal {
		v.session.X += float64(w) / 100 * float64(step)
	} else {
		v.session.Y += float64(h) / 100 * float64(step)
	}

	v.fixup(false)
	if v.session.X != oldX || v.session.Y != oldY {
		v.wnd.RequestRedraw()
	}
}

// rotateImage turns the image a quarter turn, keeping its visual center in
// place by compensating for the width/height swap.
func (v *Viewer) rotateImage(clockwise bool) {
	img := v.source.Current()
	f := v.CurrentFrame()
	if img == nil || f == nil {
		return
	}

	shift := v.session.Scale * float64(f.W-f.H) / 2
	if clockwise {
		img.Rotate(90)
	} else {
		img.Rotate(270)
	}
	v.session.X += shift
	v.session.Y -= shift

	v.fixup(false)
	v.info.UpdateField(fieldImageSize, fmt.Sprintf("%dx%d", f.W, f.H))
	v.wnd.RequestRedraw()
}

func (v *Viewer) flipImage(horizontal bool) {
	img := v.source.Current()
	if img == nil {
		return
	}
	if horizontal {
		img.FlipHorizontal()
	} else {
		img.FlipVertical()
	}
	v.wnd.RequestRedraw()
}

func (v *Viewer) toggleKeepZoom() {
	v.session.KeepZoom = !v.session.KeepZoom
	if v.session.KeepZoom {
		v.info.UpdateField(fieldStatus, "Keep zoom ON")
	} else {
		v.info.UpdateField(fieldStatus, "Keep zoom OFF")
	}
	v.wnd.RequestRedraw()
}

// toggleAA switches the sampling filter: a named filter from params, or the
// next one in the cycle when params is empty.
func (v *Viewer) toggleAA(params string) {
	if params == "" {
		v.session.AA = v.session.AA.Next()
	} else {
		aa, ok := ParseAAMode(params)
		if !ok {
			v.info.UpdateField(fieldStatus, fmt.Sprintf("Invalid anti-aliasing: %s", params))
			return
		}
		v.session.AA = aa
	}
	v.info.UpdateField(fieldStatus, fmt.Sprintf("Anti-aliasing: %s", v.session.AA))
	v.wnd.RequestRedraw()
}

// animationCtl starts or stops frame playback. Starting degrades to a no-op
// for still images and multi-frame images without timing.
func (v *Viewer) animationCtl(enable bool) {
	var d time.Duration
	if enable {
		img := v.source.Current()
		f := v.CurrentFrame()
		enable = img != nil && len(img.Frames) > 1 && f != nil && f.Duration > 0
		if enable {
			d = f.Duration
		}
	}
	v.session.AnimationEnabled = enable
	if enable {
		v.animTimer.Arm(d)
	} else {
		v.animTimer.Disarm()
	}
}

// slideshowCtl starts or stops the slideshow timer.
func (v *Viewer) slideshowCtl(enable bool) {
	v.session.SlideshowEnabled = enable
	if enable {
		v.slideTimer.Arm(v.slideshowTime)
	} else {
		v.slideTimer.Disarm()
	}
}

// resetState presents the current image from scratch: frame zero, scale per
// preset or carried over in keep-zoom mode, playback timers rearmed.
func (v *Viewer) resetState() {
	img := v.source.Current()
	if img == nil {
		return
	}
	v.session.Frame = 0
	f := img.Frame(0)
	if f == nil {
		return
	}

	if !v.session.KeepZoom || v.session.Scale == 0 {
		v.setScale(v.session.ScaleInit)
	} else {
		// keep the zoom factor, recenter for the size difference
		diffW := v.session.LastW - f.W
		diffH := v.session.LastH - f.H
		v.session.X += math.Floor(v.session.Scale*float64(diffW)) / 2
		v.session.Y += math.Floor(v.session.Scale*float64(diffH)) / 2
		v.fixup(true)
		v.updateScaleInfo()
	}
	v.session.LastW = f.W
	v.session.LastH = f.H

	v.wnd.SetWindowTitle(img.Name)
	v.animationCtl(true)
	v.slideshowCtl(v.session.SlideshowEnabled)

	v.info.ResetImage(img)
	v.updateIndexInfo()
	v.wnd.SetContentAnimated(v.session.AnimationEnabled)
	v.wnd.RequestRedraw()
}

// nextImage resolves and opens the next image in the given direction,
// skipping unloadable entries. First/last fall through to forward/backward
// stepping when the boundary entry fails. Returns false when no loadable
// image is reachable; the current image stays presented.
func (v *Viewer) nextImage(dir NavDirection) bool {
	img := v.source.Current()
	if img == nil {
		return false
	}
	index := img.Index

	for attempts := 0; attempts <= v.list.Len(); attempts++ {
		switch dir {
		case NavFirst:
			index = v.list.First()
			dir = NavNextFile
		case NavLast:
			index = v.list.Last()
			dir = NavPrevFile
		case NavPrevDir:
			index = v.list.PrevDir(index)
		case NavNextDir:
			index = v.list.NextDir(index)
		case NavPrevFile:
			index = v.list.PrevFile(index)
		case NavNextFile:
			index = v.list.NextFile(index)
		case NavRandFile:
			index = v.list.RandFile(index)
		}
		if index == invalidIndex {
			return false
		}
		if v.source.Open(index) {
			v.resetState()
			return true
		}
	}
	return false
}

// skipImage removes the current entry from the collection and presents the
// entry that took its place, dropping further unloadable entries along the
// way. Returns false when the collection is exhausted.
func (v *Viewer) skipImage() bool {
	img := v.source.Current()
	if img == nil {
		return false
	}
	index := v.list.Skip(img.Index)
	for index != invalidIndex && !v.source.Open(index) {
		index = v.list.Skip(index)
	}
	if index == invalidIndex {
		return false
	}
	v.resetState()
	return true
}

// reload re-reads the current image from its origin. When the origin is
// gone the nearest loadable neighbor is presented instead.
func (v *Viewer) reload() error {
	img := v.source.Current()
	if img == nil {
		return errNoMoreImages
	}
	index := img.Index
	if !v.source.Reset(index, true) {
		return errNoMoreImages
	}
	if v.source.Current().Index == index {
		v.info.UpdateField(fieldStatus, "Image reloaded")
	} else {
		v.info.UpdateField(fieldStatus, "Unable to update, open next file")
	}
	v.resetState()
	return nil
}

// nextFrame steps the frame index of a multi-frame image, wrapping at both
// ends.
func (v *Viewer) nextFrame(forward bool) {
	img := v.source.Current()
	if img == nil {
		return
	}
	n := len(img.Frames)
	if n < 2 {
		return
	}

	index := v.session.Frame
	if forward {
		index = (index + 1) % n
	} else {
		index = (index - 1 + n) % n
	}
	if index == v.session.Frame {
		return
	}
	v.session.Frame = index

	f := img.Frame(index)
	v.info.UpdateField(fieldFrame, fmt.Sprintf("%d of %d", index+1, n))
	v.info.UpdateField(fieldImageSize, fmt.Sprintf("%dx%d", f.W, f.H))
	v.wnd.RequestRedraw()
}

// OnAnimationTimer advances playback by one frame and rearms for the new
// frame's duration. Stale fires after playback stopped are ignored.
func (v *Viewer) OnAnimationTimer() {
	if !v.session.AnimationEnabled {
		return
	}
	v.nextFrame(true)
	v.animationCtl(true)
}

// OnSlideshowTimer advances to the next image and keeps the slideshow
// running while navigation succeeds. Stale fires after the slideshow
// stopped are ignored.
func (v *Viewer) OnSlideshowTimer() {
	if !v.session.SlideshowEnabled {
		return
	}
	v.slideshowCtl(v.nextImage(NavNextFile))
}

// OnResize revalidates the position for the new window size and represents
// the current image.
func (v *Viewer) OnResize() {
	v.fixup(false)
	v.resetState()
}

// OnDrag pans the image by a pixel delta.
func (v *Viewer) OnDrag(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	oldX, oldY := v.session.X, v.session.Y
	v.session.X += float64(dx)
	v.session.Y += float64(dy)
	v.fixup(false)
	if v.session.X != oldX || v.session.Y != oldY {
		v.wnd.RequestRedraw()
	}
}

// HandleEvent dispatches one queued event on the update goroutine.
func (v *Viewer) HandleEvent(ev Event) {
	switch ev.Kind {
	case eventAnimationTick:
		v.OnAnimationTimer()
	case eventSlideshowTick:
		v.OnSlideshowTimer()
	case eventImageLoaded:
		v.source.Attach(ev.Index, ev.Img)
	}
}

// Apply executes a named viewer action. Unknown names are ignored so the
// caller can layer application-level actions on top.
func (v *Viewer) Apply(name, params string) error {
	switch name {
	case "first_file":
		v.nextImage(NavFirst)
	case "last_file":
		v.nextImage(NavLast)
	case "prev_dir":
		v.nextImage(NavPrevDir)
	case "next_dir":
		v.nextImage(NavNextDir)
	case "prev_file":
		v.nextImage(NavPrevFile)
	case "next_file":
		v.nextImage(NavNextFile)
	case "rand_file":
		v.nextImage(NavRandFile)
	case "skip_file":
		if !v.skipImage() {
			return errNoMoreImages
		}
	case "prev_frame", "next_frame":
		v.animationCtl(false)
		v.wnd.SetContentAnimated(false)
		v.nextFrame(name == "next_frame")
	case "animation":
		v.animationCtl(!v.session.AnimationEnabled)
		v.wnd.SetContentAnimated(v.session.AnimationEnabled)
	case "slideshow":
		v.slideshowCtl(!v.session.SlideshowEnabled && v.nextImage(NavNextFile))
	case "step_left":
		v.moveImage(true, true, params)
	case "step_right":
		v.moveImage(true, false, params)
	case "step_up":
		v.moveImage(false, true, params)
	case "step_down":
		v.moveImage(false, false, params)
	case "zoom":
		v.zoomImage(params)
	case "scale":
		v.scaleImage(params)
	case "keep_zoom":
		v.toggleKeepZoom()
	case "rotate_left":
		v.rotateImage(false)
	case "rotate_right":
		v.rotateImage(true)
	case "flip_horizontal":
		v.flipImage(true)
	case "flip_vertical":
		v.flipImage(false)
	case "antialiasing":
		v.toggleAA(params)
	case "reload":
		return v.reload()
	case "exit":
		return errExitRequested
	}
	return nil
}
