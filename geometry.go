package main

import "math"

// Scale thresholds
const (
	minScalePx     = 10.0  // shortest native dimension never drops below this on screen
	maxScaleFactor = 100.0 // upper zoom bound
)

// ScaleMode is one of the fixed scale presets applied on image changes
// and cycled by the scale action.
type ScaleMode int

const (
	ScaleOptimal ScaleMode = iota // fit to window, but never upscale past 100%
	ScaleFit                      // fit to window
	ScaleWidth                    // fit width to window width
	ScaleHeight                   // fit height to window height
	ScaleFill                     // fill the window
	ScaleReal                     // real size (100%)
)

var scaleModeNames = []string{
	ScaleOptimal: "optimal",
	ScaleFit:     "fit",
	ScaleWidth:   "width",
	ScaleHeight:  "height",
	ScaleFill:    "fill",
	ScaleReal:    "real",
}

func (m ScaleMode) String() string {
	if m < 0 || int(m) >= len(scaleModeNames) {
		return "unknown"
	}
	return scaleModeNames[m]
}

// Next returns the following mode, wrapping after the last one.
func (m ScaleMode) Next() ScaleMode {
	return ScaleMode((int(m) + 1) % len(scaleModeNames))
}

// ParseScaleMode resolves a mode name from config or action params.
func ParseScaleMode(name string) (ScaleMode, bool) {
	for i, n := range scaleModeNames {
		if n == name {
			return ScaleMode(i), true
		}
	}
	return ScaleOptimal, false
}

// Anchor names the position used to (re)place the image within the window.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorCenter
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

var anchorNames = []string{
	AnchorTop:         "top",
	AnchorCenter:      "center",
	AnchorBottom:      "bottom",
	AnchorLeft:        "left",
	AnchorRight:       "right",
	AnchorTopLeft:     "topleft",
	AnchorTopRight:    "topright",
	AnchorBottomLeft:  "bottomleft",
	AnchorBottomRight: "bottomright",
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return "unknown"
	}
	return anchorNames[a]
}

// ParseAnchor resolves an anchor name from config.
func ParseAnchor(name string) (Anchor, bool) {
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), true
		}
	}
	return AnchorCenter, false
}

// axisRule describes how a single coordinate is derived from the anchor.
type axisRule int

const (
	axisCentered axisRule = iota
	axisMinEdge
	axisMaxEdge
)

// Per-anchor axis rules. Collapses the nine-way position switch into two
// independent axis lookups.
var anchorRules = [...]struct{ x, y axisRule }{
	AnchorTop:         {axisCentered, axisMinEdge},
	AnchorCenter:      {axisCentered, axisCentered},
	AnchorBottom:      {axisCentered, axisMaxEdge},
	AnchorLeft:        {axisMinEdge, axisCentered},
	AnchorRight:       {axisMaxEdge, axisCentered},
	AnchorTopLeft:     {axisMinEdge, axisMinEdge},
	AnchorTopRight:    {axisMaxEdge, axisMinEdge},
	AnchorBottomLeft:  {axisMinEdge, axisMaxEdge},
	AnchorBottomRight: {axisMaxEdge, axisMaxEdge},
}

func axisCoord(rule axisRule, wnd, img float64) float64 {
	switch rule {
	case axisMinEdge:
		return 0
	case axisMaxEdge:
		return wnd - img
	default:
		return wnd/2 - img/2
	}
}

// computeScale returns the scale factor for a fixed scale mode given the
// window and the native frame size. Pure; the caller owns clamping for
// free zoom.
func computeScale(mode ScaleMode, wndW, wndH, frameW, frameH float64) float64 {
	if frameW <= 0 || frameH <= 0 {
		return 1.0
	}
	scaleW := wndW / frameW
	scaleH := wndH / frameH

	switch mode {
	case ScaleOptimal:
		s := math.Min(scaleW, scaleH)
		if s > 1.0 {
			s = 1.0
		}
		return s
	case ScaleFit:
		return math.Min(scaleW, scaleH)
	case ScaleWidth:
		return scaleW
	case ScaleHeight:
		return scaleH
	case ScaleFill:
		return math.Max(scaleW, scaleH)
	default: // ScaleReal
		return 1.0
	}
}

// minZoomScale is the lowest scale the zoom operation may reach for the
// given native frame size: the shorter dimension stays at least minScalePx
// on screen.
func minZoomScale(frameW, frameH float64) float64 {
	if frameW <= 0 || frameH <= 0 {
		return minScalePx
	}
	return math.Max(minScalePx/frameW, minScalePx/frameH)
}

// fixupPosition reestablishes the session position invariants for the
// current window and frame size. Three independent passes:
//
//  1. anchor pass: per axis, if forced or the image is pinned and fits,
//     the coordinate is recomputed from the anchor;
//  2. edge bind: in pinned mode an oversized image must not leave a gap
//     at the border it overhangs;
//  3. safety clamp: the image can never drift further than one full image
//     dimension outside the window.
//
// Each pass is idempotent on its own, so calling fixupPosition twice in a
// row yields the same position.
func fixupPosition(s *ViewerSession, force bool, wndW, wndH, frameW, frameH float64) {
	imgW := s.Scale * frameW
	imgH := s.Scale * frameH

	rule := anchorRules[s.Anchor]
	if force || (s.Fixed && imgW <= wndW) {
		s.X = axisCoord(rule.x, wndW, imgW)
	}
	if force || (s.Fixed && imgH <= wndH) {
		s.Y = axisCoord(rule.y, wndH, imgH)
	}

	if s.Fixed {
		// bind to window border
		if s.X > 0 && s.X+imgW > wndW {
			s.X = 0
		}
		if s.Y > 0 && s.Y+imgH > wndH {
			s.Y = 0
		}
		if s.X < 0 && s.X+imgW < wndW {
			s.X = wndW - imgW
		}
		if s.Y < 0 && s.Y+imgH < wndH {
			s.Y = wndH - imgH
		}
	}

	// don't let the image get far out of the window
	if s.X+imgW < 0 {
		s.X = -imgW
	}
	if s.X > wndW {
		s.X = wndW
	}
	if s.Y+imgH < 0 {
		s.Y = -imgH
	}
	if s.Y > wndH {
		s.Y = wndH
	}
}
