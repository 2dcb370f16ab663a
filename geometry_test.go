package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScale(t *testing.T) {
	tests := []struct {
		name           string
		mode           ScaleMode
		wndW, wndH     float64
		frameW, frameH float64
		expected       float64
	}{
		{"fit upscales", ScaleFit, 800, 600, 400, 300, 2.0},
		{"fit downscales", ScaleFit, 800, 600, 1600, 1200, 0.5},
		{"fit limited by height", ScaleFit, 800, 600, 400, 600, 1.0},
		{"optimal never upscales", ScaleOptimal, 800, 600, 400, 300, 1.0},
		{"optimal downscales", ScaleOptimal, 800, 600, 1600, 1200, 0.5},
		{"width ignores height", ScaleWidth, 800, 600, 400, 1200, 2.0},
		{"height ignores width", ScaleHeight, 800, 600, 1600, 300, 2.0},
		{"fill takes the larger factor", ScaleFill, 800, 600, 400, 600, 2.0},
		{"real is always 1", ScaleReal, 800, 600, 12345, 7, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeScale(tt.mode, tt.wndW, tt.wndH, tt.frameW, tt.frameH)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestComputeScaleDegenerateFrame(t *testing.T) {
	assert.Equal(t, 1.0, computeScale(ScaleFit, 800, 600, 0, 300))
	assert.Equal(t, 1.0, computeScale(ScaleFill, 800, 600, 400, 0))
}

func TestScaleModeCycle(t *testing.T) {
	// six modes, the cycle wraps back to the first
	m := ScaleOptimal
	for i := 0; i < len(scaleModeNames); i++ {
		m = m.Next()
	}
	assert.Equal(t, ScaleOptimal, m)
	assert.Equal(t, ScaleFit, ScaleOptimal.Next())
	assert.Equal(t, ScaleOptimal, ScaleReal.Next())
}

func TestParseScaleMode(t *testing.T) {
	for i, name := range scaleModeNames {
		m, ok := ParseScaleMode(name)
		require.True(t, ok, name)
		assert.Equal(t, ScaleMode(i), m)
	}
	_, ok := ParseScaleMode("bogus")
	assert.False(t, ok)
}

func TestParseAnchor(t *testing.T) {
	for i, name := range anchorNames {
		a, ok := ParseAnchor(name)
		require.True(t, ok, name)
		assert.Equal(t, Anchor(i), a)
	}
	_, ok := ParseAnchor("middle")
	assert.False(t, ok)
}

func TestMinZoomScale(t *testing.T) {
	// shorter dimension pinned to minScalePx
	assert.InDelta(t, 10.0/300.0, minZoomScale(400, 300), 1e-9)
	assert.InDelta(t, 10.0/200.0, minZoomScale(200, 800), 1e-9)
	assert.Equal(t, minScalePx, minZoomScale(0, 300))
}

func TestFixupPositionAnchors(t *testing.T) {
	tests := []struct {
		anchor Anchor
		x, y   float64
	}{
		{AnchorCenter, 350, 275},
		{AnchorTop, 350, 0},
		{AnchorBottom, 350, 550},
		{AnchorLeft, 0, 275},
		{AnchorRight, 700, 275},
		{AnchorTopLeft, 0, 0},
		{AnchorTopRight, 700, 0},
		{AnchorBottomLeft, 0, 550},
		{AnchorBottomRight, 700, 550},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			s := &ViewerSession{Scale: 1.0, Anchor: tt.anchor, X: 123, Y: 456}
			fixupPosition(s, true, 800, 600, 100, 50)
			assert.InDelta(t, tt.x, s.X, 1e-9)
			assert.InDelta(t, tt.y, s.Y, 1e-9)
		})
	}
}

func TestFixupPositionFitCentered(t *testing.T) {
	// 400x300 frame scaled 2x exactly covers an 800x600 window
	s := &ViewerSession{Scale: 2.0, Anchor: AnchorCenter}
	fixupPosition(s, true, 800, 600, 400, 300)
	assert.InDelta(t, 0.0, s.X, 1e-9)
	assert.InDelta(t, 0.0, s.Y, 1e-9)
}

func TestFixupPositionRealOversized(t *testing.T) {
	s := &ViewerSession{Scale: 1.0, Anchor: AnchorCenter}
	fixupPosition(s, true, 800, 600, 1600, 1200)
	assert.InDelta(t, -400.0, s.X, 1e-9)
	assert.InDelta(t, -300.0, s.Y, 1e-9)
}

func TestFixupPositionPinnedSmallImage(t *testing.T) {
	// pinned mode keeps a fitting image anchored even without force
	s := &ViewerSession{Scale: 1.0, Anchor: AnchorCenter, Fixed: true, X: 5, Y: 7}
	fixupPosition(s, false, 800, 600, 100, 50)
	assert.InDelta(t, 350.0, s.X, 1e-9)
	assert.InDelta(t, 275.0, s.Y, 1e-9)
}

func TestFixupPositionEdgeBind(t *testing.T) {
	// oversized pinned image must not leave a gap at the overhung border
	s := &ViewerSession{Scale: 1.0, Anchor: AnchorCenter, Fixed: true, X: 5, Y: 0}
	fixupPosition(s, false, 800, 600, 1600, 600)
	assert.InDelta(t, 0.0, s.X, 1e-9)

	s = &ViewerSession{Scale: 1.0, Anchor: AnchorCenter, Fixed: true, X: -900, Y: 0}
	fixupPosition(s, false, 800, 600, 1600, 600)
	assert.InDelta(t, 800.0-1600.0, s.X, 1e-9)
}

func TestFixupPositionSafetyClamp(t *testing.T) {
	// free mode: the image never drifts more than its own size away
	s := &ViewerSession{Scale: 1.0, Anchor: AnchorCenter, X: -1000, Y: 900}
	fixupPosition(s, false, 800, 600, 400, 300)
	assert.InDelta(t, -400.0, s.X, 1e-9)
	assert.InDelta(t, 600.0, s.Y, 1e-9)
}

func TestFixupPositionIdempotent(t *testing.T) {
	cases := []ViewerSession{
		{Scale: 1.0, Anchor: AnchorCenter, X: -1000, Y: 900},
		{Scale: 1.0, Anchor: AnchorTopLeft, Fixed: true, X: 5, Y: -7},
		{Scale: 2.5, Anchor: AnchorBottomRight, Fixed: true, X: 100, Y: 100},
	}
	for _, c := range cases {
		s := c
		fixupPosition(&s, false, 800, 600, 640, 480)
		x1, y1 := s.X, s.Y
		fixupPosition(&s, false, 800, 600, 640, 480)
		assert.Equal(t, x1, s.X)
		assert.Equal(t, y1, s.Y)
	}
}
