package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Overlay text appearance
const infoFontSize = 16.0

var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}

	// Background color for semi-transparent overlays
	bgColorLight = color.RGBA{0, 0, 0, 128}
)

// Renderer draws the presented frame at the session position and scale,
// plus the info overlay. It reads state, never mutates it.
type Renderer struct {
	viewer *Viewer
	info   *Info

	fontSource *text.GoTextFaceSource

	windowBkg color.RGBA
	imageBkg  color.RGBA
	useGrid   bool

	// lazily built placeholder for frames without a texture
	errorImg *ebiten.Image
}

// NewRenderer creates a new Renderer. Background colors come validated from
// the config loader.
func NewRenderer(viewer *Viewer, info *Info, cfg *Config) *Renderer {
	r := &Renderer{
		viewer:     viewer,
		info:       info,
		fontSource: globalFontSource,
	}

	var err error
	r.windowBkg, err = parseHexColor(cfg.WindowBackground)
	if err != nil {
		log.Printf("Warning: Invalid window background: %v", err)
		r.windowBkg = color.RGBA{A: 0xff}
	}
	if cfg.ImageBackground == "grid" {
		r.useGrid = true
	} else {
		r.imageBkg, err = parseHexColor(cfg.ImageBackground)
		if err != nil {
			log.Printf("Warning: Invalid image background: %v", err)
			r.useGrid = true
		}
	}
	return r
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Fill(r.windowBkg)

	img := r.viewer.CurrentImage()
	f := r.viewer.CurrentFrame()
	if img == nil || f == nil {
		return
	}
	s := r.viewer.Session()

	imgW := s.Scale * float64(f.W)
	imgH := s.Scale * float64(f.H)

	// Transparent images get a backdrop limited to the image rectangle
	if img.Alpha {
		if r.useGrid {
			drawCheckerGrid(screen, s.X, s.Y, imgW, imgH)
		} else {
			DrawFilledRect(screen, s.X, s.Y, imgW, imgH, r.imageBkg)
		}
	}

	tex := f.Img
	if tex == nil {
		if r.errorImg == nil {
			r.errorImg = CreateErrorImage(f.W, f.H, img.Name, "no image data")
		}
		tex = r.errorImg
	}

	op := &ebiten.DrawImageOptions{}
	// Nearest sampling at 100% is exact; the filter only matters when scaling
	if s.AA == AALinear && s.Scale != 1.0 {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	op.GeoM.Scale(s.Scale, s.Scale)
	op.GeoM.Translate(s.X, s.Y)
	screen.DrawImage(tex, op)

	r.drawOverlay(screen)
}

// drawOverlay renders the info block and the expiring status line in the
// top-left corner.
func (r *Renderer) drawOverlay(screen *ebiten.Image) {
	if r.fontSource == nil {
		return
	}

	var lines []string
	if r.info.Visible() {
		lines = r.info.Lines()
	}
	status, hasStatus := r.info.Status()

	if len(lines) == 0 && !hasStatus {
		return
	}

	font := &text.GoTextFace{
		Source: r.fontSource,
		Size:   infoFontSize,
	}
	lineHeight := infoFontSize * 1.5
	padding := 10.0

	// Background sized to the widest line
	maxWidth := 0.0
	all := lines
	if hasStatus {
		all = append(append([]string{}, lines...), status)
	}
	for _, line := range all {
		w, _ := text.Measure(line, font, 0)
		if w > maxWidth {
			maxWidth = w
		}
	}
	bgH := float64(len(all))*lineHeight + padding
	DrawFilledRect(screen, 0, 0, maxWidth+padding*2, bgH, bgColorLight)

	y := padding / 2
	for _, line := range lines {
		DrawText(screen, line, font, padding, y, colorLightGray)
		y += lineHeight
	}
	if hasStatus {
		DrawText(screen, status, font, padding, y, colorWhite)
	}
}
