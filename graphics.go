package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Transparency grid parameters
const gridCellSize = 10

var (
	gridColorDark  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	gridColorLight = color.RGBA{0x4c, 0x4c, 0x4c, 0xff}
)

// Global font source for error image generation
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// parseHexColor parses an "#rrggbb" color string.
func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// drawCheckerGrid fills the given rectangle with the transparency checker
// pattern, clipped to the screen. Cells are aligned to the rectangle origin.
func drawCheckerGrid(screen *ebiten.Image, x, y, w, h float64) {
	clip := image.Rect(int(x), int(y), int(math.Ceil(x+w)), int(math.Ceil(y+h))).
		Intersect(screen.Bounds())
	if clip.Empty() {
		return
	}
	region := screen.SubImage(clip).(*ebiten.Image)
	region.Fill(gridColorDark)

	cell := float64(gridCellSize)
	rowStart := int(math.Max(0, math.Floor((float64(clip.Min.Y)-y)/cell)))
	colStart := int(math.Max(0, math.Floor((float64(clip.Min.X)-x)/cell)))
	for row := rowStart; ; row++ {
		cy := y + float64(row)*cell
		if cy >= float64(clip.Max.Y) || cy >= y+h {
			break
		}
		for col := colStart; ; col++ {
			cx := x + float64(col)*cell
			if cx >= float64(clip.Max.X) || cx >= x+w {
				break
			}
			if (row+col)%2 == 0 {
				continue
			}
			cw := math.Min(cell, x+w-cx)
			ch := math.Min(cell, y+h-cy)
			DrawFilledRect(region, cx, cy, cw, ch, gridColorLight)
		}
	}
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	// Default size if not specified
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background

	// Draw white border
	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(errorImg, 0, 0, float64(width), 3, white)
	DrawFilledRect(errorImg, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(errorImg, 0, 0, 3, float64(height), white)
	DrawFilledRect(errorImg, float64(width-3), 0, 3, float64(height), white)

	if globalFontSource == nil {
		// No font available: the bordered rectangle alone
		return errorImg
	}

	// Create font for error text
	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	// Prepare text content
	errorTitle := "ERROR"
	fileText := "File: " + filepath.Base(filename)
	reasonText := "Reason: " + errorMsg

	// Truncate long text to fit within image bounds
	maxChars := (width - 20) / 10 // Rough estimate: 10px per character
	if maxChars > 3 {
		if len(fileText) > maxChars {
			fileText = fileText[:maxChars-3] + "..."
		}
		if len(reasonText) > maxChars {
			reasonText = reasonText[:maxChars-3] + "..."
		}
	}

	// Draw error text
	DrawText(errorImg, errorTitle, errorFont, 10, 30, white)
	DrawText(errorImg, fileText, errorFont, 10, 60, white)
	DrawText(errorImg, reasonText, errorFont, 10, 90, white)

	return errorImg
}
