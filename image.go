package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Multi-frame images that declare a zero delay still animate; this is the
// conventional substitute interval.
const defaultFrameDelay = 100 * time.Millisecond

// Frame is one displayable frame of an image. The native size is kept
// beside the texture so geometry never touches the graphics backend.
type Frame struct {
	Img      *ebiten.Image
	W, H     int
	Duration time.Duration // zero for still images
}

// Image is a decoded collection member: one or more frames plus the
// metadata the viewer state machine reads. Owned by the fetcher; the
// viewer only holds a reference for the duration of one dispatch.
type Image struct {
	Name   string
	Index  int // position in the ordered collection
	Frames []Frame
	Alpha  bool
}

// Frame returns the frame at index, falling back to the first frame for
// out-of-range requests so a stale frame index never panics mid-swap.
func (img *Image) Frame(index int) *Frame {
	if len(img.Frames) == 0 {
		return nil
	}
	if index < 0 || index >= len(img.Frames) {
		index = 0
	}
	return &img.Frames[index]
}

// Rotate turns every frame by the given angle (90, 180 or 270 degrees,
// counted clockwise) in place.
func (img *Image) Rotate(degrees int) {
	if degrees != 90 && degrees != 180 && degrees != 270 {
		return
	}
	for i := range img.Frames {
		f := &img.Frames[i]
		w, h := f.W, f.H
		if degrees == 90 || degrees == 270 {
			f.W, f.H = h, w
		}
		if f.Img == nil {
			continue
		}
		rotated := ebiten.NewImage(f.W, f.H)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Rotate(float64(degrees) * math.Pi / 180)
		op.GeoM.Translate(float64(f.W)/2, float64(f.H)/2)
		rotated.DrawImage(f.Img, op)
		f.Img.Deallocate()
		f.Img = rotated
	}
}

// FlipHorizontal mirrors every frame around the vertical axis in place.
func (img *Image) FlipHorizontal() {
	img.flip(true)
}

// FlipVertical mirrors every frame around the horizontal axis in place.
func (img *Image) FlipVertical() {
	img.flip(false)
}

func (img *Image) flip(horizontal bool) {
	for i := range img.Frames {
		f := &img.Frames[i]
		if f.Img == nil {
			continue
		}
		flipped := ebiten.NewImage(f.W, f.H)
		op := &ebiten.DrawImageOptions{}
		if horizontal {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(f.W), 0)
		} else {
			op.GeoM.Scale(1, -1)
			op.GeoM.Translate(0, float64(f.H))
		}
		flipped.DrawImage(f.Img, op)
		f.Img.Deallocate()
		f.Img = flipped
	}
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// loadImage reads and decodes one collection entry.
func loadImage(entry ImageEntry) (*Image, error) {
	data, err := readEntryData(entry)
	if err != nil {
		return nil, err
	}
	return decodeImage(data, entry.Path)
}

func readEntryData(entry ImageEntry) ([]byte, error) {
	if entry.ArchivePath == "" {
		return os.ReadFile(entry.Path)
	}
	switch strings.ToLower(filepath.Ext(entry.ArchivePath)) {
	case ".zip":
		return readZipEntry(entry.ArchivePath, entry.EntryPath)
	case ".rar":
		return readRarEntry(entry.ArchivePath, entry.EntryPath)
	case ".7z":
		return read7zEntry(entry.ArchivePath, entry.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", entry.ArchivePath)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// decodeImage turns raw bytes into an Image. GIFs keep all frames with
// their per-frame delays; every other format decodes to a single frame.
func decodeImage(data []byte, name string) (*Image, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	if format == "gif" {
		return decodeAnimation(data, name)
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	b := m.Bounds()
	return &Image{
		Name:   filepath.Base(name),
		Frames: []Frame{{Img: ebiten.NewImageFromImage(m), W: b.Dx(), H: b.Dy()}},
		Alpha:  hasAlpha(m),
	}, nil
}

// decodeAnimation coalesces GIF frames onto a shared canvas so each Frame
// is a full composite, not a delta.
func decodeAnimation(data []byte, name string) (*Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decoding %s: no frames", name)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	img := &Image{
		Name:   filepath.Base(name),
		Frames: make([]Frame, 0, len(g.Image)),
	}
	alpha := false
	for i, pal := range g.Image {
		draw.Draw(canvas, pal.Bounds(), pal, pal.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)
		if !snapshot.Opaque() {
			alpha = true
		}

		duration := time.Duration(0)
		if len(g.Image) > 1 {
			duration = time.Duration(g.Delay[i]) * 10 * time.Millisecond
			if duration <= 0 {
				duration = defaultFrameDelay
			}
		}
		img.Frames = append(img.Frames, Frame{
			Img:      ebiten.NewImageFromImage(snapshot),
			W:        bounds.Dx(),
			H:        bounds.Dy(),
			Duration: duration,
		})
	}
	img.Alpha = alpha
	return img, nil
}

func hasAlpha(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// expandArchive lists the image entries of an archive in member order.
func expandArchive(archivePath string) ([]ImageEntry, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return expandZip(archivePath)
	case ".rar":
		return expandRar(archivePath)
	case ".7z":
		return expand7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}
}

func expandZip(archivePath string) ([]ImageEntry, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []ImageEntry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			entries = append(entries, ImageEntry{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return entries, nil
}

func expandRar(archivePath string) ([]ImageEntry, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var entries []ImageEntry
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			entries = append(entries, ImageEntry{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return entries, nil
}

func expand7z(archivePath string) ([]ImageEntry, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []ImageEntry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			entries = append(entries, ImageEntry{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return entries, nil
}
