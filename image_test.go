package main

import (
	"testing"
	"time"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"PNG file", "test.png", true},
		{"JPG file", "test.jpg", true},
		{"JPEG file", "test.jpeg", true},
		{"WebP file", "test.webp", true},
		{"BMP file", "test.bmp", true},
		{"GIF file", "test.gif", true},
		{"PNG uppercase", "test.PNG", true},
		{"Text file", "test.txt", false},
		{"No extension", "test", false},
		{"Empty string", "", false},
		{"Multiple dots", "test.backup.jpg", true},
		{"Path with directory", "/path/to/test.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isSupportedExt(tt.path)
			if result != tt.expected {
				t.Errorf("isSupportedExt(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestIsArchiveExt(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"test.zip", true},
		{"test.rar", true},
		{"test.7z", true},
		{"test.ZIP", true},
		{"test.tar", false},
		{"test.png", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isArchiveExt(tt.path); got != tt.expected {
			t.Errorf("isArchiveExt(%s) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestFrameLookup(t *testing.T) {
	img := &Image{
		Name: "anim.gif",
		Frames: []Frame{
			{W: 10, H: 20, Duration: 100 * time.Millisecond},
			{W: 10, H: 20, Duration: 50 * time.Millisecond},
		},
	}

	if f := img.Frame(1); f == nil || f.Duration != 50*time.Millisecond {
		t.Errorf("Frame(1) wrong: %+v", f)
	}
	// out-of-range indexes fall back to the first frame
	if f := img.Frame(5); f == nil || f.Duration != 100*time.Millisecond {
		t.Errorf("Frame(5) must fall back to frame 0: %+v", f)
	}
	if f := img.Frame(-1); f == nil || f.Duration != 100*time.Millisecond {
		t.Errorf("Frame(-1) must fall back to frame 0: %+v", f)
	}

	empty := &Image{Name: "empty"}
	if f := empty.Frame(0); f != nil {
		t.Errorf("Frame on an empty image = %+v, want nil", f)
	}
}

func TestRotateSwapsDimensions(t *testing.T) {
	tests := []struct {
		degrees      int
		wantW, wantH int
	}{
		{90, 30, 40},
		{270, 30, 40},
		{180, 40, 30},
	}
	for _, tt := range tests {
		img := &Image{Name: "r.png", Frames: []Frame{{W: 40, H: 30}}}
		img.Rotate(tt.degrees)
		f := img.Frame(0)
		if f.W != tt.wantW || f.H != tt.wantH {
			t.Errorf("Rotate(%d): %dx%d, want %dx%d", tt.degrees, f.W, f.H, tt.wantW, tt.wantH)
		}
	}
}

func TestRotateInvalidAngleIsNoop(t *testing.T) {
	img := &Image{Name: "r.png", Frames: []Frame{{W: 40, H: 30}}}
	img.Rotate(45)
	f := img.Frame(0)
	if f.W != 40 || f.H != 30 {
		t.Errorf("Rotate(45) changed dimensions to %dx%d", f.W, f.H)
	}
}

func TestRotateAllFrames(t *testing.T) {
	img := &Image{Name: "anim.gif", Frames: []Frame{{W: 40, H: 30}, {W: 40, H: 30}}}
	img.Rotate(90)
	for i := range img.Frames {
		if img.Frames[i].W != 30 || img.Frames[i].H != 40 {
			t.Errorf("frame %d not rotated: %dx%d", i, img.Frames[i].W, img.Frames[i].H)
		}
	}
}

func TestReadEntryDataUnsupportedArchive(t *testing.T) {
	_, err := readEntryData(ImageEntry{
		Path:        "x.tar:a.png",
		ArchivePath: "x.tar",
		EntryPath:   "a.png",
	})
	if err == nil {
		t.Error("expected an error for an unsupported archive format")
	}
}
