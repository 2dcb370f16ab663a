package main

import (
	"fmt"
	"sync"
	"testing"
)

func makeTestList(loop bool, paths ...string) *ImageList {
	entries := make([]ImageEntry, len(paths))
	for i, p := range paths {
		entries[i] = ImageEntry{Path: p}
	}
	return NewImageList(entries, loop)
}

func TestNextPrevFile(t *testing.T) {
	tests := []struct {
		name     string
		loop     bool
		from     int
		next     bool
		expected int
	}{
		{"next in the middle", false, 0, true, 1},
		{"next at the end stops", false, 2, true, invalidIndex},
		{"next at the end wraps", true, 2, true, 0},
		{"prev in the middle", false, 1, false, 0},
		{"prev at the start stops", false, 0, false, invalidIndex},
		{"prev at the start wraps", true, 0, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := makeTestList(tt.loop, "a/1.png", "a/2.png", "a/3.png")
			var got int
			if tt.next {
				got = l.NextFile(tt.from)
			} else {
				got = l.PrevFile(tt.from)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFirstLastEmpty(t *testing.T) {
	l := makeTestList(true)
	if l.First() != invalidIndex || l.Last() != invalidIndex {
		t.Errorf("empty list must report invalid indexes")
	}
	if l.NextFile(0) != invalidIndex || l.PrevFile(0) != invalidIndex {
		t.Errorf("empty list must not navigate")
	}
}

func TestDirNavigation(t *testing.T) {
	l := makeTestList(false,
		"a/1.png", "a/2.png",
		"b/1.png", "b/2.png", "b/3.png",
		"c/1.png")

	if got := l.NextDir(0); got != 2 {
		t.Errorf("NextDir(0) = %d, want 2", got)
	}
	if got := l.NextDir(3); got != 5 {
		t.Errorf("NextDir(3) = %d, want 5", got)
	}
	if got := l.NextDir(5); got != invalidIndex {
		t.Errorf("NextDir(5) = %d, want invalid", got)
	}

	// PrevDir lands on the first entry of the previous directory
	if got := l.PrevDir(5); got != 2 {
		t.Errorf("PrevDir(5) = %d, want 2", got)
	}
	if got := l.PrevDir(4); got != 0 {
		t.Errorf("PrevDir(4) = %d, want 0", got)
	}
	if got := l.PrevDir(1); got != invalidIndex {
		t.Errorf("PrevDir(1) = %d, want invalid", got)
	}
}

func TestDirNavigationWrapsWithLoop(t *testing.T) {
	l := makeTestList(true, "a/1.png", "a/2.png", "b/1.png")
	if got := l.NextDir(2); got != 0 {
		t.Errorf("NextDir(2) = %d, want 0", got)
	}
	if got := l.PrevDir(0); got != 2 {
		t.Errorf("PrevDir(0) = %d, want 2", got)
	}
}

func TestArchiveEntriesShareDir(t *testing.T) {
	entries := []ImageEntry{
		{Path: "x/a.zip:1.png", ArchivePath: "x/a.zip", EntryPath: "1.png"},
		{Path: "x/a.zip:2.png", ArchivePath: "x/a.zip", EntryPath: "2.png"},
		{Path: "x/b.png"},
	}
	l := NewImageList(entries, false)
	if got := l.NextDir(0); got != 2 {
		t.Errorf("NextDir(0) = %d, want 2 (archive members form one directory)", got)
	}
}

func TestRandFileNeverReturnsCurrent(t *testing.T) {
	l := makeTestList(false, "a/1.png", "a/2.png", "a/3.png", "a/4.png", "a/5.png")
	for i := 0; i < 200; i++ {
		got := l.RandFile(2)
		if got == 2 {
			t.Fatalf("RandFile returned the current index")
		}
		if got < 0 || got >= l.Len() {
			t.Fatalf("RandFile returned out-of-range index %d", got)
		}
	}
}

func TestRandFileSingleEntry(t *testing.T) {
	l := makeTestList(false, "a/1.png")
	if got := l.RandFile(0); got != 0 {
		t.Errorf("RandFile on a single entry = %d, want 0", got)
	}
}

func TestSkip(t *testing.T) {
	l := makeTestList(false, "a/1.png", "a/2.png", "a/3.png")

	// skipping the middle entry returns the entry now at that position
	if got := l.Skip(1); got != 1 {
		t.Errorf("Skip(1) = %d, want 1", got)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if e, _ := l.Entry(1); e.Path != "a/3.png" {
		t.Errorf("entry 1 = %s, want a/3.png", e.Path)
	}

	// skipping the last entry without loop exhausts
	if got := l.Skip(1); got != invalidIndex {
		t.Errorf("Skip(last) = %d, want invalid", got)
	}
	// skipping the final entry empties the list
	if got := l.Skip(0); got != invalidIndex {
		t.Errorf("Skip on the final entry = %d, want invalid", got)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestSkipLastWrapsWithLoop(t *testing.T) {
	l := makeTestList(true, "a/1.png", "a/2.png")
	if got := l.Skip(1); got != 0 {
		t.Errorf("Skip(last) with loop = %d, want 0", got)
	}
}

// The preload worker walks entries while skip_file shrinks the list on the
// update goroutine; both must be safe to run at once (run with -race).
func TestConcurrentEntryAndSkip(t *testing.T) {
	paths := make([]string, 64)
	for i := range paths {
		paths[i] = fmt.Sprintf("a/%d.png", i)
	}
	l := makeTestList(true, paths...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if e, ok := l.Entry(i % 64); ok && e.Path == "" {
				t.Error("Entry returned an empty path for a live index")
				return
			}
			l.NextFile(i % 64)
			l.Len()
		}
	}()
	for l.Len() > 1 {
		l.Skip(0)
	}
	wg.Wait()
}
