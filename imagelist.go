package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"sync"
)

// invalidIndex marks an exhausted navigation request.
const invalidIndex = -1

// ImageEntry identifies one member of the ordered collection: a plain file
// or an entry inside an archive.
type ImageEntry struct {
	Path        string // local file path or archive:entry format
	ArchivePath string // empty for regular files
	EntryPath   string // empty for regular files
}

// Dir groups entries for directory-wise navigation. Archive members all
// belong to their archive.
func (e ImageEntry) Dir() string {
	if e.ArchivePath != "" {
		return e.ArchivePath
	}
	return filepath.Dir(e.Path)
}

// ImageList is the ordered collection the navigation resolver walks. Skip
// mutates it on the update goroutine while the preload worker reads entries
// concurrently, so all access goes through the lock.
type ImageList struct {
	mu      sync.RWMutex
	entries []ImageEntry
	loop    bool
}

// NewImageList wraps the collected entries with the configured loop policy.
func NewImageList(entries []ImageEntry, loop bool) *ImageList {
	return &ImageList{entries: entries, loop: loop}
}

func (l *ImageList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entry returns the entry at index, reporting whether it exists.
func (l *ImageList) Entry(index int) (ImageEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.entries) {
		return ImageEntry{}, false
	}
	return l.entries[index], true
}

// First returns the index of the first entry.
func (l *ImageList) First() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return invalidIndex
	}
	return 0
}

// Last returns the index of the last entry.
func (l *ImageList) Last() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return invalidIndex
	}
	return len(l.entries) - 1
}

// NextFile returns the index after the given one, wrapping when the loop
// policy allows it.
func (l *ImageList) NextFile(index int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextFile(index)
}

// PrevFile returns the index before the given one, wrapping when the loop
// policy allows it.
func (l *ImageList) PrevFile(index int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prevFile(index)
}

func (l *ImageList) nextFile(index int) int {
	if len(l.entries) == 0 {
		return invalidIndex
	}
	if index+1 < len(l.entries) {
		return index + 1
	}
	if l.loop {
		return 0
	}
	return invalidIndex
}

func (l *ImageList) prevFile(index int) int {
	if len(l.entries) == 0 {
		return invalidIndex
	}
	if index > 0 {
		return index - 1
	}
	if l.loop {
		return len(l.entries) - 1
	}
	return invalidIndex
}

// NextDir returns the first entry of the directory following the one the
// given index belongs to.
func (l *ImageList) NextDir(index int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.entries) {
		return invalidIndex
	}
	cur := l.entries[index].Dir()
	i := index
	for steps := 0; steps < len(l.entries); steps++ {
		i = l.nextFile(i)
		if i == invalidIndex {
			return invalidIndex
		}
		if l.entries[i].Dir() != cur {
			return i
		}
	}
	return invalidIndex
}

// PrevDir returns the first entry of the directory preceding the one the
// given index belongs to.
func (l *ImageList) PrevDir(index int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.entries) {
		return invalidIndex
	}
	cur := l.entries[index].Dir()
	i := index
	for steps := 0; steps < len(l.entries); steps++ {
		i = l.prevFile(i)
		if i == invalidIndex {
			return invalidIndex
		}
		if l.entries[i].Dir() != cur {
			// walk back to the start of that directory
			dir := l.entries[i].Dir()
			for i > 0 && l.entries[i-1].Dir() == dir {
				i--
			}
			return i
		}
	}
	return invalidIndex
}

// RandFile returns a uniformly chosen index different from the given one.
func (l *ImageList) RandFile(index int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.entries)
	if n == 0 {
		return invalidIndex
	}
	if n == 1 {
		return 0
	}
	r := rand.Intn(n - 1)
	if r >= index {
		r++
	}
	return r
}

// Skip removes the entry at index from the navigable order and returns the
// index now occupying that position, so the caller continues as if it had
// asked for next-file from the skipped entry.
func (l *ImageList) Skip(index int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.entries) {
		return invalidIndex
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	if len(l.entries) == 0 {
		return invalidIndex
	}
	if index < len(l.entries) {
		return index
	}
	if l.loop {
		return 0
	}
	return invalidIndex
}

// Collection building

// collectEntries expands the command line arguments into the ordered
// collection: plain image files, directories walked recursively, and
// zip/rar/7z archives expanded to their image entries.
func collectEntries(args []string, sortMethod int) ([]ImageEntry, error) {
	var list []ImageEntry
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			var dirEntries []ImageEntry
			err := filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return nil
				}
				if isSupportedExt(path) {
					dirEntries = append(dirEntries, ImageEntry{Path: path})
				} else if isArchiveExt(path) {
					archiveEntries, err := expandArchive(path)
					if err == nil {
						dirEntries = append(dirEntries, sortEntries(archiveEntries, sortMethod)...)
					} else {
						debugLog("skipping problematic archive %s: %v", path, err)
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			list = append(list, sortEntries(dirEntries, sortMethod)...)
		} else {
			if isSupportedExt(p) {
				list = append(list, ImageEntry{Path: p})
			} else if isArchiveExt(p) {
				archiveEntries, err := expandArchive(p)
				if err == nil {
					list = append(list, sortEntries(archiveEntries, sortMethod)...)
				} else {
					debugLog("skipping problematic archive %s: %v", p, err)
				}
			}
		}
	}
	return list, nil
}
