package main

import (
	"fmt"
	"time"
)

// Status line lifetime on screen
const statusExpiry = 2 * time.Second

// InfoField identifies one slot of user-visible text. The viewer formats
// the values; the renderer decides placement.
type InfoField int

const (
	fieldName InfoField = iota
	fieldImageSize
	fieldIndex
	fieldFrame
	fieldScale
	fieldStatus
	fieldCount
)

var infoLabels = [fieldCount]string{
	fieldName:      "file",
	fieldImageSize: "size",
	fieldIndex:     "index",
	fieldFrame:     "frame",
	fieldScale:     "scale",
	fieldStatus:    "",
}

// Info implements StatusSink: a fixed set of text fields plus an expiring
// status line. Mutated only from the update goroutine.
type Info struct {
	fields     [fieldCount]string
	statusTime time.Time
	visible    bool
}

func NewInfo(visible bool) *Info {
	return &Info{visible: visible}
}

// UpdateField stores formatted text for a field. Status text starts its
// expiry clock here.
func (n *Info) UpdateField(field InfoField, text string) {
	if field < 0 || field >= fieldCount {
		return
	}
	n.fields[field] = text
	if field == fieldStatus {
		n.statusTime = time.Now()
	}
}

// ResetImage clears per-image fields when a new image becomes current.
func (n *Info) ResetImage(img *Image) {
	n.fields[fieldName] = img.Name
	n.fields[fieldFrame] = ""
	if f := img.Frame(0); f != nil {
		n.fields[fieldImageSize] = fmt.Sprintf("%dx%d", f.W, f.H)
	}
	if len(img.Frames) > 1 {
		n.fields[fieldFrame] = fmt.Sprintf("1 of %d", len(img.Frames))
	}
}

// Visible reports whether the info block is shown.
func (n *Info) Visible() bool {
	return n.visible
}

// ToggleVisible flips the info block on or off.
func (n *Info) ToggleVisible() {
	n.visible = !n.visible
}

// Lines returns the populated info lines in display order.
func (n *Info) Lines() []string {
	lines := make([]string, 0, fieldCount)
	for f := InfoField(0); f < fieldStatus; f++ {
		if n.fields[f] == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", infoLabels[f], n.fields[f]))
	}
	return lines
}

// Status returns the current status line while it has not expired.
func (n *Info) Status() (string, bool) {
	if n.fields[fieldStatus] == "" || time.Since(n.statusTime) >= statusExpiry {
		return "", false
	}
	return n.fields[fieldStatus], true
}
