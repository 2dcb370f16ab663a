package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

const eventQueueSize = 64

// Game owns the ebiten loop and bridges it to the viewer: queued events are
// drained at the start of every update, so all state changes happen on this
// goroutine.
type Game struct {
	viewer   *Viewer
	input    *InputHandler
	renderer *Renderer
	info     *Info
	events   chan Event

	width, height int
	lastW, lastH  int

	needsRedraw bool
	animated    bool

	// remembered windowed size while fullscreen
	windowedW, windowedH int
}

// NewGame creates the game shell. The viewer, input handler and renderer
// are attached afterwards since they need the game as their sink.
func NewGame(cfg *Config, info *Info, events chan Event) *Game {
	return &Game{
		info:      info,
		events:    events,
		width:     cfg.WindowWidth,
		height:    cfg.WindowHeight,
		lastW:     cfg.WindowWidth,
		lastH:     cfg.WindowHeight,
		windowedW: cfg.WindowWidth,
		windowedH: cfg.WindowHeight,
	}
}

// Update processes one tick: queued events first, then window geometry,
// then input.
func (g *Game) Update() error {
	if g.viewer == nil {
		return nil
	}

	// Drain the event queue before reacting to input so timer wakes and
	// preload completions never interleave with an action.
drain:
	for {
		select {
		case ev := <-g.events:
			g.viewer.HandleEvent(ev)
		default:
			break drain
		}
	}

	if g.width != g.lastW || g.height != g.lastH {
		g.lastW, g.lastH = g.width, g.height
		g.viewer.OnResize()
	}

	if err := g.input.HandleInput(); err != nil {
		if errors.Is(err, errExitRequested) || errors.Is(err, errNoMoreImages) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw renders the frame, skipping work while nothing changed. The screen
// keeps its previous contents because per-frame clearing is disabled.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.needsRedraw {
		return
	}
	g.needsRedraw = false
	g.renderer.Draw(screen)
}

// Layout reports the rendering size; window resizes land here.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// PresentationSink

func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

func (g *Game) RequestRedraw() {
	g.needsRedraw = true
}

func (g *Game) SetWindowTitle(title string) {
	ebiten.SetWindowTitle("iv - " + title)
}

func (g *Game) SetContentAnimated(animated bool) {
	g.animated = animated
}

// AppActions

func (g *Game) ViewerAction(name, params string) error {
	return g.viewer.Apply(name, params)
}

func (g *Game) ToggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		ebiten.SetWindowSize(g.windowedW, g.windowedH)
	} else {
		g.windowedW, g.windowedH = g.width, g.height
		ebiten.SetFullscreen(true)
	}
}

func (g *Game) ToggleInfo() {
	g.info.ToggleVisible()
	g.needsRedraw = true
}

func (g *Game) DragPan(dx, dy int) {
	g.viewer.OnDrag(dx, dy)
}
