// Package host runs a sketch inside an ebiten window.
package host

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/microsims/internal/config"
	"github.com/olivierh59500/microsims/internal/logutil"
	"github.com/olivierh59500/microsims/internal/sketch"
)

// Game adapts a sketch.Sketch to ebiten.Game.
type Game struct {
	sketch sketch.Sketch
	log    *logutil.Logger
	in     poller
	canvas Canvas

	width, height int
}

// New wraps s.
func New(s sketch.Sketch, log *logutil.Logger) *Game {
	if log == nil {
		log = logutil.Discard
	}
	return &Game{sketch: s, log: log}
}

// Update is called each tick by ebiten: input first, then one animation frame.
func (g *Game) Update() error {
	if g.width == 0 {
		return nil
	}
	pointer, keys := g.in.poll()
	for _, ev := range pointer {
		g.sketch.Pointer(ev)
	}
	for _, ev := range keys {
		g.sketch.Key(ev)
	}
	g.sketch.Update()
	return nil
}

// Draw is called each frame by ebiten.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.dst = screen
	g.sketch.Draw(&g.canvas)
}

// Layout treats the window as the sketch's container. Geometry is only
// recomputed when the clamped width changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := sketch.ClampWidth(outsideWidth)
	if w != g.width {
		g.width = w
		g.height = g.sketch.Resize(w)
		g.log.Debug("resized %s to %dx%d", g.sketch.Name(), g.width, g.height)
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, cfg *config.Config) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(g.sketch.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	g.log.Info("running %s at %d TPS", g.sketch.Name(), cfg.TPS)
	return ebiten.RunGame(g)
}
