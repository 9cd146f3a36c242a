package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/microsims/internal/sketch"
)

var specialKeys = []struct {
	key ebiten.Key
	to  sketch.Key
}{
	{ebiten.KeyBackspace, sketch.KeyBackspace},
	{ebiten.KeyEnter, sketch.KeyEnter},
	{ebiten.KeyNumpadEnter, sketch.KeyEnter},
	{ebiten.KeyEscape, sketch.KeyEscape},
	{ebiten.KeyTab, sketch.KeyTab},
	{ebiten.KeySpace, sketch.KeySpace},
	{ebiten.KeyR, sketch.KeyR},
	{ebiten.KeyS, sketch.KeyS},
	{ebiten.KeyL, sketch.KeyL},
}

// Held keys repeat after this many ticks, then every repeatEvery ticks.
const (
	repeatDelay = 30
	repeatEvery = 4
)

// poller turns ebiten's polled input state into sketch events.
type poller struct {
	prevX, prevY int
	started      bool
	runes        []rune
}

func repeating(k ebiten.Key) bool {
	if inpututil.IsKeyJustPressed(k) {
		return true
	}
	d := inpututil.KeyPressDuration(k)
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

func (p *poller) poll() ([]sketch.PointerEvent, []sketch.KeyEvent) {
	var pointer []sketch.PointerEvent
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if !p.started || mx != p.prevX || my != p.prevY {
		pointer = append(pointer, sketch.PointerEvent{Kind: sketch.PointerMove, X: x, Y: y})
	}
	p.prevX, p.prevY, p.started = mx, my, true

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pointer = append(pointer, sketch.PointerEvent{Kind: sketch.PointerPress, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		pointer = append(pointer, sketch.PointerEvent{Kind: sketch.PointerRelease, X: x, Y: y})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		pointer = append(pointer, sketch.PointerEvent{Kind: sketch.PointerWheel, X: x, Y: y, WheelY: wy})
	}

	var keys []sketch.KeyEvent
	for _, k := range specialKeys {
		if k.to == sketch.KeyBackspace && repeating(k.key) || inpututil.IsKeyJustPressed(k.key) {
			keys = append(keys, sketch.KeyEvent{Key: k.to})
		}
	}
	p.runes = ebiten.AppendInputChars(p.runes[:0])
	if len(p.runes) > 0 {
		keys = append(keys, sketch.KeyEvent{Runes: append([]rune(nil), p.runes...)})
	}
	return pointer, keys
}
