package sketch

// PointerKind distinguishes pointer events delivered by the host.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerPress
	PointerRelease
	PointerWheel
)

// PointerEvent carries canvas-relative coordinates.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	WheelY float64 // positive scrolls up, as reported by the host
}

// Key names the non-printable keys sketches react to.
type Key int

const (
	KeyNone Key = iota
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
	KeyR
	KeyS
	KeyL
)

// KeyEvent is either a special key or a batch of typed runes.
type KeyEvent struct {
	Key   Key
	Runes []rune
}
