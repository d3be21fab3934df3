package events

// PointerKind identifies a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerWheel
)

// Pointer is a pointer event in surface coordinates.
type Pointer struct {
	Kind   PointerKind
	X, Y   float32
	Button uint8

	// WheelY is the wheel delta, positive away from the user.
	WheelY float32

	// Height is the surface height at the time of the event.
	Height int
}
