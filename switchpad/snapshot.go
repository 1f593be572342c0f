package switchpad

import "fmt"

// Button is one entry of a Gamepad's fixed 24-button vector.
type Button struct {
	Pressed bool    `json:"pressed"`
	Value   float32 `json:"value"`
}

// Gamepad is the normalized per-device, per-tick snapshot handed to the
// embedding host. It is created fresh each poll and is not retained by
// the engine after it's returned.
type Gamepad struct {
	Index   uint64     `json:"index"`
	Axes    [4]float32 `json:"axes"`
	Buttons [24]Button `json:"buttons"`
}

// newGamepad returns a zero-initialized snapshot for index, used as the
// default when a tick's read is short or no report arrives.
func newGamepad(index uint64) Gamepad {
	return Gamepad{Index: index}
}

func (g Gamepad) String() string {
	return fmt.Sprintf("Gamepad{index=%d axes=%v}", g.Index, g.Axes)
}

func (g Gamepad) GoString() string {
	return fmt.Sprintf("switchpad.Gamepad{Index: %d, Axes: %#v, Buttons: %#v}",
		g.Index, g.Axes, g.Buttons)
}
