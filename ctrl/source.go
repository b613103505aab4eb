package ctrl

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const axisThreshold = 0.2

// KeySource reports the keyboard transitions of the current tick.
type KeySource interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
}

// GamepadSource returns the held buttons of every connected gamepad.
type GamepadSource interface {
	Read() []Buttons
}

// EbitenKeys reads key transitions through inpututil.
type EbitenKeys struct{}

func (EbitenKeys) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (EbitenKeys) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

// EbitenGamepads reads connected gamepads. Gamepads with a standard layout
// use the d-pad, the bottom face button as A, the right face button as B and
// the center right button as start. Others use the first two axes and the
// first three buttons.
type EbitenGamepads struct{}

func (EbitenGamepads) Read() []Buttons {
	ids := ebiten.AppendGamepadIDs(nil)
	states := make([]Buttons, 0, len(ids))
	for _, id := range ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			states = append(states, readStandardGamepad(id))
		} else {
			states = append(states, readGamepad(id))
		}
	}
	return states
}

func readStandardGamepad(id ebiten.GamepadID) Buttons {
	var b Buttons
	pressed := func(sb ebiten.StandardGamepadButton) bool {
		return ebiten.IsStandardGamepadButtonPressed(id, sb)
	}
	b[ButtonUp] = pressed(ebiten.StandardGamepadButtonLeftTop)
	b[ButtonDown] = pressed(ebiten.StandardGamepadButtonLeftBottom)
	b[ButtonLeft] = pressed(ebiten.StandardGamepadButtonLeftLeft)
	b[ButtonRight] = pressed(ebiten.StandardGamepadButtonLeftRight)
	b[ButtonA] = pressed(ebiten.StandardGamepadButtonRightBottom)
	b[ButtonB] = pressed(ebiten.StandardGamepadButtonRightRight)
	b[ButtonStart] = pressed(ebiten.StandardGamepadButtonCenterRight)

	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	b.applyAxes(x, y)
	return b
}

func readGamepad(id ebiten.GamepadID) Buttons {
	var b Buttons
	if ebiten.GamepadAxisCount(id) >= 2 {
		b.applyAxes(ebiten.GamepadAxisValue(id, 0), ebiten.GamepadAxisValue(id, 1))
	}
	n := ebiten.GamepadButtonCount(id)
	if n >= 1 {
		b[ButtonA] = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0)
	}
	if n >= 2 {
		b[ButtonB] = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton1)
	}
	if n >= 3 {
		b[ButtonStart] = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton2)
	}
	return b
}

func (b *Buttons) applyAxes(x, y float64) {
	b[ButtonUp] = b[ButtonUp] || y < -axisThreshold
	b[ButtonDown] = b[ButtonDown] || y > axisThreshold
	b[ButtonLeft] = b[ButtonLeft] || x < -axisThreshold
	b[ButtonRight] = b[ButtonRight] || x > axisThreshold
}
