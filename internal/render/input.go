package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"museum-gallery/internal/locomotion"
)

const maxGamepads = 4

// sources polls connected gamepads and the keyboard into locomotion input sources. Each
// gamepad exposes its sticks the way XR controllers do: thumbstick on axes 2 and 3, with
// the touchpad pair (0, 1) left idle.
func sources(keyboard bool) []locomotion.Source {
	var out []locomotion.Source
	for pad := int32(0); pad < maxGamepads; pad++ {
		if !rl.IsGamepadAvailable(pad) {
			continue
		}
		lx := rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftX)
		ly := rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftY)
		rx := rl.GetGamepadAxisMovement(pad, rl.GamepadAxisRightX)
		ry := rl.GetGamepadAxisMovement(pad, rl.GamepadAxisRightY)
		out = append(out,
			locomotion.Source{Handedness: locomotion.HandLeft, Axes: []float32{0, 0, lx, ly}},
			locomotion.Source{Handedness: locomotion.HandRight, Axes: []float32{0, 0, rx, ry}},
		)
	}
	if keyboard {
		out = append(out, keyboardSources()...)
	}
	return out
}

// keyboardSources maps WASD/arrows to a full-deflection left stick and Q/E to the right.
func keyboardSources() []locomotion.Source {
	var lx, ly, rx float32
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		ly--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		ly++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		lx--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		lx++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		rx--
	}
	if rl.IsKeyDown(rl.KeyE) {
		rx++
	}
	if lx == 0 && ly == 0 && rx == 0 {
		return nil
	}
	return []locomotion.Source{
		{Handedness: locomotion.HandLeft, Axes: []float32{lx, ly}},
		{Handedness: locomotion.HandRight, Axes: []float32{rx, 0}},
	}
}

// Button is a discrete gallery action raised by a controller or key press.
type Button int

const (
	ButtonNone Button = iota
	ButtonSelect
	ButtonClose
	ButtonFavorite
)

// pressed returns the first action button pressed this frame on any gamepad or, when
// keyboard is true, on the keyboard (Enter selects, Backspace closes, F favorites).
func pressed(keyboard bool) Button {
	for pad := int32(0); pad < maxGamepads; pad++ {
		if !rl.IsGamepadAvailable(pad) {
			continue
		}
		switch {
		case rl.IsGamepadButtonPressed(pad, rl.GamepadButtonRightFaceDown):
			return ButtonSelect
		case rl.IsGamepadButtonPressed(pad, rl.GamepadButtonRightFaceRight):
			return ButtonClose
		case rl.IsGamepadButtonPressed(pad, rl.GamepadButtonRightFaceLeft):
			return ButtonFavorite
		}
	}
	if !keyboard {
		return ButtonNone
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		return ButtonSelect
	case rl.IsKeyPressed(rl.KeyBackspace):
		return ButtonClose
	case rl.IsKeyPressed(rl.KeyF):
		return ButtonFavorite
	}
	return ButtonNone
}
