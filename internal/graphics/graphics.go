package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes how the gallery window opens.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	FPS        int32
}

// DefaultWindow is a resizable 1280x720 window at 60 FPS.
func DefaultWindow() Window {
	return Window{Title: "Virtual Museum", Width: 1280, Height: 720, FPS: 60}
}

// Run opens the window and drives the main loop. Each frame it calls update, then clears
// the screen and calls draw. setup runs once after the GL context exists (fonts, textures);
// teardown runs before the window closes. ESC is left to the console; close via the
// window button.
func Run(w Window, setup, update, draw, teardown func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := w.Width, w.Height
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()
	if w.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(rl.GetCurrentMonitor()), rl.GetMonitorHeight(rl.GetCurrentMonitor()))
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.FPS)
	if setup != nil {
		setup()
	}
	if teardown != nil {
		defer teardown()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(12, 12, 14, 255))
		draw()
		rl.EndDrawing()
	}
}
