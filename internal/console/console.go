package console

import (
	"errors"
	"unicode/utf8"

	"museum-gallery/internal/commands"
	"museum-gallery/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	maxLinesOnScreen  = 12
	lineHeight        = fontSize + 4
	maxLineLen        = 200
)

var (
	barColor         = rl.NewColor(28, 26, 24, 255)
	barEdgeColor     = rl.NewColor(150, 120, 70, 255)
	historyBgColor   = rl.NewColor(18, 17, 16, 230)
	placeholderColor = rl.NewColor(130, 125, 118, 255)
)

// Console is the search bar at the bottom of the gallery window, shown and hidden with ESC.
// Enter submits the line to the command registry: "/..." runs a command, anything else
// becomes a search. While open it owns the keyboard.
type Console struct {
	log         *logger.Logger
	reg         *commands.Registry
	input       string
	open        bool
	font        rl.Font
	Placeholder string
	// OnToggle is called with the new state whenever ESC opens or closes the console.
	OnToggle func(open bool)
}

// New returns a closed console that echoes lines to log and routes them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing input.
func (c *Console) IsOpen() bool {
	return c.open
}

// SetOpen opens or closes the console without a key press.
func (c *Console) SetOpen(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	if c.OnToggle != nil {
		c.OnToggle(open)
	}
}

// SetFont sets the font used to draw the bar. Zero texture ID = raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Update handles ESC and, when open, typing, paste, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.SetOpen(!c.open)
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.input += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.input += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.input) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.input)
		c.input = c.input[:len(c.input)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.input != "" {
		line := c.input
		c.input = ""
		c.log.Log(prompt + line)
		if err := c.reg.Submit(line); err != nil && !errors.Is(err, commands.ErrEmptyLine) {
			c.log.Log(err.Error())
		}
	}
}

// Draw draws the recent log lines and the input bar when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	historyH := maxLinesOnScreen * lineHeight
	historyY := barY - historyH
	if historyY < 0 {
		historyH = barY
		historyY = 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, int32(historyY), int32(screenW), int32(historyH), historyBgColor)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := historyY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		c.text(line, padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, barEdgeColor)
	if c.input == "" && c.Placeholder != "" {
		c.text(prompt+c.Placeholder, padding, barY+padding, placeholderColor)
		return
	}
	c.text(prompt+c.input+"|", padding, barY+padding, rl.White)
}

func (c *Console) text(s string, x, y int, col rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, col)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(fontSize), col)
}
