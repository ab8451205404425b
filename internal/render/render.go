// Package render draws the gallery with raylib and turns mouse, keyboard and gamepad
// input into gallery events. It owns the camera and every GPU resource; gallery state
// lives in the gallery controller and is only read here.
package render

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"museum-gallery/internal/frame"
	"museum-gallery/internal/gallery"
	"museum-gallery/internal/i18n"
	"museum-gallery/internal/imageresolve"
	"museum-gallery/internal/locomotion"
	"museum-gallery/internal/room"
	"museum-gallery/internal/texture"
)

const (
	eyeHeight  = 1.6
	floorThick = 0.02
	// titleHeight and countHeight are label heights in meters.
	titleHeight  = 0.45
	countHeight  = 0.22
	plateText    = 0.09
	artistText   = 0.07
	accentMargin = 0.12
	crosshair    = 6
	// clickSlop is how far, in pixels, the pointer may travel between press and release
	// for the gesture to count as a click rather than an orbit or pan drag.
	clickSlop = 5
)

var (
	accentColor  = rl.NewColor(255, 214, 130, 110)
	labelColor   = rl.NewColor(240, 236, 228, 255)
	artistColor  = rl.NewColor(190, 186, 178, 255)
	loadingColor = rl.NewColor(70, 70, 74, 255)
)

// Options wires a Renderer to its collaborators. Loader may be nil (no pictures load).
type Options struct {
	Gallery *gallery.Controller
	Room    room.Room
	Loader  *texture.Loader
	Printer *i18n.Printer
	Logger  *slog.Logger
	// OnFavorite runs when the favorite button (gamepad X or F) is pressed.
	OnFavorite func()
}

// Renderer holds the camera and GPU resources and draws the room with its frames.
type Renderer struct {
	Camera      rl.Camera3D
	Immersive   bool
	GridVisible bool

	opts     Options
	log      *slog.Logger
	meshes   *meshSet
	sky      *skybox
	textures *textureCache

	loadCtx    context.Context
	loadCancel context.CancelFunc

	orbit   locomotion.Orbit
	press   [2]rl.Vector2
	pressed [2]bool
	dragged [2]bool
}

// New returns a renderer in desktop mode with the camera at the room center.
func New(opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{
		opts:        opts,
		log:         log.With("component", "render"),
		meshes:      newMeshSet(),
		sky:         findSkybox(),
		textures:    newTextureCache(),
		GridVisible: opts.Room.Floor.Grid,
	}
	r.resetCamera()
	return r
}

// SetFont sets the font used to rasterize 3D labels. Existing labels are not redrawn.
func (r *Renderer) SetFont(font rl.Font) {
	r.textures.font = font
}

// SetPrinter switches the language of the room labels.
func (r *Renderer) SetPrinter(p *i18n.Printer) {
	r.opts.Printer = p
}

// SetImmersive switches between controller locomotion and the desktop orbit camera.
func (r *Renderer) SetImmersive(on bool) {
	if r.Immersive == on {
		return
	}
	r.Immersive = on
	r.resetCamera()
}

// resetCamera puts the immersive viewer at the room center looking down -Z, or the
// desktop orbit back at its start.
func (r *Renderer) resetCamera() {
	r.Camera = rl.Camera3D{
		Position:   rl.NewVector3(0, eyeHeight, 0),
		Target:     rl.NewVector3(0, eyeHeight, -1),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	r.orbit = locomotion.NewOrbit()
	if !r.Immersive {
		r.applyOrbit()
	}
}

func (r *Renderer) applyOrbit() {
	p, t := r.orbit.Position(), r.orbit.Target
	r.Camera.Position = rl.NewVector3(p[0], p[1], p[2])
	r.Camera.Target = rl.NewVector3(t[0], t[1], t[2])
}

// syncCursor captures the pointer only while walking in immersive mode.
func (r *Renderer) syncCursor(inputFree bool) {
	captured := r.Immersive && inputFree
	if captured == rl.IsCursorHidden() {
		return
	}
	if captured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// gesture tracks a press of button (0 left, 1 right) and reports whether this frame
// released it as a click. Presses that land on the overlay never become clicks.
func (r *Renderer) gesture(i int, button rl.MouseButton, uiClicked bool) (click bool) {
	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(button) {
		r.press[i], r.pressed[i], r.dragged[i] = pos, !uiClicked, false
	}
	if r.pressed[i] && rl.Vector2Distance(r.press[i], pos) > clickSlop {
		r.dragged[i] = true
	}
	if rl.IsMouseButtonReleased(button) {
		click = r.pressed[i] && !r.dragged[i]
		r.pressed[i] = false
	}
	return click
}

// updateOrbit applies left-drag rotate, right-drag pan and wheel zoom.
func (r *Renderer) updateOrbit() {
	d := rl.GetMouseDelta()
	switch {
	case r.pressed[0] && r.dragged[0] && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		r.orbit.Rotate(d.X, d.Y)
	case r.pressed[1] && r.dragged[1] && rl.IsMouseButtonDown(rl.MouseButtonRight):
		r.orbit.Pan(d.X, d.Y)
	}
	r.orbit.Zoom(rl.GetMouseWheelMove())
	r.applyOrbit()
}

// Reload starts loading pictures for the frames currently mounted in the gallery. Loads
// still running for the previous artwork list are cancelled and their textures dropped.
func (r *Renderer) Reload() {
	if r.loadCancel != nil {
		r.loadCancel()
	}
	r.textures.resetPictures()
	r.loadCtx, r.loadCancel = context.WithCancel(context.Background())
	if r.opts.Loader == nil {
		return
	}
	seen := make(map[string]bool)
	for _, f := range r.opts.Gallery.Frames() {
		key := f.Artwork.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		r.opts.Loader.Load(r.loadCtx, texture.Request{Key: key, Texture: f.Texture})
	}
	r.log.Debug("loading pictures", "count", len(seen))
}

// Close cancels outstanding loads and frees GPU resources.
func (r *Renderer) Close() {
	if r.loadCancel != nil {
		r.loadCancel()
	}
	r.textures.resetPictures()
	r.meshes.unload()
}

// Update runs once per frame on the render goroutine. inputFree is false while the
// console owns the keyboard; uiClicked is true when the overlay consumed this frame's click.
func (r *Renderer) Update(inputFree, uiClicked bool) {
	g := r.opts.Gallery
	if r.opts.Loader != nil {
		for _, res := range r.opts.Loader.Drain() {
			r.textures.upload(res)
		}
	}

	r.syncCursor(inputFree)
	g.Update(r.Immersive, sources(inputFree && r.Immersive))

	hit, _ := g.Pick(r.pickRay())
	g.Hover(hit)

	if r.Immersive {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !uiClicked && hit >= 0 {
			g.Click(hit)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !uiClicked {
			g.Close()
		}
	} else {
		left := r.gesture(0, rl.MouseButtonLeft, uiClicked)
		right := r.gesture(1, rl.MouseButtonRight, uiClicked)
		r.updateOrbit()
		if left && hit >= 0 {
			g.Click(hit)
		}
		if right {
			g.Close()
		}
	}
	switch pressed(inputFree) {
	case ButtonSelect:
		if hit >= 0 {
			g.Click(hit)
		}
	case ButtonClose:
		g.Close()
	case ButtonFavorite:
		if r.opts.OnFavorite != nil {
			r.opts.OnFavorite()
		}
	}
}

// pickRay casts from the mouse when the cursor is free, otherwise from the screen center.
func (r *Renderer) pickRay() gallery.Ray {
	pos := rl.NewVector2(float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2)
	if !rl.IsCursorHidden() {
		pos = rl.GetMousePosition()
	}
	ray := rl.GetScreenToWorldRay(pos, r.Camera)
	return gallery.Ray{
		Origin: [3]float32{ray.Position.X, ray.Position.Y, ray.Position.Z},
		Dir:    [3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z},
	}
}

// Draw renders the skybox, then the room and frames moved by the viewer transform.
func (r *Renderer) Draw() {
	rl.BeginMode3D(r.Camera)
	r.sky.draw(r.Camera)
	r.meshes.setView([3]float32{r.Camera.Position.X, r.Camera.Position.Y, r.Camera.Position.Z})

	// The viewer moves through the room, so the room moves inversely around the camera.
	t := r.opts.Gallery.Transform()
	rl.PushMatrix()
	rl.Rotatef(-t.Yaw*rl.Rad2deg, 0, 1, 0)
	rl.Translatef(-t.X, 0, -t.Z)
	r.drawRoom()
	for _, f := range r.opts.Gallery.Frames() {
		r.drawFrame(f)
	}
	rl.PopMatrix()
	rl.EndMode3D()

	if rl.IsCursorHidden() {
		cx, cy := rl.GetScreenWidth()/2, rl.GetScreenHeight()/2
		rl.DrawLine(int32(cx-crosshair), int32(cy), int32(cx+crosshair), int32(cy), rl.RayWhite)
		rl.DrawLine(int32(cx), int32(cy-crosshair), int32(cx), int32(cy+crosshair), rl.RayWhite)
	}
}

func (r *Renderer) drawRoom() {
	rm := r.opts.Room
	floor := [3]float32{rm.Floor.Size, floorThick, rm.Floor.Size}
	r.meshes.box(boxTransform([3]float32{0, -floorThick / 2, 0}, floor, 0), hexColor(rm.Floor.Color))
	if r.GridVisible {
		rl.DrawGrid(int32(rm.Floor.Size), 1)
	}
	for _, b := range rm.Boxes() {
		r.meshes.box(boxTransform(b.Center, b.Size, 0), hexColor(b.Color))
	}

	p := r.opts.Printer
	r.drawLabel(p.T("room.title"), rm.Title.TextPosition, 0, titleHeight, labelColor)
	count := p.Count(r.opts.Gallery.Count())
	if r.opts.Gallery.Count() == 0 {
		count = p.T("room.empty")
	}
	r.drawLabel(count, rm.Title.CountPosition, 0, countHeight, labelColor)
}

// drawLabel draws text as an upright quad centered at pos, facing along yaw.
func (r *Renderer) drawLabel(text string, pos [3]float32, yaw, height float32, tint rl.Color) {
	if text == "" {
		return
	}
	tex := r.textures.label(text)
	if tex.Height == 0 {
		return
	}
	width := height * float32(tex.Width) / float32(tex.Height)
	r.meshes.quad(uprightTransform(pos, width, height, yaw), tex, tint)
}

func (r *Renderer) drawFrame(f *frame.Frame) {
	rm := r.opts.Room
	yaw := f.Slot.Yaw()
	s := f.Scale()
	at := func(x, y, z float32) [3]float32 { return localToRoom(f.Slot.Position, yaw, s, [3]float32{x, y, z}) }

	if f.Hovered() {
		// Accent light: a warm halo behind the frame.
		halo := [3]float32{(frame.Width + accentMargin) * s, (frame.Height + accentMargin) * s, frame.Depth / 2 * s}
		r.meshes.box(boxTransform(at(0, 0, -frame.Depth/2), halo, yaw), accentColor)
	}
	r.meshes.box(boxTransform(f.Slot.Position, [3]float32{frame.Width * s, frame.Height * s, frame.Depth * s}, yaw), hexColor(rm.Frame.Color))

	front := frame.Depth/2 + 0.003
	tint := rl.White
	tex, ok := r.textures.picture(f.Artwork.Key())
	if !ok {
		tint = loadingColor
	}
	r.meshes.quad(uprightTransform(at(0, 0, front), frame.PictureW*s, frame.PictureH*s, yaw), tex, tint)
	if r.textures.isPlaceholder(f.Artwork.Key()) {
		r.drawLabel(imageresolve.PlaceholderText(f.Artwork.Title), at(0, 0, front+0.002), yaw, plateText*s, labelColor)
	}

	r.meshes.box(boxTransform(at(0, frame.PlateY, 0), [3]float32{frame.PlateW * s, frame.PlateH * s, frame.Depth * s}, yaw), hexColor(rm.Frame.Plate))
	r.drawLabel(f.Title(), at(0, frame.PlateY, front), yaw, plateText*s, labelColor)
	if artist, ok := f.ArtistLine(); ok {
		r.drawLabel(artist, at(0, frame.ArtistY, front), yaw, artistText*s, artistColor)
	}
}

// localToRoom maps a point in a frame's local space (x right, y up, z out of the wall)
// into room space.
func localToRoom(center [3]float32, yaw, scale float32, p [3]float32) [3]float32 {
	m := rl.MatrixMultiply(rl.MatrixScale(scale, scale, scale), rl.MatrixRotateY(yaw))
	v := rl.Vector3Transform(rl.NewVector3(p[0], p[1], p[2]), m)
	return [3]float32{center[0] + v.X, center[1] + v.Y, center[2] + v.Z}
}

func hexColor(s string) rl.Color {
	return texture.ParseHex(s)
}
