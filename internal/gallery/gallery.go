// Package gallery owns the interactive state of the virtual gallery: the hung frames,
// the selected artwork and its favorite status, and the viewer's locomotion. All methods
// are meant to be called from the render goroutine; network work runs in goroutines whose
// results are queued and applied by Apply.
package gallery

import (
	"context"
	"log/slog"
	"sync"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/auth"
	"museum-gallery/internal/frame"
	"museum-gallery/internal/imageresolve"
	"museum-gallery/internal/layout"
	"museum-gallery/internal/locomotion"
)

// resultQueue is the capacity of the completion channel between network goroutines and Apply.
const resultQueue = 32

// Session reports the signed-in user without touching the network.
type Session interface {
	CurrentUser() (auth.User, bool)
}

// Favorites is the favorites collaborator.
type Favorites interface {
	Favorites(ctx context.Context, userID string) ([]artwork.Artwork, error)
	AddFavorite(ctx context.Context, userID string, a artwork.Artwork) error
}

// Options configures a Controller. Session and Favorites may be nil, which behaves as
// signed out.
type Options struct {
	Session   Session
	Favorites Favorites
	Resolver  imageresolve.Resolver
	Layout    layout.Engine
	// OnSelect is invoked synchronously whenever an artwork is selected.
	OnSelect func(artwork.Artwork)
	Logger   *slog.Logger
}

type resultKind int

const (
	checkDone resultKind = iota
	addDone
)

type result struct {
	gen      uint64
	kind     resultKind
	favorite bool
	err      error
}

// Controller is the gallery's orchestration point.
type Controller struct {
	opts Options
	log  *slog.Logger

	artworks []artwork.Artwork
	frames   []*frame.Frame
	hovered  int
	loco     *locomotion.Controller

	sel     Selection
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	results chan result
	wg      sync.WaitGroup
}

// New returns a controller with an empty gallery.
func New(opts Options) *Controller {
	if opts.Layout.ArtworksPerWall == 0 {
		opts.Layout = layout.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		opts:    opts,
		log:     log.With("component", "gallery"),
		hovered: -1,
		loco:    locomotion.New(),
		results: make(chan result, resultQueue),
	}
}

// Mount replaces the hung artworks. Frames are rebuilt and placed, the selection is
// closed and the viewer returns to the origin.
func (c *Controller) Mount(artworks []artwork.Artwork) {
	c.Close()
	c.loco.Reset()
	c.hovered = -1
	c.artworks = append([]artwork.Artwork(nil), artworks...)
	slots := c.opts.Layout.PlaceAll(len(c.artworks))
	c.frames = make([]*frame.Frame, len(c.artworks))
	for i, a := range c.artworks {
		c.frames[i] = frame.New(a, slots[i], c.opts.Resolver.Resolve(a), c.Select)
	}
	c.log.Info("gallery mounted", "artworks", len(c.frames))
}

// Artworks returns the mounted artworks in display order.
func (c *Controller) Artworks() []artwork.Artwork {
	return c.artworks
}

// Frames returns the hung frames. The slice is owned by the controller.
func (c *Controller) Frames() []*frame.Frame {
	return c.frames
}

// Count is the number of mounted artworks.
func (c *Controller) Count() int {
	return len(c.frames)
}

// Locomotion returns the viewer controller.
func (c *Controller) Locomotion() *locomotion.Controller {
	return c.loco
}

// Transform returns the viewer pose for this frame.
func (c *Controller) Transform() locomotion.Transform {
	return c.loco.Transform()
}

// Update runs one frame: queued completions are applied, locomotion is sampled and
// frame animations advance.
func (c *Controller) Update(immersive bool, sources []locomotion.Source) {
	c.Apply()
	c.loco.Update(immersive, sources)
	for _, f := range c.frames {
		f.Tick()
	}
}

// Hover marks the frame at index as hovered and clears the previous one. Pass -1 when the
// pointer is over no frame.
func (c *Controller) Hover(index int) {
	if index == c.hovered {
		return
	}
	if c.hovered >= 0 && c.hovered < len(c.frames) {
		c.frames[c.hovered].SetHovered(false)
	}
	c.hovered = -1
	if index >= 0 && index < len(c.frames) {
		c.frames[index].SetHovered(true)
		c.hovered = index
	}
}

// Hovered returns the index of the hovered frame, or -1.
func (c *Controller) Hovered() int {
	return c.hovered
}

// Click dispatches a click to the frame at index. Out of range is ignored.
func (c *Controller) Click(index int) {
	if index >= 0 && index < len(c.frames) {
		c.frames[index].Click()
	}
}

// Wait blocks until every in-flight network goroutine has finished and queued its result.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Shutdown cancels outstanding work and waits for it to drain.
func (c *Controller) Shutdown() {
	c.Close()
	c.wg.Wait()
}

func (c *Controller) user() (auth.User, bool) {
	if c.opts.Session == nil {
		return auth.User{}, false
	}
	u, ok := c.opts.Session.CurrentUser()
	if !ok || u.ID == "" {
		return auth.User{}, false
	}
	return u, true
}

// launch starts fn in a goroutine bound to the current generation and queues its result.
// Results of a cancelled generation are dropped instead of queued.
func (c *Controller) launch(fn func(ctx context.Context) result) {
	ctx := c.ctx
	gen := c.gen
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		r := fn(ctx)
		r.gen = gen
		select {
		case c.results <- r:
		case <-ctx.Done():
		}
	}()
}

// bump starts a new generation: in-flight requests are cancelled and their late results
// will be discarded by Apply.
func (c *Controller) bump() {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	c.ctx, c.cancel = context.WithCancel(context.Background())
}
