// Package texture downloads and decodes artwork images off the render goroutine. Results
// are queued; the renderer drains them each frame and uploads them to the GPU.
package texture

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"museum-gallery/internal/imageresolve"
)

// DefaultWorkers bounds concurrent downloads.
const DefaultWorkers = 4

// Request asks for one frame's picture.
type Request struct {
	// Key identifies the frame (artwork key); results carry it back.
	Key     string
	Texture imageresolve.Texture
}

// Result is a decoded picture ready for upload. Placeholder is true when the picture was
// synthesized locally, either because the artwork has no image or because loading failed
// (Err is then set).
type Result struct {
	Key         string
	Image       *image.RGBA
	Placeholder bool
	Err         error
}

// Loader runs image loads on a bounded set of goroutines.
type Loader struct {
	fetcher *Fetcher
	maxEdge int
	log     *slog.Logger

	sem     chan struct{}
	results chan Result
	wg      sync.WaitGroup
}

// NewLoader returns a loader using fetcher. workers <= 0 means DefaultWorkers.
func NewLoader(fetcher *Fetcher, workers int, log *slog.Logger) *Loader {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		maxEdge: MaxEdge,
		log:     log.With("component", "texture"),
		sem:     make(chan struct{}, workers),
		results: make(chan Result, 64),
	}
}

// Load starts loading req in the background. A request whose context is cancelled before
// it finishes produces no result.
func (l *Loader) Load(ctx context.Context, req Request) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		r := l.load(ctx, req)
		if ctx.Err() != nil {
			return
		}
		select {
		case l.results <- r:
		case <-ctx.Done():
		}
	}()
}

func (l *Loader) load(ctx context.Context, req Request) Result {
	tex := req.Texture
	if tex.Source == imageresolve.Placeholder {
		return Result{Key: req.Key, Image: Placeholder(tex.Color), Placeholder: true}
	}
	select {
	case l.sem <- struct{}{}:
		defer func() { <-l.sem }()
	case <-ctx.Done():
		return Result{Key: req.Key, Err: ctx.Err()}
	}

	data, err := l.fetcher.Fetch(ctx, req.Key, tex.URL)
	if err == nil {
		var img *image.RGBA
		if img, err = Decode(data, l.maxEdge); err == nil {
			return Result{Key: req.Key, Image: img}
		}
	}
	if ctx.Err() == nil {
		l.log.Warn("image load failed, using placeholder", "key", req.Key, "url", tex.URL, "error", err)
	}
	return Result{Key: req.Key, Image: Placeholder(tex.Color), Placeholder: true, Err: err}
}

// Drain returns every result that has arrived since the last call without blocking.
func (l *Loader) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Wait blocks until all started loads have finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}
