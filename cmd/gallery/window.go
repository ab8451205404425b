package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/commands"
	"museum-gallery/internal/console"
	"museum-gallery/internal/debug"
	"museum-gallery/internal/fonts"
	"museum-gallery/internal/gallery"
	"museum-gallery/internal/graphics"
	"museum-gallery/internal/i18n"
	"museum-gallery/internal/imageresolve"
	"museum-gallery/internal/layout"
	"museum-gallery/internal/panel"
	"museum-gallery/internal/prefs"
	"museum-gallery/internal/render"
	"museum-gallery/internal/room"
	"museum-gallery/internal/texture"
	"museum-gallery/internal/ui"
)

const (
	imageCacheDir = "cache/images"
	imageWorkers  = 4
)

type windowOptions struct {
	query      string
	museums    []string
	immersive  bool
	fullscreen bool
}

// hang is a finished search (or favorites fetch) waiting to be mounted on the render goroutine.
type hang struct {
	query     string
	arts      []artwork.Artwork
	favorites bool
	err       error
}

// window owns everything that lives for one gallery window.
type window struct {
	svc     *services
	ctx     context.Context
	museums []string

	gal    *gallery.Controller
	loader *texture.Loader
	rend   *render.Renderer
	ui     *ui.Engine
	panel  *ui.SelectionPanel
	con    *console.Console
	dbg    *debug.Debug
	reg    *commands.Registry

	hangs        chan hang
	searchCancel context.CancelFunc
	wg           sync.WaitGroup
	nodes        []*ui.Node
}

func runWindow(ctx context.Context, svc *services, opts windowOptions) error {
	l := layout.Default()
	rm, err := room.Load(l, append([]string{svc.cfg.RoomFile}, room.DefinitionPaths...)...)
	if err != nil {
		return fmt.Errorf("room: %w", err)
	}

	w := &window{
		svc:     svc,
		ctx:     ctx,
		museums: prefs.NormalizeMuseums(svc.prefs.Museums),
		hangs:   make(chan hang, 1),
		dbg:     debug.New(),
		reg:     commands.NewRegistry(),
	}
	if len(opts.museums) > 0 {
		w.museums = prefs.NormalizeMuseums(opts.museums)
	}
	w.gal = gallery.New(gallery.Options{
		Session:   svc.auth,
		Favorites: svc.museum,
		Resolver:  imageresolve.New(svc.cfg.CORSProxy, svc.cfg.PlaceholderURL),
		Layout:    l,
		OnSelect: func(a artwork.Artwork) {
			svc.log.Info("artwork selected", "id", a.ID, "museum", a.Museum, "title", a.Title)
		},
		Logger: svc.log,
	})
	w.loader = texture.NewLoader(texture.NewFetcher(svc.cfg.ImageTimeout, imageCacheDir), imageWorkers, svc.log)
	w.rend = render.New(render.Options{
		Gallery:    w.gal,
		Room:       rm,
		Loader:     w.loader,
		Printer:    svc.printer,
		Logger:     svc.log,
		OnFavorite: w.addFavorite,
	})
	w.rend.GridVisible = svc.prefs.GridVisible
	w.rend.SetImmersive(opts.immersive || svc.prefs.Immersive)
	w.dbg.ShowFPS = svc.prefs.ShowFPS
	w.dbg.ShowMemAlloc = svc.prefs.ShowMemAlloc
	w.dbg.ShowPose = svc.prefs.ShowPose

	w.ui = ui.New()
	if err := w.ui.LoadCSS(svc.cfg.StyleSheet); err != nil && !errors.Is(err, fs.ErrNotExist) {
		svc.log.Warn("could not load stylesheet, using built-in style", "path", svc.cfg.StyleSheet, "error", err)
	}
	w.panel = ui.NewSelectionPanel(w.addFavorite, w.gal.Close)
	w.con = console.New(svc.lines, w.reg)
	w.con.Placeholder = svc.printer.T("console.placeholder")
	w.registerCommands()

	win := graphics.DefaultWindow()
	win.Fullscreen = opts.fullscreen
	graphics.Run(win,
		func() { w.setup(opts.query) },
		w.update,
		w.draw,
		w.teardown,
	)
	return nil
}

func (w *window) setup(query string) {
	if path, err := fonts.Find(w.svc.cfg.Font); err == nil {
		if err := w.ui.LoadFont(path); err != nil {
			w.svc.log.Warn("could not load font", "path", path, "error", err)
		} else {
			font := w.ui.Font()
			w.rend.SetFont(font)
			w.con.SetFont(font)
			w.dbg.SetFont(font)
		}
	}
	w.rend.Reload()
	if query != "" {
		_ = w.search(query)
		return
	}
	w.con.SetOpen(true)
}

func (w *window) update() {
	select {
	case h := <-w.hangs:
		w.mount(h)
	default:
	}
	w.con.Update()
	clicked := w.ui.Update()
	w.rend.Update(!w.con.IsOpen(), clicked)
}

func (w *window) draw() {
	w.rend.Draw()
	_, signedIn := w.svc.auth.CurrentUser()
	view := panel.Build(w.gal.Selection(), signedIn, w.svc.printer)
	w.nodes = w.panel.AppendNodes(w.nodes[:0], view)
	w.ui.SetNodes(w.nodes)
	w.ui.Draw()
	w.con.Draw()
	w.dbg.Draw(w.gal.Transform())
}

func (w *window) teardown() {
	if w.searchCancel != nil {
		w.searchCancel()
	}
	w.wg.Wait()
	w.gal.Shutdown()
	w.rend.Close()
	w.loader.Wait()
	w.svc.museum.Wait()
	w.svc.savePrefs()
}

// search replaces any running search. The result is mounted by update.
func (w *window) search(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	museums := w.museums
	w.svc.lines.Log(w.svc.printer.T("console.searching", query))
	w.run(func(ctx context.Context) hang {
		arts, err := w.svc.museum.SearchGallery(ctx, query, museums)
		if err == nil {
			if u, ok := w.svc.auth.CurrentUser(); ok {
				w.svc.museum.AddSearchHistory(ctx, u.ID, query)
			}
		}
		return hang{query: query, arts: arts, err: err}
	})
	return nil
}

// run starts fn in the background after cancelling the previous search. Only the latest
// run's result reaches the channel.
func (w *window) run(fn func(ctx context.Context) hang) {
	if w.searchCancel != nil {
		w.searchCancel()
	}
	ctx, cancel := context.WithCancel(w.ctx)
	w.searchCancel = cancel
	w.wg.Go(func() {
		h := fn(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case w.hangs <- h:
		case <-ctx.Done():
		}
	})
}

func (w *window) mount(h hang) {
	p := w.svc.printer
	switch {
	case h.err != nil:
		w.svc.lines.Log(p.T("console.error", h.err.Error()))
		return
	case h.favorites:
		w.svc.lines.Log(p.T("console.favorites", len(h.arts)))
	case len(h.arts) == 0:
		w.svc.lines.Log(p.T("console.noresults", h.query))
	default:
		w.svc.lines.Log(p.T("console.results", len(h.arts), h.query))
	}
	w.gal.Mount(h.arts)
	w.rend.Reload()
	w.con.SetOpen(false)
}

func (w *window) addFavorite() {
	if w.gal.AddFavorite() == gallery.AddRedirect {
		w.svc.lines.Log(w.svc.printer.T("console.login"))
		w.con.SetOpen(true)
	}
}

// toggle registers an on/off command that stores its value in *dst and saves preferences.
func (w *window) toggle(name string, dst *bool, apply func(bool)) {
	w.reg.Register(name, "on|off", nil, func(args []string) error {
		on, err := commands.OnOff(args)
		if err != nil {
			return err
		}
		*dst = on
		if apply != nil {
			apply(on)
		}
		w.svc.savePrefs()
		return nil
	})
}

func (w *window) registerCommands() {
	svc := w.svc
	w.reg.OnSearch = w.search

	w.reg.Register("help", "", nil, func([]string) error {
		for _, line := range w.reg.Help() {
			svc.lines.Log(line)
		}
		return nil
	})
	w.reg.Register("museums", "[met,harvard]", nil, func(args []string) error {
		if len(args) > 0 {
			list := prefs.NormalizeMuseums(strings.Split(strings.Join(args, ","), ","))
			if len(list) == 0 {
				return fmt.Errorf("no museums given, use met or harvard")
			}
			w.museums = list
			svc.prefs.Museums = list
			svc.savePrefs()
		}
		names := make([]string, len(w.museums))
		for i, m := range w.museums {
			names[i] = svc.printer.Museum(m)
		}
		svc.lines.Log(svc.printer.T("console.museums", strings.Join(names, ", ")))
		return nil
	})
	w.reg.Register("favorites", "", nil, func([]string) error {
		u, err := svc.requireUser()
		if err != nil {
			return err
		}
		w.run(func(ctx context.Context) hang {
			arts, err := svc.museum.Favorites(ctx, u.ID)
			return hang{arts: arts, favorites: true, err: err}
		})
		return nil
	})
	w.reg.Register("history", "", nil, func([]string) error {
		u, err := svc.requireUser()
		if err != nil {
			return err
		}
		w.wg.Go(func() {
			for _, q := range svc.museum.SearchHistory(w.ctx, u.ID) {
				svc.lines.Log("  " + q)
			}
		})
		return nil
	})
	w.reg.Register("lang", "en|es", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected a language, one of %s", strings.Join(i18n.Locales(), ", "))
		}
		lang := strings.ToLower(args[0])
		if !slices.Contains(i18n.Locales(), lang) {
			return fmt.Errorf("unsupported language %q, one of %s", lang, strings.Join(i18n.Locales(), ", "))
		}
		svc.prefs.Lang = lang
		svc.printer = i18n.NewPrinter(svc.prefs.Lang)
		w.rend.SetPrinter(svc.printer)
		w.con.Placeholder = svc.printer.T("console.placeholder")
		svc.savePrefs()
		return nil
	})
	w.reg.Register("logout", "", nil, func([]string) error {
		if err := svc.auth.Logout(); err != nil {
			return err
		}
		w.gal.Close()
		svc.lines.Log(svc.printer.T("console.signedout"))
		return nil
	})
	w.toggle("immersive", &svc.prefs.Immersive, w.rend.SetImmersive)
	w.toggle("grid", &svc.prefs.GridVisible, func(on bool) { w.rend.GridVisible = on })
	w.toggle("fps", &svc.prefs.ShowFPS, func(on bool) { w.dbg.ShowFPS = on })
	w.toggle("mem", &svc.prefs.ShowMemAlloc, func(on bool) { w.dbg.ShowMemAlloc = on })
	w.toggle("pose", &svc.prefs.ShowPose, func(on bool) { w.dbg.ShowPose = on })
}
