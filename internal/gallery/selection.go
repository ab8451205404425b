package gallery

import (
	"context"

	"museum-gallery/internal/artwork"
)

// Phase is the favorite-status stage of the current selection.
type Phase int

const (
	// PhaseNone: nothing selected, the panel is hidden.
	PhaseNone Phase = iota
	// PhaseChecking: an artwork is selected and its favorite status is being looked up.
	PhaseChecking
	// PhaseKnown: favorite status resolved (Selection.Favorite).
	PhaseKnown
	// PhasePending: an add-to-favorites request is in flight.
	PhasePending
)

func (p Phase) String() string {
	switch p {
	case PhaseChecking:
		return "checking"
	case PhaseKnown:
		return "known"
	case PhasePending:
		return "pending"
	}
	return "none"
}

// Selection is a snapshot of the selection state.
type Selection struct {
	Phase    Phase
	Artwork  artwork.Artwork
	Favorite bool
	// Err is the last add failure, shown inline until the selection changes.
	Err error
}

// Active reports whether an artwork is selected.
func (s Selection) Active() bool {
	return s.Phase != PhaseNone
}

// CanAdd reports whether the add-to-favorites action is enabled.
func (s Selection) CanAdd() bool {
	return s.Phase == PhaseKnown && !s.Favorite
}

// AddOutcome tells the caller what AddFavorite did.
type AddOutcome int

const (
	// AddIgnored: the action is disabled (nothing selected, checking, pending or already a favorite).
	AddIgnored AddOutcome = iota
	// AddStarted: the request was sent; the state is pending.
	AddStarted
	// AddRedirect: no user is signed in; the caller should send the user to log in.
	AddRedirect
)

func (o AddOutcome) String() string {
	switch o {
	case AddStarted:
		return "started"
	case AddRedirect:
		return "redirect"
	}
	return "ignored"
}

// Selection returns the current selection snapshot.
func (c *Controller) Selection() Selection {
	return c.sel
}

// Select makes a the selected artwork from any state. The favorite status starts over:
// without a signed-in user it resolves to false at once, otherwise a lookup is started
// and any lookup for a previous selection is cancelled and its result ignored.
func (c *Controller) Select(a artwork.Artwork) {
	c.bump()
	c.sel = Selection{Phase: PhaseChecking, Artwork: a}
	if c.opts.OnSelect != nil {
		c.opts.OnSelect(a)
	}

	u, ok := c.user()
	if !ok || c.opts.Favorites == nil {
		c.sel.Phase = PhaseKnown
		return
	}
	favorites := c.opts.Favorites
	c.launch(func(ctx context.Context) result {
		list, err := favorites.Favorites(ctx, u.ID)
		if err != nil {
			return result{kind: checkDone, err: err}
		}
		for _, f := range list {
			if artwork.Same(f, a) {
				return result{kind: checkDone, favorite: true}
			}
		}
		return result{kind: checkDone}
	})
}

// Close clears the selection from any state. Outstanding requests are cancelled.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	c.ctx, c.cancel = nil, nil
	c.sel = Selection{}
}

// AddFavorite adds the selected artwork to the user's favorites. It is only honored
// while the status is known and false.
func (c *Controller) AddFavorite() AddOutcome {
	if !c.sel.CanAdd() {
		return AddIgnored
	}
	u, ok := c.user()
	if !ok {
		return AddRedirect
	}
	if c.opts.Favorites == nil {
		return AddIgnored
	}
	a := c.sel.Artwork
	favorites := c.opts.Favorites
	c.sel.Phase = PhasePending
	c.sel.Err = nil
	c.launch(func(ctx context.Context) result {
		return result{kind: addDone, err: favorites.AddFavorite(ctx, u.ID, a)}
	})
	return AddStarted
}

// Apply drains queued completions and applies those that belong to the current
// selection. It never blocks and returns the number of results applied.
func (c *Controller) Apply() int {
	n := 0
	for {
		select {
		case r := <-c.results:
			if c.apply(r) {
				n++
			}
		default:
			return n
		}
	}
}

func (c *Controller) apply(r result) bool {
	if r.gen != c.gen {
		return false
	}
	switch r.kind {
	case checkDone:
		if c.sel.Phase != PhaseChecking {
			return false
		}
		if r.err != nil {
			c.log.Warn("favorite check failed", "artwork", c.sel.Artwork.Key(), "error", r.err)
		}
		c.sel.Phase = PhaseKnown
		c.sel.Favorite = r.err == nil && r.favorite
	case addDone:
		if c.sel.Phase != PhasePending {
			return false
		}
		c.sel.Phase = PhaseKnown
		if r.err != nil {
			c.log.Error("add favorite failed", "artwork", c.sel.Artwork.Key(), "error", r.err)
			c.sel.Favorite = false
			c.sel.Err = r.err
			return true
		}
		c.sel.Favorite = true
		c.log.Info("favorite added", "artwork", c.sel.Artwork.Key())
	default:
		return false
	}
	return true
}
