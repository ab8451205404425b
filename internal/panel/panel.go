// Package panel builds the selection panel shown over the gallery for the selected artwork.
package panel

import (
	"strings"

	"museum-gallery/internal/gallery"
	"museum-gallery/internal/i18n"
)

// Button is the favorite toggle.
type Button struct {
	Label   string
	Enabled bool
}

// View is everything the overlay draws. A zero View with Visible false draws nothing.
type View struct {
	Visible bool
	Title   string
	// Lines are the optional detail rows (artist, museum, date, medium) in display order.
	Lines       []string
	Description string
	Favorite    Button
	Close       string
	// Error is the inline add-failure message, if any.
	Error string
}

// Build derives the panel from a selection snapshot. signedIn only changes the button
// label: a signed-out user sees a prompt to log in and the button stays clickable so the
// controller can answer with a redirect.
func Build(sel gallery.Selection, signedIn bool, p *i18n.Printer) View {
	if !sel.Active() {
		return View{}
	}
	a := sel.Artwork
	v := View{
		Visible:     true,
		Title:       a.Title,
		Description: strings.TrimSpace(a.Description),
		Close:       p.T("panel.close"),
	}
	if a.Artist != "" {
		v.Lines = append(v.Lines, p.T("panel.artist", a.Artist))
	}
	v.Lines = append(v.Lines, p.T("panel.museum", p.Museum(a.Museum)))
	if a.Dated != "" {
		v.Lines = append(v.Lines, p.T("panel.date", a.Dated))
	}
	if a.Medium != "" {
		v.Lines = append(v.Lines, p.T("panel.medium", a.Medium))
	}

	switch {
	case sel.Phase == gallery.PhaseChecking:
		v.Favorite = Button{Label: p.T("panel.favorite.checking")}
	case sel.Phase == gallery.PhasePending:
		v.Favorite = Button{Label: p.T("panel.favorite.saving")}
	case sel.Favorite:
		v.Favorite = Button{Label: p.T("panel.favorite.saved")}
	case !signedIn:
		v.Favorite = Button{Label: p.T("panel.favorite.login"), Enabled: true}
	default:
		v.Favorite = Button{Label: p.T("panel.favorite.add"), Enabled: true}
	}
	if sel.Err != nil {
		v.Error = p.T("panel.error.add", sel.Err.Error())
	}
	return v
}
