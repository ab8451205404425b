package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/layout"
	"museum-gallery/internal/museum"
	"museum-gallery/internal/prefs"
)

func newSearchCmd(load func() *services) *cobra.Command {
	var (
		museums []string
		p       museum.Params
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the museum catalogs",
		Long: `Search runs the same query the gallery uses: up to 8 MET results, then
Harvard for the rest of 12. With --limit (or --sort, --period, --artist) it runs a
single composition search instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := load()
			query := strings.Join(args, " ")
			if len(museums) == 0 {
				museums = svc.prefs.Museums
			}
			museums = prefs.NormalizeMuseums(museums)

			var (
				arts []artwork.Artwork
				err  error
			)
			if p.Limit > 0 || p.SortBy != "" || p.Period != "" || p.Artist != "" {
				p.Query, p.Museums = query, museums
				var res museum.SearchResult
				res, err = svc.museum.Search(cmd.Context(), p)
				arts = res.Artworks
			} else {
				arts, err = svc.museum.SearchGallery(cmd.Context(), query, museums)
			}
			if err != nil {
				return err
			}
			if u, ok := svc.auth.CurrentUser(); ok {
				svc.museum.AddSearchHistory(cmd.Context(), u.ID, query)
			}
			printArtworks(cmd.OutOrStdout(), arts)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&museums, "museum", "m", nil, "museums to search (default from preferences)")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "maximum results for a single search")
	cmd.Flags().StringVar(&p.SortBy, "sort", "", "sort order: relevance, date, title, museum")
	cmd.Flags().StringVar(&p.Period, "period", "", "filter by period")
	cmd.Flags().StringVar(&p.Artist, "artist", "", "filter by artist")
	return cmd
}

func printArtworks(w io.Writer, arts []artwork.Artwork) {
	if len(arts) == 0 {
		fmt.Fprintln(w, "no artworks found")
		return
	}
	for i, a := range arts {
		line := fmt.Sprintf("%2d. [%s %s] %s", i+1, a.Museum, a.ID, a.Title)
		if a.Artist != "" {
			line += " by " + a.Artist
		}
		if a.Dated != "" {
			line += " (" + a.Dated + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func newLayoutCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print where N artworks would hang, as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative")
			}
			type slotOut struct {
				layout.Slot `yaml:",inline"`
				Wall        string `yaml:"wall"`
			}
			slots := layout.Default().PlaceAll(count)
			out := make([]slotOut, len(slots))
			for i, s := range slots {
				out[i] = slotOut{Slot: s, Wall: s.Wall.String()}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", layout.DefaultArtworksPerWall, "number of artworks")
	return cmd
}

func newFavoritesCmd(load func() *services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite artworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := load()
			u, err := svc.requireUser()
			if err != nil {
				return err
			}
			favs, err := svc.museum.Favorites(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			printArtworks(cmd.OutOrStdout(), favs)
			return nil
		},
	}
	var museumTag string
	remove := &cobra.Command{
		Use:   "remove <artwork-id>",
		Short: "Remove an artwork from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := load()
			u, err := svc.requireUser()
			if err != nil {
				return err
			}
			a := artwork.Artwork{ID: args[0], Museum: strings.ToLower(strings.TrimSpace(museumTag))}
			if err := svc.museum.RemoveFavorite(cmd.Context(), u.ID, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
	remove.Flags().StringVarP(&museumTag, "museum", "m", "", "museum the artwork belongs to (ids repeat across museums)")
	cmd.AddCommand(remove)
	return cmd
}

func newHistoryCmd(load func() *services) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := load()
			u, err := svc.requireUser()
			if err != nil {
				return err
			}
			for _, q := range svc.museum.SearchHistory(cmd.Context(), u.ID) {
				fmt.Fprintln(cmd.OutOrStdout(), q)
			}
			return nil
		},
	}
}
