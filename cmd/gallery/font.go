package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"museum-gallery/internal/fonts"
)

func newFontCmd(load func() *services) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "font [family]",
		Short: "Download a Google Fonts family for labels and the overlay",
		Long: `Font fetches one upright cut of the family from the google/fonts repository into
assets/fonts. Without an argument it installs the family named by GALLERY_FONT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := load()
			family := svc.cfg.Font
			if len(args) == 1 {
				family = args[0]
			}
			path, err := fonts.NewSource(svc.cfg.HTTPTimeout).Install(cmd.Context(), family, dir)
			if err != nil {
				return err
			}
			svc.log.Info("font installed", "family", family, "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", fonts.BaseDirs[0], "directory to install into")
	return cmd
}
