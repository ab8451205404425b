package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		svc     *services
		verbose bool
		opts    windowOptions
	)
	load := func() *services { return svc }

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Walk through museum search results in a 3D gallery",
		Long: `Gallery searches The Met and Harvard Art Museums and hangs the results as
framed pictures in a 3D room. Walk with a gamepad (or WASD in immersive mode),
select a picture to read about it, and save favorites to your account.

Run without a subcommand to open the gallery window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := newServices(verbose)
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), svc, opts)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also write logs to stderr")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "search to hang when the gallery opens")
	cmd.Flags().StringSliceVarP(&opts.museums, "museum", "m", nil, "museums to search (met, harvard)")
	cmd.Flags().BoolVar(&opts.immersive, "immersive", false, "start in controller locomotion mode")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "open fullscreen")

	cmd.AddCommand(
		newSearchCmd(load),
		newLayoutCmd(),
		newLoginCmd(load),
		newRegisterCmd(load),
		newLogoutCmd(load),
		newFavoritesCmd(load),
		newHistoryCmd(load),
		newFontCmd(load),
	)
	return cmd
}
