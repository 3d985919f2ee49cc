package cmd

import (
	"fmt"

	"SongFormat/core/watcher"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index songs as their song.json files change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("watching %s (Ctrl+C to stop)\n", a.local.Root())
		w := watcher.New(a.svc, a.local, 0, func(c watcher.Change) {
			if c.Err != nil {
				fmt.Printf("! %s: %v\n", c.Slug, c.Err)
				return
			}
			if c.Removed {
				fmt.Printf("- %s\n", c.Slug)
				return
			}
			fmt.Printf("~ %s: %s\n", c.Slug, c.Song)
		})
		return w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
