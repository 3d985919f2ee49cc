package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the song catalog from the chart directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.svc.Reindex(ctx)
		fmt.Printf("indexed %d songs\n", n)
		return err
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
