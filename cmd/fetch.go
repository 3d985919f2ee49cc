package cmd

import (
	"fmt"
	"os"

	"SongFormat/core/utils"

	"github.com/spf13/cobra"
)

var fetchKind string

var fetchCmd = &cobra.Command{
	Use:     "fetch <url> <out>",
	Short:   "Download a chart document, validate it and save it",
	Example: `  songformat fetch https://example.com/charts/song.json song.json`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		data, err := utils.FetchDocument(ctx, args[0])
		if err != nil {
			return err
		}
		out, err := reencode(fetchKind, data, outputProfile())
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := os.WriteFile(args[1], out, 0o644); err != nil {
			return err
		}
		fmt.Printf("saved %s (%d bytes)\n", args[1], len(out))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchKind, "type", "t", "song", "document type: "+kindNames())
	rootCmd.AddCommand(fetchCmd)
}
