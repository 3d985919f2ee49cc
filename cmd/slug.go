package cmd

import (
	"fmt"

	"SongFormat/core/utils"

	"github.com/spf13/cobra"
)

var slugCmd = &cobra.Command{
	Use:   "slug <text> [song]",
	Short: "Print the filename-safe form of a name",
	Long: `With one argument, print its filename-safe form. With two (artist and song),
print the directory name the song is stored under.`,
	Example: `  songformat slug "Mötley Crüe"
  songformat slug "Mötley Crüe" "Kickstart My Heart"`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 2 {
			fmt.Println(utils.SongSlug(args[0], args[1]))
			return
		}
		fmt.Println(utils.SafeFilename(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(slugCmd)
}
