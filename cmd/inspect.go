package cmd

import (
	"fmt"
	"io"
	"os"

	"SongFormat/core/codec"
	"SongFormat/core/utils"
	"SongFormat/model"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <song.json>",
	Short: "Summarize a song document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		song, err := codec.DecodeAs[model.SongData](data)
		if err != nil {
			return err
		}
		printSong(cmd.OutOrStdout(), song)
		return nil
	},
}

func printSong(w io.Writer, song *model.SongData) {
	fmt.Fprintf(w, "Song:   %s\n", song.SongName)
	fmt.Fprintf(w, "Artist: %s\n", song.ArtistName)
	if song.AlbumName != "" {
		fmt.Fprintf(w, "Album:  %s\n", song.AlbumName)
	}
	if song.A440CentsOffset != 0 {
		fmt.Fprintf(w, "A440:   %+.2f cents\n", song.A440CentsOffset)
	}
	fmt.Fprintf(w, "Slug:   %s\n", utils.SongSlug(song.ArtistName, song.SongName))
	fmt.Fprintf(w, "Parts:  %d\n", len(song.InstrumentParts))
	for _, p := range song.InstrumentParts {
		fmt.Fprintf(w, "  - %-16s %-12s", p.InstrumentName, p.InstrumentType)
		if p.Tuning != nil {
			fmt.Fprintf(w, " %s (%s)", p.Tuning.Name(), p.Tuning.TuningAsNotes())
		}
		if p.CapoFret > 0 {
			fmt.Fprintf(w, " capo %d", p.CapoFret)
		}
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
