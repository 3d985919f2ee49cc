package cmd

import (
	"fmt"
	"os"

	"SongFormat/core/codec"
	"SongFormat/core/midiexport"
	"SongFormat/model"

	"github.com/spf13/cobra"
)

var midiBPM float64

var midiCmd = &cobra.Command{
	Use:     "midi <keys.json> <out.mid>",
	Short:   "Export a keyboard part as a Standard MIDI File",
	Example: `  songformat midi charts/Artist_Song/parts/Keys.json keys.mid --bpm 96`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		notes, err := codec.DecodeAs[model.SongKeyboardNotes](data)
		if err != nil {
			return err
		}

		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := midiexport.WriteKeyboardSMF(f, notes, midiBPM); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %d notes to %s\n", len(notes.Notes), args[1])
		return nil
	},
}

func init() {
	midiCmd.Flags().Float64Var(&midiBPM, "bpm", midiexport.DefaultBPM, "tempo used to convert seconds to ticks")
	rootCmd.AddCommand(midiCmd)
}
