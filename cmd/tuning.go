package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"SongFormat/model"

	"github.com/spf13/cobra"
)

// parseOffsetArgs accepts "-2 0 0" as well as "-2,0,0".
func parseOffsetArgs(args []string) ([]int, error) {
	var offsets []int
	for _, arg := range args {
		for _, f := range strings.Split(arg, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid offset %q", f)
			}
			offsets = append(offsets, v)
		}
	}
	return offsets, nil
}

var tuningCmd = &cobra.Command{
	Use:   "tuning <offsets...>",
	Short: "Name a tuning from per-string semitone offsets",
	Example: `  songformat tuning -- -2 0 0 0 0 0      # Drop D
  songformat tuning -- -1,-1,-1,-1,-1,-1 # Eb Std`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offsets, err := parseOffsetArgs(args)
		if err != nil {
			return err
		}
		t := model.NewStringTuning(offsets...)
		fmt.Printf("Name:    %s\n", t.Name())
		fmt.Printf("Notes:   %s\n", t.TuningAsNotes())
		fmt.Printf("Offsets: %v\n", offsets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuningCmd)
}
