package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"SongFormat/core/codec"
	"SongFormat/model"

	"github.com/spf13/cobra"
)

var documentKinds = map[string]func([]byte, codec.Profile) ([]byte, error){
	"song":      codec.Reencode[model.SongData],
	"structure": codec.Reencode[model.SongStructure],
	"notes":     codec.Reencode[model.SongInstrumentNotes],
	"keyboard":  codec.Reencode[model.SongKeyboardNotes],
	"drums":     codec.Reencode[model.SongDrumNotes],
	"vocals":    codec.Reencode[model.SongVocals],
}

func kindNames() string {
	names := make([]string, 0, len(documentKinds))
	for k := range documentKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// reencode decodes data as kind and encodes it under p.
func reencode(kind string, data []byte, p codec.Profile) ([]byte, error) {
	fn, ok := documentKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document type %q (want one of %s)", kind, kindNames())
	}
	return fn(data, p)
}

var convertKind string

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Re-encode a chart document under the chosen profile",
	Long: `Decode a chart document and write it back with the indented or condensed profile.
Unknown fields are dropped; unknown enum names are an error.`,
	Example: `  songformat convert song.json song.min.json --profile condensed
  songformat convert lead.json lead.json --type notes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		out, err := reencode(convertKind, data, outputProfile())
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := os.WriteFile(args[1], out, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%s, %d bytes)\n", args[0], args[1], outputProfile(), len(out))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertKind, "type", "t", "song", "document type: "+kindNames())
	rootCmd.AddCommand(convertCmd)
}
