package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SongFormat/config"
	"SongFormat/core/codec"
	"SongFormat/logger"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	chartDirFlag string
	profileFlag  string
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "songformat",
	Short: "Song chart documents: convert, inspect, serve and index.",
	Long: `songformat reads and writes song chart documents (song metadata, arrangement,
fretted, keyboard, drum and vocal parts) and keeps a catalog of them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if chartDirFlag != "" {
			cfg.ChartDir = chartDirFlag
		}
		if profileFlag != "" {
			cfg.ChartProfile = profileFlag
		}
		if _, err := codec.ProfileByName(cfg.ChartProfile); err != nil {
			return err
		}

		level := logger.ParseLevel(cfg.LogLevel)
		if verboseFlag {
			level = logger.DebugLevel
		}
		return logger.InitLogger(logger.Config{
			Level:      level,
			OutputPath: cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
			Console:    true,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&chartDirFlag, "chart-dir", "", "chart store directory (overrides CHART_DIR)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "output profile: indented or condensed (overrides CHART_PROFILE)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func outputProfile() codec.Profile {
	p, err := codec.ProfileByName(cfg.ChartProfile)
	if err != nil {
		return codec.Indented
	}
	return p
}
