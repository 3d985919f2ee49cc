package cmd

import (
	"SongFormat/core/watcher"
	"SongFormat/logger"
	"SongFormat/server"

	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 chart HTTP 服务",
	Long: `Serve the chart store over HTTP. Reload events for edited songs are pushed to
WebSocket clients on /ws when --watch is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if n, err := a.svc.Reindex(ctx); err != nil {
			logger.Warn("initial reindex incomplete", logger.Int("songs", n), logger.ErrorField(err))
		}

		hub := server.NewHub()
		if serveWatch {
			w := watcher.New(a.svc, a.local, 0, hub.OnChange)
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("watcher stopped", logger.ErrorField(err))
				}
			}()
		}

		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		return server.Serve(ctx, addr, server.NewHandler(a.svc, hub))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "watch the chart directory for edits")
	rootCmd.AddCommand(serveCmd)
}
