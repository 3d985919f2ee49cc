package cmd

import (
	"context"

	"SongFormat/cache"
	"SongFormat/core/chart"
	"SongFormat/db"
	"SongFormat/logger"
	"SongFormat/repository"
	"SongFormat/storage"
)

// app holds the wiring shared by the long-running commands.
type app struct {
	local *storage.LocalStore
	svc   *chart.Service
	close []func()
}

func (a *app) Close() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

// openApp builds the chart service on the local store. withCatalog opens the
// database; the Redis cache is used when REDIS_ENABLED is set.
func openApp(ctx context.Context, withCatalog bool) (*app, error) {
	local, err := storage.NewLocalStore(cfg.ChartDir)
	if err != nil {
		return nil, err
	}
	a := &app{local: local}
	opts := []chart.Option{chart.WithProfile(outputProfile())}

	if withCatalog {
		gdb, err := db.Open(cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.close = append(a.close, func() { db.Close(gdb) })
		opts = append(opts, chart.WithRepository(repository.NewGormSongRepository(gdb)))
	}

	if cfg.RedisEnabled {
		client, err := cache.ConnectRedis(ctx, cfg)
		if err != nil {
			// the cache is optional
			logger.Warn("redis unavailable, continuing without cache", logger.ErrorField(err))
		} else {
			cc := cache.NewChartCache(client, cfg.CacheTTL)
			a.close = append(a.close, func() { cc.Close() })
			opts = append(opts, chart.WithCache(cc))
		}
	}

	a.svc = chart.NewService(local, opts...)
	return a, nil
}
