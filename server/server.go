package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"SongFormat/core/chart"
	"SongFormat/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter registers the chart API on a gorilla/mux router.
func NewRouter(svc *chart.Service, hub *Hub) *mux.Router {
	h := NewAPIHandler(svc)
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/songs", h.ListSongsHandler).Methods(http.MethodGet)
	api.HandleFunc("/songs/{slug}", h.GetSongHandler).Methods(http.MethodGet)
	api.HandleFunc("/songs/{slug}/arrangement", h.GetArrangementHandler).Methods(http.MethodGet)
	api.HandleFunc("/songs/{slug}/parts/{part}", h.GetPartHandler).Methods(http.MethodGet)
	api.HandleFunc("/tuning", h.TuningHandler).Methods(http.MethodGet)
	api.HandleFunc("/slug", h.SlugHandler).Methods(http.MethodGet)

	if hub != nil {
		router.HandleFunc("/ws", hub.ServeWS).Methods(http.MethodGet)
	}
	return router
}

// NewHandler wraps the router with CORS.
func NewHandler(svc *chart.Service, hub *Hub) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400, // 24 hours
	})
	return c.Handler(NewRouter(svc, hub))
}

// Serve runs an HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	// 设置服务器超时
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	// 创建一个5秒超时的上下文
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
