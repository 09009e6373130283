package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/pvscene/internal/server"
	"github.com/mkarlsen/pvscene/pkg/cache"
	"github.com/mkarlsen/pvscene/pkg/observability"
	"github.com/mkarlsen/pvscene/pkg/pipeline"
	"github.com/mkarlsen/pvscene/pkg/store"
)

// serveOpts holds flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	noCache  bool
}

// serveCommand creates the serve subcommand.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pvscene HTTP API",
		Long: `Run the pvscene HTTP API.

The server exposes scene building, snapshot and mesh export endpoints,
and the saved-project CRUD surface. Without --redis and --mongo it
falls back to the local file cache and file-backed project store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the artifact cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the project store (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	artifactCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer artifactCache.Close()

	projectStore, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer projectStore.Close(ctx)

	reg := prometheus.NewRegistry()
	runner := pipeline.NewRunner(artifactCache, nil, c.Logger)
	srv := server.New(runner, projectStore, c.Logger, reg)

	pipelineHooks, cacheHooks, storeHooks := srv.Metrics().Hooks()
	observability.SetPipelineHooks(pipelineHooks)
	observability.SetCacheHooks(cacheHooks)
	observability.SetStoreHooks(storeHooks)
	defer observability.Reset()

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// serveCache picks the artifact cache backend. Redis when configured,
// otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the project store backend. MongoDB when configured,
// otherwise the file-backed store the CLI uses.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using mongo project store")
		return ms, nil
	}
	return newProjectStore()
}
