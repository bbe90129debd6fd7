package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"vidqa/api"
	"vidqa/api/store"
	"vidqa/config"
)

const shutdownTimeout = 5 * time.Second

func newServeMockCommand(ctx *commandContext) *cobra.Command {
	var port int
	var latency time.Duration
	var useRedis bool

	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Run a local stand-in for the video Q&A service",
		Long: "Serves the video, question and summary endpoints with canned answers.\n" +
			"Videos persist in Redis when REDIS_ADDR is set and in memory otherwise.\n" +
			"Titles come from the YouTube Data API when YOUTUBE_API_KEY or\n" +
			"YOUTUBE_SERVICE_ACCOUNT_FILE is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, closer, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			if cmd.Flags().Changed("port") {
				cfg.MockPort = port
			}
			if cmd.Flags().Changed("latency") {
				cfg.MockLatency = latency
			}
			if useRedis && cfg.RedisAddr == "" {
				cfg.RedisAddr = config.DefaultRedisAddr
			}
			return serveMock(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultMockPort, "Port to listen on (overrides MOCK_PORT)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Artificial delay per request (overrides MOCK_LATENCY)")
	cmd.Flags().BoolVar(&useRedis, "redis", false, "Persist to Redis, at "+config.DefaultRedisAddr+" unless REDIS_ADDR is set")
	return cmd
}

func serveMock(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []api.Option{
		api.WithLogger(log),
		api.WithLatency(cfg.MockLatency),
	}
	if cfg.YouTubeAPIKey != "" || cfg.YouTubeServiceAccount != "" {
		meta, err := api.NewYouTubeMetadata(ctx, api.YouTubeConfig{
			APIKey:             cfg.YouTubeAPIKey,
			ServiceAccountFile: cfg.YouTubeServiceAccount,
		})
		if err != nil {
			return fmt.Errorf("youtube metadata: %w", err)
		}
		opts = append(opts, api.WithMetadata(meta))
		log.Info("using YouTube Data API for video metadata")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.MockPort),
		Handler:           api.NewRouter(api.NewServer(st, opts...)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock service listening", "addr", srv.Addr, "latency", cfg.MockLatency)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down mock service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config) (store.Store, error) {
	if !cfg.RedisEnabled() {
		return store.NewMemory(), nil
	}
	st, err := store.NewRedis(store.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		Prefix:   "vidqa:",
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return st, nil
}
