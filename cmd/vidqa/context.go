package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"vidqa/client"
	"vidqa/common"
	"vidqa/config"
	"vidqa/feed"
	"vidqa/logging"
	"vidqa/session"
	"vidqa/shared/kafka"
	"vidqa/workflow"
)

type globalFlags struct {
	envFile  string
	apiURL   string
	timeout  time.Duration
	logLevel string
	json     bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the environment once and applies flag overrides
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var files []string
		if f := strings.TrimSpace(c.flags.envFile); f != "" {
			files = append(files, f)
		}
		cfg, err := config.Load(files...)
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.apiURL != "" {
			cfg.APIURL = c.flags.apiURL
		}
		if c.flags.timeout > 0 {
			cfg.Timeout = c.flags.timeout
		}
		if c.flags.logLevel != "" {
			cfg.LogLevel = c.flags.logLevel
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the command logger. The TUI owns the terminal, so it only
// logs when a log file is configured.
func (c *commandContext) logger(cmd *cobra.Command, tui bool) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	out := cmd.ErrOrStderr()
	if tui {
		out = io.Discard
	}
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Path:   cfg.LogFile,
		Writer: out,
	})
}

// app is one client session: a fresh store plus the runner driving it
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	client  *client.Client
	runner  *workflow.Runner
	archive *common.SummaryArchive
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
}

// newApp wires the client, optional event producer, summary archive and
// feed source into a runner. Optional integrations that fail to start are
// logged and left out.
func (c *commandContext) newApp(cmd *cobra.Command, tui bool) (*app, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, logCloser, err := c.logger(cmd, tui)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		client:  client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout)),
		closers: []io.Closer{logCloser},
	}

	opts := []workflow.Option{
		workflow.WithLogger(log),
		workflow.WithFeedSource(feed.NewSource(&http.Client{Timeout: cfg.Timeout})),
	}

	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			Logger:  log,
		})
		if err != nil {
			log.Warn("workflow events disabled", "error", err)
		} else {
			opts = append(opts, workflow.WithPublisher(producer))
			a.closers = append(a.closers, producer)
		}
	}

	if cfg.S3Enabled() {
		archive, err := newSummaryArchive(cmd.Context(), cfg)
		if err != nil {
			log.Warn("summary export disabled", "error", err)
		} else {
			a.archive = archive
			opts = append(opts, workflow.WithExporter(archive))
		}
	}

	a.runner = workflow.NewRunner(session.NewStore(), a.client, opts...)
	return a, nil
}

func newSummaryArchive(ctx context.Context, cfg *config.Config) (*common.SummaryArchive, error) {
	s3Client, err := common.NewS3Client(ctx, common.S3Config{
		Bucket:       cfg.S3Bucket,
		Prefix:       cfg.S3Prefix,
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
		Endpoint:     cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return common.NewSummaryArchive(s3Client, cfg.S3Bucket, cfg.S3Prefix)
}

// selectVideo loads the library and selects id, for one-shot commands that
// act on a single video
func selectVideo(ctx context.Context, r *workflow.Runner, id string) error {
	if err := r.LoadLibrary(ctx); err != nil {
		return err
	}
	return r.Select(strings.TrimSpace(id))
}
