package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"apod_fetcher/internal/config"
	"apod_fetcher/internal/live"
	"apod_fetcher/internal/metrics"
	"apod_fetcher/internal/publisher"
	"apod_fetcher/internal/service"
	"apod_fetcher/internal/source/apod"
	"apod_fetcher/internal/storage/sqlstore"
)

const usage = `usage: apodsync [-config path] <command> [flags]

commands:
  today                      fetch and show today's photo
  range -start D -end D      fetch and list photos in a date range
  month -year Y -month M     fetch and list one month (M is Jan..Dec)
  random [-count N]          fetch random photos and list a cached sample
  favorites                  list favorite photos
  favorite -date D           toggle the favorite flag of a cached photo
  show -date D               show a cached photo
  export [-favorites]        write cached photos as CSV to stdout
  import -file F             load photos from a CSV export (favorites in the
                             file are restored, cached favorites are kept)
  status                     show sync bookkeeping
  serve                      run the scheduler and the HTTP API
`

// app holds everything a command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sqlx.DB
	svc      *service.SyncService
	registry *prometheus.Registry
	pub      *publisher.RabbitMQ
	out      io.Writer
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Logs go to stderr so command output can be piped.
	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.Error("command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	if err := sqlstore.RunMigrations(cfg.Database.MigrationURL()); err != nil {
		return nil, err
	}

	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("connected to database", "driver", cfg.Database.Driver)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
		out:      os.Stdout,
	}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(a.registry)

	// A nil *RabbitMQ must not end up inside the Publisher interface.
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		a.pub, err = publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		pub = a.pub
	}

	hub := live.NewHub(logger)
	txManager := sqlstore.NewTransactionManager(db)
	photoStore := sqlstore.NewPhotoStore(db, txManager, hub)
	syncStateStore := sqlstore.NewSyncStateStore(db)

	client := apod.New(apod.Config{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          cfg.API.Timeout,
		RateLimitPerHour: cfg.API.RateLimitPerHour,
		RateBurst:        cfg.API.RateBurst,
		MaxAttempts:      cfg.API.Retry.MaxAttempts,
		InitialBackoff:   cfg.API.Retry.InitialBackoff,
		MaxBackoff:       cfg.API.Retry.MaxBackoff,
	}, logger)

	a.svc = service.NewSyncService(
		client,
		photoStore,
		syncStateStore,
		txManager,
		pub,
		collector,
		logger,
		cfg.Sync,
	)

	return a, nil
}

func (a *app) close() {
	a.svc.Close()
	a.svc.Wait()
	if a.pub != nil {
		a.pub.Close()
	}
	a.db.Close()
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
