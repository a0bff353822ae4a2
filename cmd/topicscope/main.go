package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/topicscope/pkg/cluster"
	"github.com/umputun/topicscope/pkg/config"
	"github.com/umputun/topicscope/pkg/content"
	"github.com/umputun/topicscope/pkg/domain"
	"github.com/umputun/topicscope/pkg/embed"
	"github.com/umputun/topicscope/pkg/feed"
	"github.com/umputun/topicscope/pkg/filter"
	"github.com/umputun/topicscope/pkg/repository"
	"github.com/umputun/topicscope/pkg/scheduler"
	"github.com/umputun/topicscope/pkg/service"
	"github.com/umputun/topicscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Once   bool   `long:"once" env:"ONCE" description:"run a single refresh and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, os.Getenv("EMBEDDING_API_KEY"))
	lgr.Printf("[INFO] starting topicscope version %s", revision)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Embedding.APIKey != "" {
		setupLog(opts.Debug, cfg.Embedding.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, cfg.RepositoryConfig())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()
	svc := service.New(repos)

	if err := seedSources(ctx, svc, cfg.Sources); err != nil {
		return err
	}

	relevance, err := filter.New(cfg.Filter.Keywords, cfg.Filter.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to build relevance filter: %w", err)
	}

	clusterer := cluster.New(cluster.Params{
		Store:     svc,
		Embedder:  embed.New(cfg.EmbedConfig()),
		Filter:    relevance,
		Threshold: cfg.Clustering.SimilarityThreshold,
		PoolSize:  cfg.Clustering.PoolSize,
		Scorer:    cfg.Scorer(),
	})

	ingestParams := feed.IngesterParams{
		Store:           svc,
		Parser:          feed.NewParser(cfg.Extraction.Timeout, cfg.Extraction.UserAgent),
		ItemsPerSource:  cfg.Schedule.ItemsPerSource,
		Concurrency:     cfg.Schedule.Concurrency,
		MaxSummaryChars: cfg.Extraction.MaxChars,
	}
	if cfg.Extraction.Enabled {
		ingestParams.Extractor = content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MaxChars)
	}

	sched := scheduler.NewScheduler(scheduler.Params{
		Ingester:       feed.NewIngester(ingestParams),
		Clusterer:      clusterer,
		RunStore:       svc,
		UpdateInterval: cfg.Schedule.UpdateInterval,
	})

	if opts.Once {
		res, err := sched.RunNow(ctx)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		lgr.Printf("[INFO] refresh done, new items %d, topics created %d, items assigned %d, skipped %d",
			res.NewItems, res.Summary.TopicsCreated, res.Summary.ItemsAssigned, res.Summary.ItemsSkipped)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, svc, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// seedSources upserts configured sources by url
func seedSources(ctx context.Context, svc *service.Service, sources []config.SourceConfig) error {
	for _, s := range sources {
		src := domain.Source{Name: s.Name, URL: s.URL, Type: s.Type, Active: !s.Disabled}
		if err := svc.UpsertSource(ctx, &src); err != nil {
			return fmt.Errorf("failed to seed source %s: %w", s.URL, err)
		}
	}
	lgr.Printf("[INFO] seeded %d sources", len(sources))
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
