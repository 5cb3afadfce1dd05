package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/chatscope/pkg/config"
	"github.com/umputun/chatscope/pkg/delivery"
	"github.com/umputun/chatscope/pkg/digest"
	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/feedback"
	"github.com/umputun/chatscope/pkg/llm"
	"github.com/umputun/chatscope/pkg/notify"
	"github.com/umputun/chatscope/pkg/pipeline"
	"github.com/umputun/chatscope/pkg/repository"
	"github.com/umputun/chatscope/pkg/scheduler"
	"github.com/umputun/chatscope/pkg/scoring"
	"github.com/umputun/chatscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"chatscope.yml" description:"config file"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		lgr.Printf("[ERROR] failed to load config from %s: %v", opts.Config, err)
		os.Exit(1)
	}

	setupLog(opts.Debug, secrets(cfg)...)
	lgr.Printf("[INFO] starting chatscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		lgr.Printf("[ERROR] chatscope failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

// messageQueue adapts the pipeline intake channel to the ingest API
type messageQueue chan domain.Message

// Submit enqueues without blocking, a full queue sheds load to the caller
func (q messageQueue) Submit(_ context.Context, msg domain.Message) error {
	select {
	case q <- msg:
		return nil
	default:
		return fmt.Errorf("intake queue full")
	}
}

// run wires all components and blocks until the context is canceled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close repositories: %v", err)
		}
	}()

	// scoring
	resolver := scoring.NewResolver(repos.Profile)
	var embedder scoring.Embedder
	if cfg.Embedding.Enabled {
		embedder = llm.NewEmbedder(cfg.Embedding)
		lgr.Printf("[INFO] semantic scoring enabled, model %s", cfg.Embedding.Model)
	}
	semantic := scoring.NewSemantic(embedder, repos.Feedback)

	// delivery
	var notifier delivery.Notifier
	if cfg.Delivery.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Delivery.Telegram.Token)
		if err != nil {
			return fmt.Errorf("init telegram notifier: %w", err)
		}
		notifier = tg
		lgr.Printf("[INFO] telegram notifier enabled")
	}
	orchestrator := delivery.NewOrchestrator(repos.Delivery, notifier, cfg.Delivery)

	// feedback recompute invalidates both caches
	processor := feedback.NewProcessor(repos.Feedback, repos.Setting,
		resolver.Invalidate, semantic.InvalidateProfile)

	// evaluation pipeline
	admitter := pipeline.NewAdmitter(repos.Alert)
	collector := digest.NewCollector()
	pipe := pipeline.New(cfg.Pipeline, resolver, semantic, admitter, collector, orchestrator)

	messages := make(messageQueue, 1024)
	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- pipe.Run(ctx, messages)
	}()

	// background workers
	sched := scheduler.NewScheduler(repos.Profile, repos.Schedule, collector,
		orchestrator, processor, repos.Alert, repos.Delivery, cfg.Schedule)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, repos.Profile, resolver, pipe, messages, repos.Delivery,
		repos.Feedback, processor, repos.Schedule, admitter, revision, debug)

	err = srv.Run(ctx)

	close(messages)
	if perr := <-pipelineDone; perr != nil {
		lgr.Printf("[WARN] pipeline stopped with error: %v", perr)
	}

	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// secrets collects sensitive config values to mask in logs
func secrets(cfg *config.Config) []string {
	var secs []string
	if cfg.Embedding.APIKey != "" {
		secs = append(secs, cfg.Embedding.APIKey)
	}
	if cfg.Delivery.Telegram.Token != "" {
		secs = append(secs, cfg.Delivery.Telegram.Token)
	}
	for _, wh := range cfg.Delivery.Webhooks {
		if wh.Secret != "" {
			secs = append(secs, wh.Secret)
		}
	}
	return secs
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stdout), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
