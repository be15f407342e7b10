package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/showrunner/internal/blob"
	"github.com/alexanderramin/showrunner/internal/cli"
	"github.com/alexanderramin/showrunner/internal/config"
	"github.com/alexanderramin/showrunner/internal/intelligence"
	"github.com/alexanderramin/showrunner/internal/llm"
	"github.com/alexanderramin/showrunner/internal/logger"
	"github.com/alexanderramin/showrunner/internal/metrics"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("SHOWRUNNER_CONFIG"); path != "" {
		return config.LoadWithPath(path)
	}
	return config.Load()
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Open the blob store backing every state key
	store, err := blob.Open(ctx, cfg.BlobConfig())
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	app := &cli.App{
		Logger:     log,
		Gatherer:   reg,
		ServerAddr: cfg.Server.Addr,
	}

	// Detect interactive terminal; prompts are skipped otherwise.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	repo := repository.NewBlobStateRepo(store, log, repository.DefaultDataset)
	ws, err := service.OpenWorkspace(ctx, repo,
		service.WithConfirmer(app),
		service.WithNotifier(app),
		service.WithLogger(log),
		service.WithObservers(service.NewLogUseCaseObserver(log), recorder),
	)
	if err != nil {
		return fmt.Errorf("loading workspace: %w", err)
	}

	// Rider import degrades to a notification when no model is configured.
	var observer llm.Observer = recorder
	if cfg.LLM.LogCalls {
		observer = llm.MultiObserver{llm.NewLogObserver(log), recorder}
	}
	client, err := llm.NewClient(cfg.LLMClientConfig(), observer)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Debug("llm disabled", zap.String("provider", cfg.LLM.Provider))
		client = nil
	case err != nil:
		return fmt.Errorf("creating llm client: %w", err)
	}

	app.Wire(ws, intelligence.NewRiderParser(client))

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
