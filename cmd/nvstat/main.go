package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"codeberg.org/mutker/nvstat/internal/config"
	"codeberg.org/mutker/nvstat/internal/dashboard"
	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/gpu"
	"codeberg.org/mutker/nvstat/internal/logger"
	"codeberg.org/mutker/nvstat/internal/metrics"
)

const (
	snapshotTimeout = 5 * time.Second

	fallbackRows = 40
)

var (
	cfg       *config.Config
	source    gpu.Source
	collector metrics.Collector
	output    *termenv.Output
)

func init() {
	var err error
	cfg, err = config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.NoColor); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")

	if cfg.NoColor {
		dashboard.DisableColor()
	}

	source = gpu.Detect(cfg.ForceSMI)
	output = termenv.NewOutput(os.Stdout)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	metricsCfg := metrics.DefaultConfig()
	metricsCfg.Enabled = cfg.Record
	metricsCfg.DBPath = cfg.Database

	var err error
	collector, err = metrics.NewService(metricsCfg)
	if err != nil {
		logger.FatalWithCode(err).Msg("failed to initialize metrics recording")
	}

	if err := loop(ctx); err != nil {
		logger.ErrorWithCode(err).Msg("error in main loop")
	}
	cleanup()
}

func loop(ctx context.Context) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	output.HideCursor()

	// First frame renders immediately, the ticker paces the rest
	render(ctx, interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			render(ctx, interval)
		}
	}
}

func render(ctx context.Context, interval time.Duration) {
	snapshotCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	samples, err := source.Snapshot(snapshotCtx)
	if err != nil {
		// An empty frame tells the user more than a dead terminal would
		logger.Debug().Err(err).Msg("GPU snapshot failed")
		samples = nil
	}

	output.ClearScreen()
	fmt.Fprint(output, dashboard.ComposeFrame(samples, terminalSize(), time.Now(), interval))

	snapshot := &metrics.Snapshot{Timestamp: time.Now(), Samples: samples}
	if err := collector.Record(ctx, snapshot); err != nil {
		logger.Debug().Err(err).Msg("failed to record metrics")
	}
}

func terminalSize() dashboard.TerminalSize {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || columns <= 0 {
		return dashboard.TerminalSize{Columns: dashboard.PreferredWidth, Rows: fallbackRows}
	}

	return dashboard.TerminalSize{Columns: columns, Rows: rows}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup() {
	output.ShowCursor()
	if err := collector.Close(); err != nil {
		logger.ErrorWithCode(err).Msg("failed to close metrics recording")
	}
	if err := source.Close(); err != nil {
		logger.ErrorWithCode(err).Msg("failed to close GPU source")
	}
	logger.Info().Msg("Exiting...")
}
