package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/backmassage/clipweave/internal/check"
	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/ffmpeg"
	"github.com/backmassage/clipweave/internal/logging"
	"github.com/backmassage/clipweave/internal/pipeline"
)

// version and commit are injected at build time via -ldflags. When built
// with plain "go build" these retain their defaults.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:           "clipweave",
		Short:         "Pair, split, and weave product/selfie recordings into composite clips",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			cfg.DryRun = dryRun
			return runPipeline(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "configuration file path")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve pairs and report, write nothing")

	rootCmd.AddCommand(newCheckCommand(&configFlag))

	return rootCmd
}

// runPipeline is the default action: acquire the single-instance lock,
// validate the toolchain, and process every resolved pair.
func runPipeline(cfg config.Config) error {
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return fmt.Errorf("create root directory: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipweave instance is already running")
	}
	defer lock.Unlock()

	// Fail fast if ffmpeg/ffprobe or the configured codec are unavailable.
	if err := check.Deps(cfg); err != nil {
		return err
	}

	logger.Info("starting run", "version", version, "root", cfg.Root,
		"clips", cfg.Clips.Count, "seconds", cfg.Clips.Seconds,
		"workers", cfg.WorkerLimit())

	// Cancel on SIGINT/SIGTERM so the current pair can stop cleanly without
	// leaving partial output at a final path.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("received interrupt, stopping after current operation")
		cancel()
	}()

	stats, err := pipeline.Run(ctx, cfg, logger, ffmpeg.New(cfg, logger))
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d pairs failed", stats.Failed, stats.Pairs)
	}
	return nil
}

// newCheckCommand builds the diagnostics subcommand: tool presence, test
// encodes, and working-directory write probes, rendered as a table.
func newCheckCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run system diagnostics (tools, codecs, directories)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			results := check.Run(cfg)
			fmt.Println(check.Render(results))
			if check.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
