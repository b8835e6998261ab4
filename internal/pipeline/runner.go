// Package pipeline orchestrates the full run: directory bootstrap, pair
// resolution, and the per-pair split → merge → commit sequence with
// pair-isolated failure handling.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/backmassage/clipweave/internal/complete"
	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/fsx"
	"github.com/backmassage/clipweave/internal/merge"
	"github.com/backmassage/clipweave/internal/naming"
	"github.com/backmassage/clipweave/internal/pairing"
	"github.com/backmassage/clipweave/internal/split"
)

// Engine is the combined external-engine surface the stages consume. The
// real implementation is ffmpeg.Engine; tests substitute fakes.
type Engine interface {
	split.Engine
	merge.Engine
}

// Run is the top-level single-run entry point. It bootstraps and
// write-probes the working directories, resolves pairs, and processes each
// pair strictly sequentially. A pair's failure never aborts later pairs;
// only discovery and permission problems return an error, and then no pair
// has been processed.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger, engine Engine) (RunStats, error) {
	var stats RunStats

	for _, dir := range cfg.WorkingDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("create working directory %q: %w", dir, err)
		}
		if err := fsx.ProbeWritable(dir); err != nil {
			return stats, err
		}
	}

	pairs, report, err := pairing.Resolve(cfg)
	if err != nil {
		return stats, fmt.Errorf("pair resolution: %w", err)
	}

	fmt.Println(report.Render())
	logger.Info("resolution complete", "summary", report.Summary())
	stats.Pairs = len(pairs)

	if cfg.DryRun {
		logger.Warn("dry run, no files will be written")
		return stats, nil
	}

	splitter := split.New(cfg, engine, logger)
	merger := merge.New(cfg, engine, logger)
	completer := complete.New(cfg, logger)

	for _, p := range pairs {
		if ctx.Err() != nil {
			logger.Warn("interrupted, stopping before next pair")
			break
		}
		stats.Current++
		processPair(ctx, cfg, logger, splitter, merger, completer, p, &stats)
	}

	logger.Info("run finished",
		"pairs", stats.Pairs, "completed", stats.Completed, "failed", stats.Failed,
		"clips", stats.Clips, "skipped_indices", stats.SkippedIndices)
	return stats, nil
}

// processPair runs one pair through split(A) → split(B) → merge →
// commit/rollback. Every failure path still goes through the completion
// manager so scratch artifacts never outlive their pair.
func processPair(
	ctx context.Context,
	cfg config.Config,
	logger *log.Logger,
	splitter *split.Splitter,
	merger *merge.Merger,
	completer *complete.Manager,
	p pairing.Pair,
	stats *RunStats,
) {
	scratchA := scratchDir(cfg, p, config.CollectionProduct)
	scratchB := scratchDir(cfg, p, config.CollectionSelfie)
	outDir := filepath.Join(cfg.OutputDir(), naming.PairDirName(p.Index, p.NameA, p.NameB))

	logger.Info("processing pair",
		"index", p.Index, "identity", p.Identity,
		"product", filepath.Base(p.SourceA), "selfie", filepath.Base(p.SourceB))

	fail := func(stage string, err error, out merge.Outcome) {
		logger.Error("pair failed", "index", p.Index, "identity", p.Identity,
			"stage", stage, "err", err)
		if cerr := completer.Commit(p, out, scratchA, scratchB, outDir); cerr != nil {
			logger.Warn("rollback incomplete", "index", p.Index, "err", cerr)
		}
		stats.Failed++
	}

	if err := splitter.Split(ctx, p.SourceA, scratchA, string(config.CollectionProduct)); err != nil {
		fail("split product", err, merge.Outcome{})
		return
	}
	if err := splitter.Split(ctx, p.SourceB, scratchB, string(config.CollectionSelfie)); err != nil {
		fail("split selfie", err, merge.Outcome{})
		return
	}

	out, err := merger.Merge(ctx, scratchA, scratchB, outDir,
		string(config.CollectionProduct), string(config.CollectionSelfie))
	if err != nil {
		fail("merge", err, out)
		return
	}

	if err := completer.Commit(p, out, scratchA, scratchB, outDir); err != nil {
		logger.Error("pair failed", "index", p.Index, "identity", p.Identity,
			"stage", "commit", "err", err)
		stats.Failed++
		return
	}

	stats.Completed++
	stats.Clips += len(out.Committed)
	stats.SkippedIndices += len(out.Skipped)
	logger.Info("pair completed", "index", p.Index, "identity", p.Identity,
		"clips", len(out.Committed), "skipped", len(out.Skipped))
}

// scratchDir returns the per-side segment scratch directory. The pair index
// keeps same-identity pairs from sharing scratch space.
func scratchDir(cfg config.Config, p pairing.Pair, col config.Collection) string {
	name := p.NameA
	if col == config.CollectionSelfie {
		name = p.NameB
	}
	return filepath.Join(cfg.ClipsDir(),
		fmt.Sprintf("%02d_%s_%s", p.Index, naming.Sanitize(name), col))
}
