// Package split generates the fixed per-source segment enumeration and
// produces the segment files through the external engine under the bounded
// scheduler. Completed segments are never regenerated, so an interrupted run
// resumes where it stopped.
package split

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/display"
	"github.com/backmassage/clipweave/internal/fsx"
	"github.com/backmassage/clipweave/internal/naming"
	"github.com/backmassage/clipweave/internal/schedule"
)

// Engine is the single external operation this stage needs.
type Engine interface {
	ExtractSegment(ctx context.Context, src, dst string, startSec, durSec int) error
}

// SegmentJob describes one pending extraction. Jobs are generated on demand
// and discarded once executed or skipped.
type SegmentJob struct {
	Source   string
	Dest     string
	StartSec int
	DurSec   int
}

// Splitter slices sources into segments.
type Splitter struct {
	clips  config.Clips
	limit  int
	engine Engine
	log    *log.Logger
}

// New builds a Splitter with the clip profile and worker limit from cfg.
func New(cfg config.Config, engine Engine, logger *log.Logger) *Splitter {
	return &Splitter{
		clips:  cfg.Clips,
		limit:  cfg.WorkerLimit(),
		engine: engine,
		log:    logger,
	}
}

// Split extracts the configured number of fixed-duration segments of source
// into destDir as "<prefix>_clip<NN>.mp4". Segments whose destination already
// exists are skipped entirely. Fails when destDir cannot be created or
// written, or when any extraction fails (first failure wins, siblings are
// cancelled cooperatively).
func (s *Splitter) Split(ctx context.Context, source, destDir, prefix string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create segment dir: %w", err)
	}
	if err := fsx.ProbeWritable(destDir); err != nil {
		return err
	}

	jobs := s.plan(source, destDir, prefix)
	if len(jobs) == 0 {
		s.log.Info("all segments present, nothing to extract", "prefix", prefix)
		return nil
	}
	s.log.Info("extracting segments",
		"prefix", prefix, "jobs", len(jobs), "total", s.clips.Count, "workers", s.limit)

	tasks := make([]schedule.Task, len(jobs))
	for i, job := range jobs {
		tasks[i] = func(ctx context.Context) error {
			return s.extract(ctx, job)
		}
	}
	return schedule.Run(ctx, tasks, s.limit)
}

// plan enumerates segment jobs 1..Count with offsets i*Seconds, omitting any
// whose destination already exists.
func (s *Splitter) plan(source, destDir, prefix string) []SegmentJob {
	var jobs []SegmentJob
	for i := 0; i < s.clips.Count; i++ {
		dest := filepath.Join(destDir, naming.SegmentName(prefix, i+1))
		if fsx.Exists(dest) {
			continue
		}
		jobs = append(jobs, SegmentJob{
			Source:   source,
			Dest:     dest,
			StartSec: i * s.clips.Seconds,
			DurSec:   s.clips.Seconds,
		})
	}
	return jobs
}

// extract runs one job with a temp-then-rename commit, so a crashed or failed
// extraction never leaves a truncated file at the final segment path.
func (s *Splitter) extract(ctx context.Context, job SegmentJob) error {
	base := filepath.Base(job.Dest)
	tmp := filepath.Join(filepath.Dir(job.Dest), ".tmp-"+uuid.NewString()[:8]+"-"+base)

	if err := s.engine.ExtractSegment(ctx, job.Source, tmp, job.StartSec, job.DurSec); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("extract %s: %w", base, err)
	}

	fi, err := os.Stat(tmp)
	if err != nil || fi.Size() == 0 {
		os.Remove(tmp)
		return fmt.Errorf("extract %s: engine produced no output", base)
	}
	if err := os.Rename(tmp, job.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("extract %s: commit segment: %w", base, err)
	}
	s.log.Debug("segment ready", "segment", base, "size", display.FormatBytes(fi.Size()))
	return nil
}
