// Package merge stitches matching segment indices from the two sides of a
// pair into composite outputs. Missing or video-less segments are skipped
// per index; commit failures are fatal for the whole pair. Outputs are
// written to a scratch temp and relocated atomically, so a partial write is
// never visible at a final path.
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/display"
	"github.com/backmassage/clipweave/internal/fsx"
	"github.com/backmassage/clipweave/internal/naming"
	"github.com/backmassage/clipweave/internal/probe"
)

// Engine is the pair of external operations this stage needs.
type Engine interface {
	ProbeStreams(ctx context.Context, path string) (*probe.Result, error)
	Concat(ctx context.Context, inputA, inputB, dst string) error
}

// Outcome is the per-pair merge result consumed by the completion manager.
type Outcome struct {
	Success   bool
	Committed []string // final output paths, in index order
	Skipped   []int    // 1-based indices omitted for missing input or stream
}

// Merger combines segment pairs into final clips.
type Merger struct {
	clips   config.Clips
	scratch string
	engine  Engine
	log     *log.Logger
}

// New builds a Merger. Temps live in the shared clips scratch area and move
// into the output directory only after verification.
func New(cfg config.Config, engine Engine, logger *log.Logger) *Merger {
	return &Merger{
		clips:   cfg.Clips,
		scratch: cfg.ClipsDir(),
		engine:  engine,
		log:     logger,
	}
}

// Merge processes indices 1..Count sequentially; each concat invocation is
// resource-heavy enough that running them concurrently buys nothing. The
// returned Outcome reports success when the loop ran to the end, regardless
// of how many indices were skipped; the error is non-nil only for fatal
// conditions, which abort the remaining indices.
func (m *Merger) Merge(ctx context.Context, dirA, dirB, outDir, prefixA, prefixB string) (Outcome, error) {
	var out Outcome

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return out, fmt.Errorf("create output dir: %w", err)
	}

	for i := 1; i <= m.clips.Count; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		segA := filepath.Join(dirA, naming.SegmentName(prefixA, i))
		segB := filepath.Join(dirB, naming.SegmentName(prefixB, i))

		if !fsx.Exists(segA) || !fsx.Exists(segB) {
			m.log.Warn("segment missing, skipping index", "index", i)
			out.Skipped = append(out.Skipped, i)
			continue
		}
		if !m.hasVideo(ctx, segA) || !m.hasVideo(ctx, segB) {
			m.log.Warn("segment without video stream, skipping index", "index", i)
			out.Skipped = append(out.Skipped, i)
			continue
		}

		final, err := m.commit(ctx, segA, segB, outDir, i)
		if err != nil {
			return out, err
		}
		out.Committed = append(out.Committed, final)
	}

	out.Success = true
	return out, nil
}

// hasVideo probes path and reports whether it carries a video stream. Probe
// failures count as "no video": a segment ffprobe cannot read is as unusable
// as an audio-only one.
func (m *Merger) hasVideo(ctx context.Context, path string) bool {
	res, err := m.engine.ProbeStreams(ctx, path)
	if err != nil {
		m.log.Warn("probe failed", "path", path, "err", err)
		return false
	}
	return res.HasVideo()
}

// commit concatenates one segment pair into a uniquely named scratch temp,
// verifies it, and relocates it under its final name. Every failure removes
// the temp and is fatal for the pair.
func (m *Merger) commit(ctx context.Context, segA, segB, outDir string, index int) (string, error) {
	tmp := filepath.Join(m.scratch, fmt.Sprintf(".merge-%s-%s-%02d.%s",
		time.Now().Format("20060102T150405"), uuid.NewString()[:8], index, naming.ClipExt))
	final := filepath.Join(outDir, naming.FinalClipName(index))

	if err := m.engine.Concat(ctx, segA, segB, tmp); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("merge index %02d: %w", index, err)
	}

	fi, err := os.Stat(tmp)
	if err != nil || fi.Size() == 0 {
		os.Remove(tmp)
		return "", fmt.Errorf("merge index %02d: engine produced empty output", index)
	}

	if err := fsx.MoveFile(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("merge index %02d: commit output: %w", index, err)
	}
	m.log.Debug("clip committed",
		"clip", filepath.Base(final), "size", display.FormatBytes(fi.Size()))
	return final, nil
}
